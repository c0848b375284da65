package fix

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/complyo-io/complyo-engine/pkg/erecht24"
	"github.com/complyo-io/complyo-engine/pkg/fixjob/client"
	"github.com/complyo-io/complyo-engine/pkg/internal/httpclient"
	"github.com/complyo-io/complyo-engine/pkg/session"
	"github.com/complyo-io/complyo-engine/pkg/types"
)

// ErrDisclaimerRequired is returned when the user's first fix is submitted
// without the liability-disclaimer acknowledgment.
var ErrDisclaimerRequired = errors.New("Bitte bestätigen Sie zuerst den Haftungshinweis")

// ValidationError carries the user-facing message for a locally rejected
// fix request. Validation failures never reach the network.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Confirmation is the prepared fix request shown to the user before
// submission.
type Confirmation struct {
	Issue              types.ComplianceIssue
	FixType            types.FixType
	RequiresDisclaimer bool
}

// Submission is the outcome of a confirmed fix request, exactly one of:
// an asynchronous job to poll, an inline result from the legacy endpoint,
// or a downloaded legal-text file.
type Submission struct {
	JobID         string
	Result        *types.FixResult
	LegalTextFile string
}

// Initiator validates, classifies and submits fix requests.
type Initiator struct {
	logger  *zap.Logger
	jobs    client.FixJobServiceClient
	legal   erecht24.Client
	session *session.Store

	// DownloadDir receives generated legal-text files; empty means the
	// current directory.
	DownloadDir string
}

func NewInitiator(logger *zap.Logger, jobs client.FixJobServiceClient, legal erecht24.Client, store *session.Store) *Initiator {
	return &Initiator{
		logger:  logger,
		jobs:    jobs,
		legal:   legal,
		session: store,
	}
}

// Prepare validates the target and classifies it for the confirmation
// step.
func (i *Initiator) Prepare(target types.FixTarget) (*Confirmation, error) {
	issue := target.Primary()

	if !issue.AutoFixable {
		return nil, &ValidationError{Reason: "Dieses Problem kann nicht automatisch behoben werden"}
	}
	if strings.TrimSpace(issue.ID) == "" {
		return nil, &ValidationError{Reason: "Problem hat keine gültige ID"}
	}
	if strings.TrimSpace(issue.Category) == "" {
		return nil, &ValidationError{Reason: "Problem hat keine Kategorie"}
	}

	return &Confirmation{
		Issue:              issue,
		FixType:            types.ClassifyFix(issue),
		RequiresDisclaimer: !i.session.DisclaimerAccepted(),
	}, nil
}

// Submit executes a confirmed fix request. Legal-text fixes bypass the job
// system entirely and download the generated document; other fixes create
// a job when a scan id is available and otherwise fall back to the legacy
// synchronous endpoint. Quota rejections come back as *client.QuotaError
// so callers route them to the paywall rather than a generic error.
func (i *Initiator) Submit(ctx context.Context, conf *Confirmation, scanID string, disclaimerAcked bool) (*Submission, error) {
	if conf.RequiresDisclaimer {
		if !disclaimerAcked {
			return nil, ErrDisclaimerRequired
		}
		if err := i.session.SetDisclaimerAccepted(); err != nil {
			i.logger.Warn("failed to persist disclaimer acknowledgment", zap.Error(err))
		}
	}

	if conf.FixType == types.FixTypeText {
		return i.downloadLegalText(ctx, conf.Issue)
	}

	httpCtx := &httpclient.Context{Ctx: ctx, BearerToken: i.session.AccessToken()}

	if scanID != "" {
		resp, err := i.jobs.CreateJob(httpCtx, scanID, conf.Issue)
		if err != nil {
			return nil, err
		}

		if err := i.session.AppendActiveJob(session.ActiveJob{
			JobID:   resp.JobID,
			IssueID: conf.Issue.ID,
			ScanID:  scanID,
		}); err != nil {
			i.logger.Warn("failed to record active job", zap.Error(err))
		}
		return &Submission{JobID: resp.JobID}, nil
	}

	result, err := i.jobs.GenerateSync(httpCtx, conf.Issue)
	if err != nil {
		return nil, err
	}
	return &Submission{Result: result}, nil
}

func (i *Initiator) downloadLegalText(ctx context.Context, issue types.ComplianceIssue) (*Submission, error) {
	haystack := strings.ToLower(issue.Title + " " + issue.Category)

	var html, filename string
	var err error
	if strings.Contains(haystack, "impressum") {
		filename = "impressum.html"
		html, err = i.legal.Imprint(ctx, "de")
	} else {
		filename = "datenschutzerklaerung.html"
		html, err = i.legal.PrivacyPolicy(ctx, "de")
	}
	if err != nil {
		return nil, fmt.Errorf("generate legal text: %w", err)
	}

	path := filepath.Join(i.DownloadDir, filename)
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return nil, fmt.Errorf("write legal text: %w", err)
	}

	i.logger.Info("legal text downloaded", zap.String("file", path), zap.String("issue_id", issue.ID))
	return &Submission{LegalTextFile: path}, nil
}
