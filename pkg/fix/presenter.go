package fix

import (
	"errors"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/complyo-io/complyo-engine/pkg/fixjob/api"
	"github.com/complyo-io/complyo-engine/pkg/fixjob/client"
	"github.com/complyo-io/complyo-engine/pkg/types"
)

const genericFailureMessage = "Der Fix konnte nicht erstellt werden. Bitte versuchen Sie es erneut."

type PresentationKind string

const (
	PresentationEmpty   PresentationKind = "empty"
	PresentationCode    PresentationKind = "code"
	PresentationText    PresentationKind = "text"
	PresentationGuide   PresentationKind = "guide"
	PresentationError   PresentationKind = "error"
	PresentationPaywall PresentationKind = "paywall"
)

// Presentation is the render-ready view of a finished job or a
// classified submission error.
type Presentation struct {
	Kind PresentationKind

	Code     string
	Language string

	// HTML is already sanitized.
	HTML string

	Steps []string

	ErrorMessage string

	FixesUsed  int
	FixesLimit int
}

// Presenter turns terminal job states into display data. Result decoding
// is defensive: a malformed payload degrades to an empty presentation and
// a log line, never a crash.
type Presenter struct {
	logger   *zap.Logger
	sanitize *bluemonday.Policy
}

func NewPresenter(logger *zap.Logger) *Presenter {
	return &Presenter{
		logger:   logger,
		sanitize: bluemonday.UGCPolicy(),
	}
}

func (p *Presenter) Present(job *api.JobStatusResponse) Presentation {
	switch job.Status {
	case types.FixJobCompleted:
		result, err := types.DecodeFixResult(job.Result)
		if err != nil {
			p.logger.Error("failed to decode fix result", zap.Error(err), zap.String("job_id", job.JobID))
			return Presentation{Kind: PresentationEmpty}
		}
		if result == nil {
			return Presentation{Kind: PresentationEmpty}
		}
		return p.presentResult(result)

	case types.FixJobFailed:
		message := job.ErrorMessage
		if message == "" {
			message = genericFailureMessage
		}
		return Presentation{Kind: PresentationError, ErrorMessage: message}

	default:
		// non-terminal states have nothing to present
		return Presentation{Kind: PresentationEmpty}
	}
}

func (p *Presenter) presentResult(result *types.FixResult) Presentation {
	switch result.Type {
	case types.FixResultCode:
		return Presentation{Kind: PresentationCode, Code: result.Content, Language: result.Language}
	case types.FixResultWidget:
		return Presentation{Kind: PresentationCode, Code: result.EmbedScript, Language: "html"}
	case types.FixResultText:
		return Presentation{Kind: PresentationText, HTML: p.sanitize.Sanitize(result.Content)}
	case types.FixResultGuide:
		return Presentation{Kind: PresentationGuide, Steps: result.Steps}
	default:
		p.logger.Warn("unknown fix result type", zap.String("type", string(result.Type)))
		return Presentation{Kind: PresentationEmpty}
	}
}

// PresentError classifies a submission failure: quota errors become the
// paywall presentation with the extracted usage numbers, everything else
// the generic dismissible error.
func (p *Presenter) PresentError(err error) Presentation {
	if quota, ok := AsQuotaError(err); ok {
		return Presentation{
			Kind:       PresentationPaywall,
			FixesUsed:  quota.FixesUsed,
			FixesLimit: quota.FixesLimit,
		}
	}

	message := genericFailureMessage
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	return Presentation{Kind: PresentationError, ErrorMessage: message}
}

// AsQuotaError unwraps a *client.QuotaError.
func AsQuotaError(err error) (*client.QuotaError, bool) {
	var quota *client.QuotaError
	if errors.As(err, &quota) {
		return quota, true
	}
	return nil, false
}
