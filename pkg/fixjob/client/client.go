package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/complyo-io/complyo-engine/pkg/fixjob/api"
	"github.com/complyo-io/complyo-engine/pkg/internal/httpclient"
	"github.com/complyo-io/complyo-engine/pkg/types"
)

// QuotaError is the typed form of a 402 / FIX_LIMIT_REACHED rejection.
// Missing usage numbers default to 1/1, which is what the paywall shows
// for the single free fix.
type QuotaError struct {
	FixesUsed  int
	FixesLimit int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("fix limit reached: %d von %d Fixes verwendet", e.FixesUsed, e.FixesLimit)
}

type FixJobServiceClient interface {
	CreateJob(ctx *httpclient.Context, scanID string, issue types.ComplianceIssue) (*api.CreateJobResponse, error)
	GetJob(ctx *httpclient.Context, jobID string) (*api.JobStatusResponse, error)
	GenerateSync(ctx *httpclient.Context, issue types.ComplianceIssue) (*types.FixResult, error)
	ListDomainLocks(ctx *httpclient.Context) ([]types.DomainLock, error)
}

type fixJobClient struct {
	baseURL string
}

func NewFixJobServiceClient(baseURL string) FixJobServiceClient {
	return &fixJobClient{baseURL: baseURL}
}

func (c *fixJobClient) CreateJob(ctx *httpclient.Context, scanID string, issue types.ComplianceIssue) (*api.CreateJobResponse, error) {
	url := fmt.Sprintf("%s/api/v1/fix-jobs", c.baseURL)

	payload, err := json.Marshal(api.CreateJobRequest{
		ScanID:    scanID,
		IssueID:   issue.ID,
		IssueData: issue,
	})
	if err != nil {
		return nil, err
	}

	var resp api.CreateJobResponse
	statusCode, err := httpclient.DoRequest(ctx.Request(), http.MethodPost, url, ctx.ToHeaders(), payload, &resp)
	if err != nil {
		if quotaErr := asQuotaError(statusCode, err); quotaErr != nil {
			return nil, quotaErr
		}
		return nil, err
	}
	return &resp, nil
}

func (c *fixJobClient) GetJob(ctx *httpclient.Context, jobID string) (*api.JobStatusResponse, error) {
	url := fmt.Sprintf("%s/api/v1/fix-jobs/%s", c.baseURL, jobID)

	var resp api.JobStatusResponse
	if _, err := httpclient.DoRequest(ctx.Request(), http.MethodGet, url, ctx.ToHeaders(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *fixJobClient) GenerateSync(ctx *httpclient.Context, issue types.ComplianceIssue) (*types.FixResult, error) {
	url := fmt.Sprintf("%s/api/v1/fix/generate", c.baseURL)

	payload, err := json.Marshal(api.GenerateSyncRequest{IssueData: issue})
	if err != nil {
		return nil, err
	}

	var resp api.GenerateSyncResponse
	statusCode, err := httpclient.DoRequest(ctx.Request(), http.MethodPost, url, ctx.ToHeaders(), payload, &resp)
	if err != nil {
		if quotaErr := asQuotaError(statusCode, err); quotaErr != nil {
			return nil, quotaErr
		}
		return nil, err
	}
	return &resp.Result, nil
}

func (c *fixJobClient) ListDomainLocks(ctx *httpclient.Context) ([]types.DomainLock, error) {
	url := fmt.Sprintf("%s/api/v1/user/domain-locks", c.baseURL)

	var resp api.DomainLocksResponse
	if _, err := httpclient.DoRequest(ctx.Request(), http.MethodGet, url, ctx.ToHeaders(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.DomainLocks, nil
}

// asQuotaError classifies a request failure: either the status is 402 or
// the body carries the FIX_LIMIT_REACHED code. Usage numbers missing from
// the payload default to 1/1.
func asQuotaError(statusCode int, err error) *QuotaError {
	var respErr *httpclient.ResponseError
	if !errors.As(err, &respErr) {
		return nil
	}

	var body api.QuotaExceededResponse
	decoded := json.Unmarshal(respErr.Body, &body) == nil

	if statusCode != http.StatusPaymentRequired && !(decoded && body.Code == api.ErrCodeFixLimitReached) {
		return nil
	}

	quota := &QuotaError{FixesUsed: 1, FixesLimit: 1}
	if decoded && body.Detail.FixesLimit > 0 {
		quota.FixesUsed = body.Detail.FixesUsed
		quota.FixesLimit = body.Detail.FixesLimit
	}
	return quota
}
