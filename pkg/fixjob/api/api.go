package api

import (
	"encoding/json"

	"github.com/complyo-io/complyo-engine/pkg/types"
)

const ErrCodeFixLimitReached = "FIX_LIMIT_REACHED"

type CreateJobRequest struct {
	ScanID    string                `json:"scan_id" validate:"required"`
	IssueID   string                `json:"issue_id" validate:"required"`
	IssueData types.ComplianceIssue `json:"issue_data" validate:"required"`
}

type CreateJobResponse struct {
	JobID  string             `json:"job_id"`
	Status types.FixJobStatus `json:"status"`
}

// JobStatusResponse is the polled view of a job. Result stays raw JSON so
// the client can decode it defensively.
type JobStatusResponse struct {
	JobID           string             `json:"job_id"`
	Status          types.FixJobStatus `json:"status"`
	ProgressPercent int                `json:"progress_percent"`
	CurrentStep     string             `json:"current_step"`
	Result          json.RawMessage    `json:"result,omitempty"`
	ErrorMessage    string             `json:"error_message,omitempty"`
}

// QuotaExceededResponse is the 402 body. The detail shape matches what the
// dashboard paywall expects.
type QuotaExceededResponse struct {
	Code   string      `json:"code"`
	Detail QuotaDetail `json:"detail"`
}

type QuotaDetail struct {
	FixesUsed  int `json:"fixes_used"`
	FixesLimit int `json:"fixes_limit"`
}

type GenerateSyncRequest struct {
	IssueData types.ComplianceIssue `json:"issue_data" validate:"required"`
}

type GenerateSyncResponse struct {
	Result types.FixResult `json:"result"`
}

type DomainLocksResponse struct {
	Success     bool               `json:"success"`
	DomainLocks []types.DomainLock `json:"domain_locks"`
}

type LegalTextResponse struct {
	HTML string `json:"html"`
}
