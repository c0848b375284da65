package fixjob

import (
	"github.com/complyo-io/complyo-engine/pkg/types"
)

// QueuedJob is the message handed to the worker over the queue.
type QueuedJob struct {
	JobID  string                `json:"job_id"`
	ScanID string                `json:"scan_id"`
	Domain string                `json:"domain"`
	Issue  types.ComplianceIssue `json:"issue"`
}
