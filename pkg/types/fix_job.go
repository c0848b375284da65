package types

type FixJobStatus string

const (
	FixJobPending    FixJobStatus = "pending"
	FixJobProcessing FixJobStatus = "processing"
	FixJobCompleted  FixJobStatus = "completed"
	FixJobFailed     FixJobStatus = "failed"
)

func (s FixJobStatus) IsTerminal() bool {
	return s == FixJobCompleted || s == FixJobFailed
}

// ValidTransition reports whether a job may move from one status to
// another. Terminal states are absorbing.
func ValidTransition(from, to FixJobStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case FixJobPending:
		return to == FixJobProcessing || to == FixJobCompleted || to == FixJobFailed
	case FixJobProcessing:
		return to == FixJobCompleted || to == FixJobFailed
	default:
		return false
	}
}

// FixJob is the client-side view of an asynchronous fix. The backend owns
// every field; the client only refreshes its copy by polling. Progress and
// CurrentStep are presentational and only meaningful while the job is
// active - terminal behavior keys off Status, Result and ErrorMessage.
type FixJob struct {
	ID              string       `json:"job_id"`
	ScanID          string       `json:"scan_id"`
	IssueID         string       `json:"issue_id"`
	Status          FixJobStatus `json:"status"`
	ProgressPercent int          `json:"progress_percent"`
	CurrentStep     string       `json:"current_step"`
	Result          *FixResult   `json:"result,omitempty"`
	ErrorMessage    string       `json:"error_message,omitempty"`
}
