package repos

import (
	"github.com/agentstation/utc"
)

// PendingClone is a client-owned, transient record for a clone operation
// that has been submitted but not yet reflected in the authoritative
// snapshot. It is created the moment a user submits a repository URL and
// dropped only once its status is terminal and a snapshot row with the
// matching URL has been observed.
type PendingClone struct {
	ID        string     `json:"id" yaml:"id"`                               // Client-generated placeholder identifier
	URL       string     `json:"repo_url" yaml:"repo_url"`                   // Submitted source URL
	TaskID    string     `json:"task_id,omitempty" yaml:"task_id,omitempty"` // Task identifier issued by the clone endpoint
	Status    TaskStatus `json:"status" yaml:"status"`                       // Last observed task state
	CreatedAt utc.Time   `json:"created_at" yaml:"created_at"`               // Submission time
}

// InFlight reports whether the clone is still being worked on: a task
// identifier is present and the status has not reached a terminal value.
func (p PendingClone) InFlight() bool {
	return p.TaskID != "" && !p.Status.Terminal()
}
