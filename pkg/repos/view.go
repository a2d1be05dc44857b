package repos

import (
	"github.com/agentstation/utc"
)

// View is the published, client-visible record for one repository. Exactly
// one View exists per distinct source URL in the published list; pending
// rows are surfaced before server-confirmed rows.
type View struct {
	ID          int        `json:"id,omitempty" yaml:"id,omitempty"`                   // Server identifier, zero while pending
	URL         string     `json:"repo_url" yaml:"repo_url"`                           // Source URL
	Name        string     `json:"name" yaml:"name"`                                   // Display name
	Description string     `json:"description,omitempty" yaml:"description,omitempty"` // Free-text description
	Prompt      string     `json:"specific_prompt,omitempty" yaml:"specific_prompt,omitempty"` // Prompt override
	Status      TaskStatus `json:"status" yaml:"status"`                               // Clone lifecycle status
	DocStatus   DocStatus  `json:"doc_status" yaml:"doc_status"`                       // Documentation status
	AddedAt     utc.Time   `json:"added_at" yaml:"added_at"`                           // When the row entered the list
	TaskID      string     `json:"task_id,omitempty" yaml:"task_id,omitempty"`         // Non-empty only while a pending clone is tracked

	// Clone result projection.
	WorkingDir string `json:"ws_dir,omitempty" yaml:"ws_dir,omitempty"`
	Head       string `json:"head,omitempty" yaml:"head,omitempty"`
	Branch     string `json:"branch,omitempty" yaml:"branch,omitempty"`
}

// Pending reports whether the view originates from a tracked clone rather
// than a server snapshot row.
func (v View) Pending() bool {
	return v.TaskID != ""
}
