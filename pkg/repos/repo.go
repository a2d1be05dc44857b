// Package repos defines the domain model for the docsync reconciliation
// engine: server-owned repository snapshots, the documentation index,
// client-owned pending clone records, and the published reconciled view.
package repos

import (
	"github.com/agentstation/utc"
)

// Repository is one row of the authoritative server snapshot. It is
// produced by the console backend and immutable from the client's
// perspective within one refresh cycle.
type Repository struct {
	ID          int      `json:"id" yaml:"id"`                                         // Server-issued identifier
	URL         string   `json:"repo_url" yaml:"repo_url"`                             // Canonical source URL
	Name        string   `json:"name" yaml:"name"`                                     // Display name
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`   // Free-text description
	Prompt      string   `json:"specific_prompt,omitempty" yaml:"specific_prompt,omitempty"` // Repository-specific prompt override
	VersionDate utc.Time `json:"date_of_version" yaml:"date_of_version"`               // Version timestamp of the snapshot row

	// Clone result projection, filled once the backend has a working copy.
	WorkingDir string `json:"ws_dir,omitempty" yaml:"ws_dir,omitempty"`
	Head       string `json:"head,omitempty" yaml:"head,omitempty"`
	Branch     string `json:"branch,omitempty" yaml:"branch,omitempty"`
}
