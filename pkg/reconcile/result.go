package reconcile

import (
	"github.com/agentstation/docsync/pkg/repos"
)

// Result is the output of one merge: the next published view list plus
// the tracking consequences the caller applies to the pending store.
type Result struct {
	// Views is the next published list, pending rows first.
	Views []repos.View

	// Resolved holds pending record IDs that reached a terminal status
	// and whose URL was observed in the snapshot: the server has caught
	// up and tracking may stop.
	Resolved []string

	// Failed holds pending record IDs with a terminal FAILURE status.
	// No snapshot row will ever confirm them.
	Failed []string
}

// View returns the view for the given source URL, matching on the
// normalized form, and whether it exists.
func (r Result) View(url string) (repos.View, bool) {
	key := repos.NormalizeURL(url)
	for _, v := range r.Views {
		if repos.NormalizeURL(v.URL) == key {
			return v, true
		}
	}
	return repos.View{}, false
}
