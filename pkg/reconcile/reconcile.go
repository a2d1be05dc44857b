// Package reconcile merges the authoritative server snapshot, the
// documentation index, and locally tracked pending clones into the
// published repository list. The merge is a pure function: it performs no
// I/O, never fails, and defaults missing fields instead of raising, so a
// partial snapshot can never block the rest of the list from rendering.
package reconcile

import (
	"github.com/samber/lo"

	"github.com/agentstation/docsync/pkg/repos"
)

// Merge produces the next published view list from the previous list, a
// fresh server snapshot, the documentation index, and the tracked pending
// clone records.
//
// Invariants upheld:
//   - exactly one view per distinct source URL; pending rows never
//     duplicate server-confirmed rows,
//   - a view is SUCCESS or FAILURE only when it originates solely from
//     the snapshot,
//   - unresolved pending rows are surfaced before server-confirmed rows,
//   - a previous "generating" documentation status is preserved until an
//     explicit terminal signal clears it.
func Merge(prev []repos.View, snapshot []repos.Repository, index repos.DocIndex, pending []repos.PendingClone) Result {
	// Pending records still being worked on. Terminal or task-less
	// records are not displayed: they either failed or are about to be
	// superseded by the snapshot.
	inFlight := lo.Filter(pending, func(p repos.PendingClone, _ int) bool {
		return p.InFlight()
	})

	pendingByURL := make(map[string]repos.PendingClone, len(inFlight))
	for _, p := range inFlight {
		key := repos.NormalizeURL(p.URL)
		if _, exists := pendingByURL[key]; !exists {
			pendingByURL[key] = p
		}
	}

	// Previous views by display name, for the sticky "generating" flag.
	prevByName := lo.KeyBy(prev, func(v repos.View) string { return v.Name })

	snapshotURLs := make(map[string]struct{}, len(snapshot))
	views := make([]repos.View, 0, len(inFlight)+len(snapshot))

	serverViews := make([]repos.View, 0, len(snapshot))
	for _, row := range snapshot {
		key := repos.NormalizeURL(row.URL)
		snapshotURLs[key] = struct{}{}
		serverViews = append(serverViews, serverView(row, index, prevByName, pendingByURL[key]))
	}

	// Pending clones the server has not persisted yet still need a row.
	for _, p := range inFlight {
		if _, matched := snapshotURLs[repos.NormalizeURL(p.URL)]; matched {
			continue
		}
		views = append(views, pendingView(p))
	}

	views = append(views, serverViews...)

	return Result{
		Views:    views,
		Resolved: resolved(pending, snapshotURLs),
		Failed:   failed(pending),
	}
}

// serverView maps one snapshot row to a published view. The zero-value
// PendingClone (no TaskID) means no pending record matches this row.
func serverView(row repos.Repository, index repos.DocIndex, prevByName map[string]repos.View, match repos.PendingClone) repos.View {
	name := row.Name
	if name == "" {
		name = repos.NameFromURL(row.URL)
	}

	docStatus := repos.NotDocumented
	if index.Has(name) {
		docStatus = repos.Documented
	}
	// Sticky override: a generation job is assumed still running until an
	// explicit terminal signal clears it.
	if prevView, ok := prevByName[name]; ok && prevView.DocStatus == repos.Generating {
		docStatus = repos.Generating
	}

	// Presence in the authoritative snapshot implies the clone succeeded,
	// unless an in-flight pending record says the background job has not
	// confirmed completion yet.
	status := repos.TaskSuccess
	taskID := ""
	if match.InFlight() {
		status = match.Status
		taskID = match.TaskID
	}

	return repos.View{
		ID:          row.ID,
		URL:         row.URL,
		Name:        name,
		Description: row.Description,
		Prompt:      row.Prompt,
		Status:      status,
		DocStatus:   docStatus,
		AddedAt:     row.VersionDate,
		TaskID:      taskID,
		WorkingDir:  row.WorkingDir,
		Head:        row.Head,
		Branch:      row.Branch,
	}
}

// pendingView maps an unmatched in-flight pending clone to a view.
func pendingView(p repos.PendingClone) repos.View {
	status := p.Status
	if status == "" {
		status = repos.TaskPending
	}
	return repos.View{
		URL:       p.URL,
		Name:      repos.NameFromURL(p.URL),
		Status:    status,
		DocStatus: repos.NotDocumented,
		AddedAt:   p.CreatedAt,
		TaskID:    p.TaskID,
	}
}

// resolved returns the IDs of pending records that reached a terminal
// status and whose URL appeared in the snapshot: the server has caught
// up and tracking may stop. Resolution is a derived fact of snapshot
// membership; there is no separate resolve call. A matched but still
// in-flight record stays tracked so it keeps overriding the row's status
// until the background job confirms completion.
func resolved(pending []repos.PendingClone, snapshotURLs map[string]struct{}) []string {
	var ids []string
	for _, p := range pending {
		if !p.Status.Terminal() {
			continue
		}
		if _, ok := snapshotURLs[repos.NormalizeURL(p.URL)]; ok {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// failed returns the IDs of pending records that failed terminally. The
// server will never persist a row for them, so the caller drops them from
// tracking after surfacing the failure.
func failed(pending []repos.PendingClone) []string {
	var ids []string
	for _, p := range pending {
		if p.Status == repos.TaskFailure {
			ids = append(ids, p.ID)
		}
	}
	return ids
}
