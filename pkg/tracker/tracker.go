// Package tracker holds client-only records for clone operations that
// have been submitted but are not yet reflected in the authoritative
// server snapshot. Records enter via Track, have their status updated as
// the task queue reports progress, and leave only when the reconciler
// derives their resolution from snapshot membership.
package tracker

import (
	"sync"

	"github.com/agentstation/utc"
	"github.com/google/uuid"

	"github.com/agentstation/docsync/pkg/repos"
)

// Tracker is a concurrency-safe store of pending clone records.
type Tracker struct {
	mu      sync.RWMutex
	records map[string]repos.PendingClone // keyed by record ID
	order   []string                      // submission order for stable display
}

// New creates an empty tracker.
func New() *Tracker {
	return &Tracker{
		records: make(map[string]repos.PendingClone),
	}
}

// Track records a submitted clone synchronously, before any network
// confirmation beyond the task identifier. It returns the new record.
func (t *Tracker) Track(url, taskID string) repos.PendingClone {
	record := repos.PendingClone{
		ID:        uuid.NewString(),
		URL:       url,
		TaskID:    taskID,
		Status:    repos.TaskPending,
		CreatedAt: utc.Now(),
	}

	t.mu.Lock()
	t.records[record.ID] = record
	t.order = append(t.order, record.ID)
	t.mu.Unlock()

	return record
}

// UpdateStatus sets the last observed task state for the record with the
// given task identifier. It returns false when no such record is tracked.
func (t *Tracker) UpdateStatus(taskID string, status repos.TaskStatus) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id, record := range t.records {
		if record.TaskID == taskID {
			record.Status = status
			t.records[id] = record
			return true
		}
	}
	return false
}

// List returns copies of all tracked records in submission order.
func (t *Tracker) List() []repos.PendingClone {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]repos.PendingClone, 0, len(t.records))
	for _, id := range t.order {
		if record, ok := t.records[id]; ok {
			out = append(out, record)
		}
	}
	return out
}

// Get returns the record for a task identifier and whether it exists.
func (t *Tracker) Get(taskID string) (repos.PendingClone, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, record := range t.records {
		if record.TaskID == taskID {
			return record, true
		}
	}
	return repos.PendingClone{}, false
}

// Resolve drops the records with the given IDs. The IDs come from the
// reconciler's output; callers never decide resolution themselves.
func (t *Tracker) Resolve(ids ...string) {
	if len(ids) == 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, id := range ids {
		delete(t.records, id)
	}

	remaining := t.order[:0]
	for _, id := range t.order {
		if _, ok := t.records[id]; ok {
			remaining = append(remaining, id)
		}
	}
	t.order = remaining
}

// Len returns the number of tracked records.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.records)
}
