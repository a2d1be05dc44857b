// Package docsync keeps a live, reconciled view of a documentation
// backend's repository inventory. It repeatedly fetches the backend's
// repository snapshot and documentation index, merges them with
// locally tracked clone submissions that the server has not confirmed
// yet, and publishes the result as a single consistent list of views.
//
// The engine tolerates partial backend failure: a snapshot fetch
// failure abandons the cycle and leaves the previous views untouched,
// while a documentation index failure only degrades documentation
// status for that cycle.
//
// Example usage:
//
//	ds, err := docsync.New(
//	    docsync.WithBackendURL("http://localhost:8000", ""),
//	    docsync.WithRefreshInterval(20 * time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ds.AutoRefreshOff()
//
//	ds.OnViewsUpdated(func(views []repos.View) {
//	    log.Printf("inventory now has %d entries", len(views))
//	})
//
//	taskID, err := ds.Track(ctx, "https://github.com/acme/widgets.git")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = taskID
package docsync

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/docsync/internal/backend"
	"github.com/agentstation/docsync/pkg/repos"
	"github.com/agentstation/docsync/pkg/tracker"
)

// Backend is the slice of the backend API the engine consumes.
// *backend.Client satisfies it.
type Backend interface {
	// ListRepos retrieves the authoritative repository snapshot.
	ListRepos(ctx context.Context) ([]repos.Repository, error)

	// DocIndex retrieves the set of repository names with documentation.
	DocIndex(ctx context.Context) (repos.DocIndex, error)

	// SubmitClone enqueues a clone and returns the server task identifier.
	SubmitClone(ctx context.Context, url string) (string, error)

	// TaskStatus polls the state of a previously submitted task.
	TaskStatus(ctx context.Context, taskID string) (repos.TaskStatus, error)

	// RegenerateDoc requests documentation regeneration for a repository.
	RegenerateDoc(ctx context.Context, repoID int) error
}

// Compile-time interface check to ensure proper implementation.
var _ Backend = (*backend.Client)(nil)

// Viewer provides copy-on-read access to the published views.
type Viewer interface {
	Views() []repos.View
	View(url string) (repos.View, bool)
	Pending() []repos.PendingClone
}

// Client manages the reconciled repository inventory with automatic
// refresh, pending clone tracking, and event hooks.
type Client interface {

	// Viewer provides copy-on-read access to the published views
	Viewer

	// Refresher runs reconciliation cycles
	Refresher

	// Submitter tracks clone submissions and regeneration requests
	Submitter

	// AutoRefresher provides access to the refresh scheduler
	AutoRefresher

	// TaskWatcher provides access to the pending task status watcher
	TaskWatcher

	// Hooks provides access to event callback registration
	Hooks
}

// client is the internal implementation of the Client interface.
type client struct {

	// options are the configured options for the client
	options *options

	backend Backend
	tracker *tracker.Tracker
	logger  zerolog.Logger

	// published state
	mu         sync.RWMutex
	views      []repos.View
	index      repos.DocIndex
	generating map[string]struct{} // display names pinned to generating
	applied    uint64              // highest cycle number published

	// seq issues cycle numbers at dispatch time
	seq atomic.Uint64

	// cycle cancellation, a new cycle cancels the previous one
	cycleMu     sync.Mutex
	cycleCancel context.CancelFunc

	// lifecycleMu guards the scheduler and watcher state below
	lifecycleMu sync.Mutex

	// auto refresh state
	refreshTicker *time.Ticker
	refreshStop   chan struct{}
	refreshCancel context.CancelFunc

	// task watch state
	watchTicker *time.Ticker
	watchStop   chan struct{}
	watchCancel context.CancelFunc

	// hooks are the event hooks for view changes
	hooks *hooks
}

// New creates a new Client instance with the given options.
func New(opts ...Option) (Client, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}

	c := &client{
		options:    o,
		backend:    o.backend,
		tracker:    tracker.New(),
		logger:     o.logger,
		views:      nil,
		index:      repos.NewDocIndex(),
		generating: make(map[string]struct{}),
		hooks:      newHooks(),
	}

	if c.backend == nil {
		c.backend, err = backend.New(o.backendURL, o.backendToken)
		if err != nil {
			return nil, err
		}
	}

	if o.autoRefreshEnabled {
		if err := c.AutoRefreshOn(); err != nil {
			return nil, err
		}
	}
	if o.taskWatchEnabled {
		if err := c.TaskWatchOn(); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Views returns a copy of the current published views.
func (c *client) Views() []repos.View {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]repos.View, len(c.views))
	copy(out, c.views)
	return out
}

// View returns the published view matching the given repository URL.
func (c *client) View(url string) (repos.View, bool) {
	want := repos.NormalizeURL(url)

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, v := range c.views {
		if repos.NormalizeURL(v.URL) == want {
			return v, true
		}
	}
	return repos.View{}, false
}

// Pending returns a copy of the tracked clone records that have not yet
// been confirmed by a server snapshot.
func (c *client) Pending() []repos.PendingClone {
	return c.tracker.List()
}
