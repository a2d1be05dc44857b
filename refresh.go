package docsync

import (
	"context"

	"github.com/agentstation/docsync/pkg/errors"
	"github.com/agentstation/docsync/pkg/reconcile"
	"github.com/agentstation/docsync/pkg/repos"
)

// Compile-time interface check to ensure proper implementation.
var _ Refresher = (*client)(nil)

// Refresher runs reconciliation cycles against the backend.
type Refresher interface {
	// Refresh runs one full cycle: fetch the repository snapshot and the
	// documentation index, reconcile them with the tracked pending
	// clones, and publish the result.
	Refresh(ctx context.Context) error
}

// Refresh runs one reconciliation cycle. Cycles are numbered at
// dispatch; if another cycle with a higher number publishes first, this
// cycle's result is discarded and ErrStaleCycle is returned. Starting a
// cycle cancels the previous cycle's in-flight requests.
func (c *client) Refresh(ctx context.Context) error {
	seq := c.seq.Add(1)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	c.cycleMu.Lock()
	if c.cycleCancel != nil {
		c.cycleCancel()
	}
	c.cycleCancel = cancel
	c.cycleMu.Unlock()

	log := c.logger.With().Uint64("cycle", seq).Logger()

	// The snapshot is authoritative. Without it the previous views stay
	// published untouched.
	snapshot, err := c.backend.ListRepos(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Repository snapshot fetch failed, keeping previous views")
		return &errors.RefreshError{Cycle: seq, Stage: "snapshot", Err: err}
	}

	// The documentation index only affects documentation status. On
	// failure every repository degrades to undocumented for this cycle.
	index, err := c.backend.DocIndex(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Documentation index fetch failed, treating index as empty")
		index = repos.NewDocIndex()
	}

	pending := c.tracker.List()

	c.mu.RLock()
	prev := c.views
	c.mu.RUnlock()

	result := reconcile.Merge(prev, snapshot, index, pending)

	if !c.publish(seq, result, index) {
		log.Debug().Msg("Discarding stale cycle result")
		return &errors.RefreshError{Cycle: seq, Stage: "publish", Err: errors.ErrStaleCycle}
	}

	if len(result.Resolved) > 0 {
		log.Info().Strs("ids", result.Resolved).Msg("Pending clones confirmed by snapshot")
		c.tracker.Resolve(result.Resolved...)
	}
	if len(result.Failed) > 0 {
		log.Warn().Strs("ids", result.Failed).Msg("Dropping failed clone submissions")
		c.tracker.Resolve(result.Failed...)
		c.hooks.triggerClonesFailed(result.Failed)
	}
	if len(result.Resolved) > 0 {
		c.hooks.triggerClonesResolved(result.Resolved)
	}

	log.Debug().Int("views", len(result.Views)).Msg("Cycle published")
	c.hooks.triggerViewsUpdated(c.Views())
	return nil
}

// publish installs a cycle result. It reports false when a later cycle
// already published, in which case the result is dropped.
func (c *client) publish(seq uint64, result reconcile.Result, index repos.DocIndex) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq <= c.applied {
		return false
	}
	c.applied = seq
	c.index = index

	// Regeneration pins survive reconciliation until their request
	// settles.
	views := result.Views
	for i := range views {
		if _, ok := c.generating[views[i].Name]; ok {
			views[i].DocStatus = repos.Generating
		}
	}
	c.views = views
	return true
}
