package docsync

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/agentstation/docsync/pkg/constants"
	"github.com/agentstation/docsync/pkg/errors"
)

// Compile-time interface check to ensure proper implementation.
var _ AutoRefresher = (*client)(nil)

// AutoRefresher provides controls for the automatic refresh scheduler.
type AutoRefresher interface {
	// AutoRefreshOn begins periodic reconciliation cycles
	AutoRefreshOn() error

	// AutoRefreshOff stops periodic reconciliation cycles
	AutoRefreshOff() error
}

// AutoRefreshOn begins periodic reconciliation cycles at the configured
// interval. Calling it while a scheduler is running restarts it.
func (c *client) AutoRefreshOn() error {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()

	// Stop any existing scheduler to prevent resource leaks
	c.stopAutoRefreshLocked()

	stop := make(chan struct{})
	ticker := time.NewTicker(c.options.refreshInterval)
	ctx, cancel := context.WithCancel(context.Background())

	c.refreshStop = stop
	c.refreshTicker = ticker
	c.refreshCancel = cancel

	go func(parentCtx context.Context) {
		for {
			select {
			case <-ticker.C:
				cycleCtx, cycleCancel := context.WithTimeout(parentCtx, constants.RefreshContextTimeout)
				err := c.Refresh(cycleCtx)
				cycleCancel()

				if err == nil {
					continue
				}
				if parentCtx.Err() != nil {
					return
				}
				// A manual refresh that lands mid-cycle cancels this
				// cycle's context and wins the publish race. Neither
				// outcome ends the scheduler, the next tick starts a
				// fresh cycle.
				if stderrors.Is(err, context.Canceled) ||
					stderrors.Is(err, context.DeadlineExceeded) ||
					errors.IsStaleCycle(err) {
					c.logger.Debug().Err(err).Msg("Scheduled cycle superseded")
					continue
				}
				c.logger.Error().Err(err).Msg("Scheduled refresh failed")
			case <-parentCtx.Done():
				return
			case <-stop:
				return
			}
		}
	}(ctx)

	return nil
}

// AutoRefreshOff stops the refresh scheduler.
func (c *client) AutoRefreshOff() error {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()
	c.stopAutoRefreshLocked()
	return nil
}

// stopAutoRefreshLocked tears down the scheduler. The caller holds
// lifecycleMu.
func (c *client) stopAutoRefreshLocked() {
	if c.refreshTicker != nil {
		c.refreshTicker.Stop()
		c.refreshTicker = nil
	}
	if c.refreshCancel != nil {
		c.refreshCancel()
		c.refreshCancel = nil
	}
	if c.refreshStop != nil {
		close(c.refreshStop)
		c.refreshStop = nil
	}
}
