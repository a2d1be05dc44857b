package docsync

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/agentstation/docsync/pkg/repos"
)

// Compile-time interface check to ensure proper implementation.
var _ TaskWatcher = (*client)(nil)

// TaskWatcher provides controls for the pending task status watcher.
// The watcher polls the backend for every in-flight clone task and
// feeds state changes into the pending records between reconciliation
// cycles.
type TaskWatcher interface {
	// TaskWatchOn begins polling in-flight task statuses
	TaskWatchOn() error

	// TaskWatchOff stops polling task statuses
	TaskWatchOff() error
}

// TaskWatchOn begins polling in-flight task statuses at the configured
// interval. Calling it while a watcher is running restarts it.
func (c *client) TaskWatchOn() error {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()

	// Stop any existing watcher to prevent resource leaks
	c.stopTaskWatchLocked()

	stop := make(chan struct{})
	ticker := time.NewTicker(c.options.taskPollInterval)
	ctx, cancel := context.WithCancel(context.Background())

	c.watchStop = stop
	c.watchTicker = ticker
	c.watchCancel = cancel

	go func(parentCtx context.Context) {
		for {
			select {
			case <-ticker.C:
				pollCtx, pollCancel := context.WithTimeout(parentCtx, c.options.taskPollInterval)
				c.pollTasks(pollCtx)
				pollCancel()
			case <-parentCtx.Done():
				return
			case <-stop:
				return
			}
		}
	}(ctx)

	return nil
}

// TaskWatchOff stops the task watcher.
func (c *client) TaskWatchOff() error {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()
	c.stopTaskWatchLocked()
	return nil
}

// stopTaskWatchLocked tears down the watcher. The caller holds
// lifecycleMu.
func (c *client) stopTaskWatchLocked() {
	if c.watchTicker != nil {
		c.watchTicker.Stop()
		c.watchTicker = nil
	}
	if c.watchCancel != nil {
		c.watchCancel()
		c.watchCancel = nil
	}
	if c.watchStop != nil {
		close(c.watchStop)
		c.watchStop = nil
	}
}

// pollTasks queries the backend for every in-flight pending record and
// records state changes. A transition to a terminal state triggers an
// immediate refresh so the confirmation lands without waiting a tick.
func (c *client) pollTasks(ctx context.Context) {
	var settled bool
	for _, record := range c.tracker.List() {
		if !record.InFlight() {
			continue
		}

		status, err := c.backend.TaskStatus(ctx, record.TaskID)
		if err != nil {
			if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
				return
			}
			c.logger.Warn().
				Str("task_id", record.TaskID).
				Err(err).
				Msg("Task status poll failed")
			continue
		}
		if status == record.Status {
			continue
		}

		c.tracker.UpdateStatus(record.TaskID, status)
		c.logger.Debug().
			Str("task_id", record.TaskID).
			Str("status", string(status)).
			Msg("Task status changed")

		if status.Terminal() {
			settled = true
			if status == repos.TaskFailure {
				c.logger.Warn().
					Str("task_id", record.TaskID).
					Str("url", record.URL).
					Msg("Clone task failed")
			}
		}
	}

	if settled {
		if err := c.Refresh(ctx); err != nil {
			c.logger.Warn().Err(err).Msg("Post-settlement refresh failed")
		}
	}
}
