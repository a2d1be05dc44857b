package docsync

import (
	"context"

	"github.com/agentstation/docsync/pkg/repos"
)

// Compile-time interface check to ensure proper implementation.
var _ Submitter = (*client)(nil)

// Submitter covers the user actions that mutate backend state through
// the engine: clone submissions and documentation regeneration.
type Submitter interface {
	// Track submits a clone for the given repository URL and records it
	// as pending until the server snapshot confirms it.
	Track(ctx context.Context, url string) (string, error)

	// Regenerate requests documentation regeneration for a repository,
	// pinning its view to generating while the request is in flight.
	Regenerate(ctx context.Context, repoID int, name string) error

	// MarkGenerating pins the named repository's documentation status to
	// generating until ClearGenerating is called.
	MarkGenerating(name string)

	// ClearGenerating removes the generating pin for the named
	// repository. Its documentation status reverts to what the last
	// published documentation index says.
	ClearGenerating(name string)
}

// Track submits a clone to the backend and records it locally. The
// record surfaces in Views immediately, before the server lists the
// repository, and carries the returned task identifier so the task
// watcher can follow its progress.
func (c *client) Track(ctx context.Context, url string) (string, error) {
	taskID, err := c.backend.SubmitClone(ctx, url)
	if err != nil {
		return "", err
	}

	record := c.tracker.Track(url, taskID)
	c.logger.Info().
		Str("url", record.URL).
		Str("task_id", taskID).
		Msg("Clone submitted")

	// Surface the new pending row without waiting for the next tick.
	if err := c.Refresh(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("Post-submission refresh failed")
	}
	return taskID, nil
}

// Regenerate pins the repository to generating, issues the synchronous
// regeneration request, and clears the pin once the request settles
// either way.
func (c *client) Regenerate(ctx context.Context, repoID int, name string) error {
	c.MarkGenerating(name)
	defer c.ClearGenerating(name)

	if err := c.backend.RegenerateDoc(ctx, repoID); err != nil {
		return err
	}

	c.logger.Info().Str("name", name).Msg("Documentation regenerated")
	if err := c.Refresh(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("Post-regeneration refresh failed")
	}
	return nil
}

// MarkGenerating pins the named repository's documentation status.
func (c *client) MarkGenerating(name string) {
	if name == "" {
		return
	}

	c.mu.Lock()
	c.generating[name] = struct{}{}
	for i := range c.views {
		if c.views[i].Name == name {
			c.views[i].DocStatus = repos.Generating
		}
	}
	c.mu.Unlock()

	c.hooks.triggerViewsUpdated(c.Views())
}

// ClearGenerating removes the generating pin and restores the
// documentation status from the last published index.
func (c *client) ClearGenerating(name string) {
	if name == "" {
		return
	}

	c.mu.Lock()
	delete(c.generating, name)
	for i := range c.views {
		if c.views[i].Name != name {
			continue
		}
		if c.index.Has(name) {
			c.views[i].DocStatus = repos.Documented
		} else {
			c.views[i].DocStatus = repos.NotDocumented
		}
	}
	c.mu.Unlock()

	c.hooks.triggerViewsUpdated(c.Views())
}
