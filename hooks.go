package docsync

import (
	"sync"

	"github.com/agentstation/docsync/pkg/repos"
)

// Compile-time interface check to ensure proper implementation.
var _ Hooks = (*client)(nil)

// Hook function types for inventory events
type (
	// ViewsUpdatedHook is called with the full view list after every
	// publication
	ViewsUpdatedHook func(views []repos.View)

	// ClonesResolvedHook is called with the record IDs of pending
	// clones the server snapshot confirmed
	ClonesResolvedHook func(ids []string)

	// ClonesFailedHook is called with the record IDs of pending clones
	// whose tasks failed
	ClonesFailedHook func(ids []string)
)

// Hooks provides registration of event callbacks.
type Hooks interface {
	// OnViewsUpdated registers a callback for view publications
	OnViewsUpdated(ViewsUpdatedHook)

	// OnClonesResolved registers a callback for confirmed clones
	OnClonesResolved(ClonesResolvedHook)

	// OnClonesFailed registers a callback for failed clones
	OnClonesFailed(ClonesFailedHook)
}

// hooks manages event callbacks for inventory changes
type hooks struct {
	mu               sync.RWMutex
	onViewsUpdated   []ViewsUpdatedHook
	onClonesResolved []ClonesResolvedHook
	onClonesFailed   []ClonesFailedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

func (h *hooks) triggerViewsUpdated(views []repos.View) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onViewsUpdated {
		hook(views)
	}
}

func (h *hooks) triggerClonesResolved(ids []string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onClonesResolved {
		hook(ids)
	}
}

func (h *hooks) triggerClonesFailed(ids []string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onClonesFailed {
		hook(ids)
	}
}

// OnViewsUpdated registers a callback for view publications.
func (c *client) OnViewsUpdated(fn ViewsUpdatedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onViewsUpdated = append(c.hooks.onViewsUpdated, fn)
}

// OnClonesResolved registers a callback for confirmed clones.
func (c *client) OnClonesResolved(fn ClonesResolvedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onClonesResolved = append(c.hooks.onClonesResolved, fn)
}

// OnClonesFailed registers a callback for failed clones.
func (c *client) OnClonesFailed(fn ClonesFailedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onClonesFailed = append(c.hooks.onClonesFailed, fn)
}
