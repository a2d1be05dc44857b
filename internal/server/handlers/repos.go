package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/agentstation/docsync/internal/server/cache"
	"github.com/agentstation/docsync/internal/server/response"
	"github.com/agentstation/docsync/pkg/constants"
	"github.com/agentstation/docsync/pkg/repos"
)

// trackRequest is the body of POST /api/v1/repos.
type trackRequest struct {
	RepoURL string `json:"repo_url"`
}

// HandleListRepos handles GET /api/v1/repos. The reconciled view list
// is served from cache between publications.
func (h *Handlers) HandleListRepos(w http.ResponseWriter, _ *http.Request) {
	if cached, ok := h.cache.Get(cache.ViewsKey); ok {
		if views, ok := cached.([]repos.View); ok {
			response.OK(w, views)
			return
		}
	}

	views := h.engine.Views()
	h.cache.Set(cache.ViewsKey, views)
	response.OK(w, views)
}

// HandleGetRepo handles GET /api/v1/repos/{name}. Lookup is by display
// name first, then by URL.
func (h *Handlers) HandleGetRepo(w http.ResponseWriter, _ *http.Request, name string) {
	for _, v := range h.engine.Views() {
		if v.Name == name {
			response.OK(w, v)
			return
		}
	}
	if v, ok := h.engine.View(name); ok {
		response.OK(w, v)
		return
	}
	response.NotFound(w, "repository not found", name)
}

// HandleTrackRepo handles POST /api/v1/repos. It submits a clone for
// the given URL and returns the task identifier.
func (h *Handlers) HandleTrackRepo(w http.ResponseWriter, r *http.Request) {
	var req trackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", err.Error())
		return
	}
	if req.RepoURL == "" {
		response.BadRequest(w, "repo_url is required", "")
		return
	}

	taskID, err := h.engine.Track(r.Context(), req.RepoURL)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	h.cache.Delete(cache.ViewsKey)
	response.Accepted(w, map[string]any{
		"task_id":  taskID,
		"repo_url": repos.NormalizeURL(req.RepoURL),
	})
}

// HandleRegenerate handles POST /api/v1/repos/{name}/regenerate. The
// regeneration runs in the background; the repository shows as
// generating until it settles.
func (h *Handlers) HandleRegenerate(w http.ResponseWriter, _ *http.Request, name string) {
	var target repos.View
	var found bool
	for _, v := range h.engine.Views() {
		if v.Name == name {
			target, found = v, true
			break
		}
	}
	if !found {
		response.NotFound(w, "repository not found", name)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), constants.CommandTimeout)
		defer cancel()
		if err := h.engine.Regenerate(ctx, target.ID, target.Name); err != nil {
			h.logger.Error().
				Err(err).
				Str("name", target.Name).
				Msg("Documentation regeneration failed")
		}
		h.cache.Delete(cache.ViewsKey)
	}()

	h.cache.Delete(cache.ViewsKey)
	response.Accepted(w, map[string]any{
		"name":   target.Name,
		"status": string(repos.Generating),
	})
}

// HandleRefresh handles POST /api/v1/refresh, triggering one
// reconciliation cycle.
func (h *Handlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Refresh(r.Context()); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	h.cache.Delete(cache.ViewsKey)
	response.OK(w, map[string]any{
		"status": "ok",
		"views":  len(h.engine.Views()),
	})
}
