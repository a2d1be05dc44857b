package handlers

import (
	"net/http"

	"github.com/agentstation/docsync/internal/server/response"
)

// HandleHealth handles GET /health (liveness probe).
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "docsync-api",
		"version": "v1",
	})
}

// HandleReady handles GET /api/v1/ready. Readiness includes cache and
// transport client counts.
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status": "ready",
		"views":  len(h.engine.Views()),
		"cache": map[string]any{
			"items": h.cache.ItemCount(),
		},
		"websocket_clients": h.wsHub.ClientCount(),
		"sse_clients":       h.sseBroadcaster.ClientCount(),
	})
}
