// Package server provides the HTTP server for the reconciled
// repository inventory. It exposes the published views over REST and
// streams inventory changes to clients over WebSocket and SSE.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/docsync"
	"github.com/agentstation/docsync/internal/server/cache"
	"github.com/agentstation/docsync/internal/server/events"
	"github.com/agentstation/docsync/internal/server/events/adapters"
	"github.com/agentstation/docsync/internal/server/sse"
	ws "github.com/agentstation/docsync/internal/server/websocket"
	"github.com/agentstation/docsync/pkg/repos"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	engine         docsync.Client
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	config         Config
	ctx            context.Context
	cancel         context.CancelFunc
	startTime      time.Time
}

// New creates a new server instance wired to the given engine.
func New(engine docsync.Client, logger *zerolog.Logger, cfg Config) (*Server, error) {
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 15 * time.Second
	}

	broker := events.NewBroker(logger)
	wsHub := ws.NewHub(logger)
	sseBroadcaster := sse.NewBroadcaster(logger)

	// Subscribe transports to the broker
	broker.Subscribe(adapters.NewWebSocketSubscriber(wsHub))
	broker.Subscribe(adapters.NewSSESubscriber(sseBroadcaster))

	ctx, cancel := context.WithCancel(context.Background())

	server := &Server{
		engine:         engine,
		cache:          cache.New(cfg.CacheTTL, cfg.CacheTTL*2),
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
		logger:    logger,
		config:    cfg,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}

	server.connectHooks()
	return server, nil
}

// connectHooks registers engine hooks to publish to the event broker
// and invalidate the response cache.
func (s *Server) connectHooks() {
	s.engine.OnViewsUpdated(func(views []repos.View) {
		s.cache.Delete(cache.ViewsKey)
		s.broker.Publish(events.ViewsUpdated, map[string]any{
			"count": len(views),
			"views": views,
		})
	})

	s.engine.OnClonesResolved(func(ids []string) {
		s.broker.Publish(events.CloneResolved, map[string]any{
			"ids": ids,
		})
	})

	s.engine.OnClonesFailed(func(ids []string) {
		s.broker.Publish(events.CloneFailed, map[string]any{
			"ids": ids,
		})
	})

	s.logger.Info().Msg("Engine hooks connected to event broker")
}

// Start starts background services (broker, WebSocket hub, SSE
// broadcaster).
func (s *Server) Start() {
	go s.broker.Run(s.ctx)
	go s.wsHub.Run(s.ctx)
	go s.sseBroadcaster.Run(s.ctx)
	s.logger.Debug().Msg("Background services started")
}

// Handler returns the configured http.Handler with the middleware
// chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Shutdown gracefully shuts down background services.
func (s *Server) Shutdown(_ context.Context) error {
	s.logger.Info().Msg("Shutting down server background services")
	s.cancel()
	return nil
}

// Broker returns the event broker for publishing events.
func (s *Server) Broker() *events.Broker {
	return s.broker
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
