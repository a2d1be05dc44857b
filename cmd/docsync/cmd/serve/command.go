// Package serve provides the command that runs the HTTP facade.
package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/docsync"
	"github.com/agentstation/docsync/internal/server"
	"github.com/agentstation/docsync/pkg/constants"
)

// AppContext defines the interface that the serve command needs from the app.
type AppContext interface {
	Engine() (docsync.Client, error)
	Logger() *zerolog.Logger
	ServerHost() string
	ServerPort() int
	ServerAuthKey() string
}

// NewCommand creates the serve command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		GroupID: "core",
		Short:   "Serve the reconciled inventory over HTTP",
		Long: `Serve runs an HTTP server exposing the reconciled inventory as a
REST API, with WebSocket and server-sent event streams for realtime
updates. Automatic refresh and task watching run for the lifetime of
the server.`,
		Example: `  docsync serve
  docsync serve --port 9090
  docsync serve --auth-key secret`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			host, _ := cmd.Flags().GetString("host")
			port, _ := cmd.Flags().GetInt("port")
			authKey, _ := cmd.Flags().GetString("auth-key")
			if host == "" {
				host = app.ServerHost()
			}
			if port == 0 {
				port = app.ServerPort()
			}
			if authKey == "" {
				authKey = app.ServerAuthKey()
			}
			return run(cmd.Context(), app, host, port, authKey)
		},
	}

	cmd.Flags().String("host", "", "Bind address")
	cmd.Flags().Int("port", 0, "Port to listen on")
	cmd.Flags().String("auth-key", "", "Require this API key on requests")

	return cmd
}

func run(ctx context.Context, app AppContext, host string, port int, authKey string) error {
	logger := app.Logger()

	eng, err := app.Engine()
	if err != nil {
		return err
	}

	// Populate views before accepting requests. A failure here is not
	// fatal, the scheduler retries on its own cadence.
	if err := eng.Refresh(ctx); err != nil {
		logger.Warn().Err(err).Msg("Initial refresh failed, serving empty inventory")
	}

	if err := eng.AutoRefreshOn(); err != nil {
		return err
	}
	defer func() { _ = eng.AutoRefreshOff() }()

	if err := eng.TaskWatchOn(); err != nil {
		return err
	}
	defer func() { _ = eng.TaskWatchOff() }()

	cfg := server.DefaultConfig()
	cfg.Host = host
	cfg.Port = port
	if authKey != "" {
		cfg.AuthEnabled = true
		cfg.AuthKey = authKey
	}

	srv, err := server.New(eng, logger, cfg)
	if err != nil {
		return err
	}
	srv.Start()
	defer func() { _ = srv.Shutdown(context.Background()) }()

	addr := fmt.Sprintf("%s:%d", host, port)
	// WriteTimeout stays zero so the SSE and WebSocket streams are not
	// cut off.
	httpServer := &http.Server{
		Addr:        addr,
		Handler:     srv.Handler(),
		ReadTimeout: cfg.ReadTimeout,
		IdleTimeout: cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("HTTP server listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info().Msg("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ServerShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
