// Package app provides the application context and dependency management
// for the docsync CLI. It centralizes configuration, logging, and the
// lazily created sync engine and backend client.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/docsync"
	"github.com/agentstation/docsync/internal/backend"
	"github.com/agentstation/docsync/pkg/errors"
)

// App represents the docsync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Engine and backend client (lazy-initialized, singletons)
	mu      sync.RWMutex
	engine  docsync.Client
	backend *backend.Client
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format string.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// ServerHost returns the configured HTTP facade bind address.
func (a *App) ServerHost() string {
	return a.config.ServerHost
}

// ServerPort returns the configured HTTP facade port.
func (a *App) ServerPort() int {
	return a.config.ServerPort
}

// ServerAuthKey returns the configured HTTP facade API key, empty when
// authentication is disabled.
func (a *App) ServerAuthKey() string {
	return a.config.ServerAuthKey
}

// Engine returns the sync engine, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Engine() (docsync.Client, error) {
	a.mu.RLock()
	if a.engine != nil {
		eng := a.engine
		a.mu.RUnlock()
		return eng, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.engine != nil {
		return a.engine, nil
	}

	eng, err := docsync.New(a.buildEngineOptions()...)
	if err != nil {
		return nil, errors.WrapResource("create", "engine", "", err)
	}

	a.engine = eng
	return eng, nil
}

// Backend returns the raw backend client, for commands that need
// operations the engine does not mediate.
func (a *App) Backend() (*backend.Client, error) {
	a.mu.RLock()
	if a.backend != nil {
		b := a.backend
		a.mu.RUnlock()
		return b, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.backend != nil {
		return a.backend, nil
	}

	b, err := backend.New(a.config.BackendURL, a.config.BackendToken)
	if err != nil {
		return nil, errors.WrapResource("create", "backend client", a.config.BackendURL, err)
	}

	a.backend = b
	return b, nil
}

// Shutdown performs graceful shutdown of the application.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.RLock()
	eng := a.engine
	a.mu.RUnlock()

	if eng != nil {
		if err := eng.AutoRefreshOff(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to stop auto-refresh during shutdown")
		}
		if err := eng.TaskWatchOff(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to stop task watcher during shutdown")
		}
	}

	return nil
}

// buildEngineOptions constructs engine options from the app configuration.
func (a *App) buildEngineOptions() []docsync.Option {
	opts := []docsync.Option{
		docsync.WithBackendURL(a.config.BackendURL, a.config.BackendToken),
		docsync.WithLogger(*a.logger),
	}

	if a.config.RefreshInterval > 0 {
		opts = append(opts, docsync.WithRefreshInterval(a.config.RefreshInterval))
	}
	if a.config.TaskPollInterval > 0 {
		opts = append(opts, docsync.WithTaskPollInterval(a.config.TaskPollInterval))
	}

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithEngine sets a custom engine instance (useful for testing).
func WithEngine(eng docsync.Client) Option {
	return func(a *App) error {
		a.engine = eng
		return nil
	}
}
