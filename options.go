package docsync

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/docsync/pkg/constants"
	"github.com/agentstation/docsync/pkg/errors"
	"github.com/agentstation/docsync/pkg/logging"
)

// Option is a function that configures a Client instance.
type Option func(*options) error

// options holds the configured options for a Client.
type options struct {
	backend      Backend
	backendURL   string
	backendToken string

	refreshInterval  time.Duration
	taskPollInterval time.Duration

	autoRefreshEnabled bool
	taskWatchEnabled   bool

	logger zerolog.Logger
}

// defaults returns the default options.
func defaults() *options {
	return &options{
		refreshInterval:  constants.DefaultRefreshInterval,
		taskPollInterval: constants.DefaultTaskPollInterval,
		logger:           *logging.Default(),
	}
}

// apply applies the given options, validating the result.
func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.backend == nil && o.backendURL == "" {
		return nil, &errors.ValidationError{
			Field:   "backend",
			Message: "a backend URL or backend client is required",
		}
	}
	if o.refreshInterval <= 0 {
		return nil, &errors.ValidationError{
			Field:   "refreshInterval",
			Value:   o.refreshInterval,
			Message: "refresh interval must be positive",
		}
	}
	if o.taskPollInterval <= 0 {
		return nil, &errors.ValidationError{
			Field:   "taskPollInterval",
			Value:   o.taskPollInterval,
			Message: "task poll interval must be positive",
		}
	}
	return o, nil
}

// WithBackendURL configures the backend base URL. An empty token skips
// Bearer token authentication.
func WithBackendURL(url, token string) Option {
	return func(o *options) error {
		o.backendURL = url
		o.backendToken = token
		return nil
	}
}

// WithBackend configures a prebuilt backend client, mainly for tests.
func WithBackend(b Backend) Option {
	return func(o *options) error {
		o.backend = b
		return nil
	}
}

// WithRefreshInterval configures the automatic refresh cadence.
func WithRefreshInterval(interval time.Duration) Option {
	return func(o *options) error {
		o.refreshInterval = interval
		return nil
	}
}

// WithTaskPollInterval configures how often in-flight task statuses are
// polled by the task watcher.
func WithTaskPollInterval(interval time.Duration) Option {
	return func(o *options) error {
		o.taskPollInterval = interval
		return nil
	}
}

// WithAutoRefresh configures whether automatic refresh starts on New.
func WithAutoRefresh(enabled bool) Option {
	return func(o *options) error {
		o.autoRefreshEnabled = enabled
		return nil
	}
}

// WithTaskWatch configures whether the task watcher starts on New.
func WithTaskWatch(enabled bool) Option {
	return func(o *options) error {
		o.taskWatchEnabled = enabled
		return nil
	}
}

// WithLogger configures the logger used by the engine.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}
