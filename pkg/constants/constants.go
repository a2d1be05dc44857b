// Package constants provides shared constants used throughout the docsync codebase.
// This includes timeouts, intervals, file permissions, and other configuration
// values that should be consistent across the application.
package constants

import "time"

// Timeout and interval constants define durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to the console backend
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// DefaultRefreshInterval is the cadence between automatic snapshot refreshes
	DefaultRefreshInterval = 20 * time.Second

	// DefaultTaskPollInterval is the cadence between clone-task status polls
	DefaultTaskPollInterval = 5 * time.Second

	// RefreshContextTimeout is the timeout for a single refresh cycle
	RefreshContextTimeout = 1 * time.Minute

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute

	// ServerShutdownTimeout is how long the HTTP facade waits for graceful shutdown
	ServerShutdownTimeout = 10 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Network defaults
const (
	// DefaultBackendURL is the console backend address used when no
	// configuration overrides it
	DefaultBackendURL = "http://localhost:8000"

	// DefaultServerPort is the default port for the HTTP facade
	DefaultServerPort = 8080
)

// Limit constants define various limits and capacities
const (
	// EventBufferSize is the buffer size for event broker and SSE channels
	EventBufferSize = 256

	// MaxResponseBodySize caps backend response bodies to guard against
	// pathological payloads (32 MB)
	MaxResponseBodySize = 32 << 20
)
