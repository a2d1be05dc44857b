// Package backend implements the client for the documentation console
// backend API. It covers the read contracts the reconciliation engine
// consumes (repository snapshot, documentation index, task status) and
// the write contracts user actions go through (clone submission,
// repository updates, documentation regeneration).
package backend

import (
	"strings"

	"github.com/agentstation/docsync/internal/transport"
	"github.com/agentstation/docsync/pkg/errors"
)

// API endpoint paths, relative to the configured base URL.
const (
	reposListPath     = "/repos/list"
	reposClonePath    = "/repos/clone"
	reposTasksPath    = "/repos/tasks/"
	reposDeletePath   = "/repos/delete"
	reposUpdatePath   = "/repos/update"
	reposRegenPath    = "/repos/regenerate-doc"
	docsListPath      = "/docs/list"
)

// Client talks to the console backend.
type Client struct {
	baseURL   string
	transport *transport.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTransport overrides the transport client, mainly for tests.
func WithTransport(t *transport.Client) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// New creates a backend client for the given base URL. An empty token
// disables authentication.
func New(baseURL, token string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, &errors.ValidationError{
			Field:   "base_url",
			Message: "backend base URL cannot be empty",
		}
	}

	c := &Client{
		baseURL:   trimmed,
		transport: transport.New(&transport.BearerAuth{}, token),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// url joins the base URL with an endpoint path.
func (c *Client) url(path string) string {
	return c.baseURL + path
}
