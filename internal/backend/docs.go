package backend

import (
	"context"
	"net/http"

	"github.com/agentstation/docsync/internal/transport"
	"github.com/agentstation/docsync/pkg/errors"
	"github.com/agentstation/docsync/pkg/repos"
)

// DocumentListItem is one entry of the documentation listing. Only the
// repository name participates in reconciliation; the remaining fields
// are carried for CLI display.
type DocumentListItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	RepoID    string `json:"repo_id"`
	RepoName  string `json:"repo_name"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ListDocuments retrieves the documentation listing.
func (c *Client) ListDocuments(ctx context.Context) ([]DocumentListItem, error) {
	resp, err := c.transport.Get(ctx, c.url(docsListPath))
	if err != nil {
		return nil, errors.WrapAPI(docsListPath, 0, err)
	}

	var items []DocumentListItem
	if err := decode(resp, docsListPath, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// DocIndex retrieves the documentation listing reduced to the membership
// set the reconciler consumes.
func (c *Client) DocIndex(ctx context.Context) (repos.DocIndex, error) {
	items, err := c.ListDocuments(ctx)
	if err != nil {
		return repos.NewDocIndex(), err
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.RepoName)
	}
	return repos.NewDocIndex(names...), nil
}

// decode decodes a backend response, delegating to the transport helper.
func decode(resp *http.Response, endpoint string, target any) error {
	return transport.DecodeResponse(resp, endpoint, target)
}
