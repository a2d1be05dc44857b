package backend

import (
	"context"
	"encoding/json"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/docsync/pkg/errors"
	"github.com/agentstation/docsync/pkg/repos"
)

// repoInfo is the wire shape of one repository row in the snapshot.
type repoInfo struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	RepoURL       string `json:"repo_url"`
	DateOfVersion string `json:"date_of_version"`
	Prompt        string `json:"specific_prompt"`
	WorkingDir    string `json:"ws_dir"`
	Head          string `json:"head"`
	Branch        string `json:"branch"`
}

// cloneRequest is the clone submission payload.
type cloneRequest struct {
	RepoURL string `json:"repo_url"`
	Branch  string `json:"branch,omitempty"`
	Depth   int    `json:"depth,omitempty"`
}

// cloneResponse is the clone submission reply.
type cloneResponse struct {
	TaskID string `json:"task_id"`
}

// taskStatusResponse is the task status reply.
type taskStatusResponse struct {
	TaskID string         `json:"task_id"`
	State  string         `json:"state"`
	Result map[string]any `json:"result"`
}

// statusResponse is the generic status/message reply for write endpoints.
type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ListRepos retrieves the authoritative repository snapshot.
func (c *Client) ListRepos(ctx context.Context) ([]repos.Repository, error) {
	resp, err := c.transport.Get(ctx, c.url(reposListPath))
	if err != nil {
		return nil, errors.WrapAPI(reposListPath, 0, err)
	}

	var rows []repoInfo
	if err := decode(resp, reposListPath, &rows); err != nil {
		return nil, err
	}

	snapshot := make([]repos.Repository, 0, len(rows))
	for _, row := range rows {
		snapshot = append(snapshot, repos.Repository{
			ID:          row.ID,
			URL:         row.RepoURL,
			Name:        row.Name,
			Description: row.Description,
			Prompt:      row.Prompt,
			VersionDate: parseDate(row.DateOfVersion),
			WorkingDir:  row.WorkingDir,
			Head:        row.Head,
			Branch:      row.Branch,
		})
	}
	return snapshot, nil
}

// SubmitClone enqueues a clone for the given repository URL and returns
// the server-issued task identifier.
func (c *Client) SubmitClone(ctx context.Context, url string) (string, error) {
	if err := repos.ValidateURL(url); err != nil {
		return "", err
	}

	body, err := json.Marshal(cloneRequest{RepoURL: url})
	if err != nil {
		return "", errors.WrapParse("json", err)
	}

	resp, err := c.transport.Post(ctx, c.url(reposClonePath), body)
	if err != nil {
		return "", errors.WrapAPI(reposClonePath, 0, err)
	}

	var reply cloneResponse
	if err := decode(resp, reposClonePath, &reply); err != nil {
		return "", err
	}
	if reply.TaskID == "" {
		return "", &errors.APIError{
			Endpoint: reposClonePath,
			Message:  "clone submission returned no task identifier",
		}
	}
	return reply.TaskID, nil
}

// TaskStatus polls the state of a previously submitted task.
func (c *Client) TaskStatus(ctx context.Context, taskID string) (repos.TaskStatus, error) {
	if taskID == "" {
		return "", &errors.ValidationError{
			Field:   "task_id",
			Message: "task identifier cannot be empty",
		}
	}

	resp, err := c.transport.Get(ctx, c.url(reposTasksPath+taskID))
	if err != nil {
		return "", errors.WrapAPI(reposTasksPath, 0, err)
	}

	var reply taskStatusResponse
	if err := decode(resp, reposTasksPath, &reply); err != nil {
		return "", err
	}
	return repos.ParseTaskStatus(reply.State), nil
}

// DeleteRepo removes a repository and its prompts from the backend.
func (c *Client) DeleteRepo(ctx context.Context, repoID int) error {
	return c.postStatus(ctx, reposDeletePath, map[string]any{"repo_id": repoID})
}

// UpdateRepo changes a repository's display name and/or description.
// Empty fields are left untouched.
func (c *Client) UpdateRepo(ctx context.Context, repoID int, name, description string) error {
	payload := map[string]any{"repo_id": repoID}
	if name != "" {
		payload["name"] = name
	}
	if description != "" {
		payload["description"] = description
	}
	return c.postStatus(ctx, reposUpdatePath, payload)
}

// RegenerateDoc requests documentation regeneration for a repository.
// The caller marks the matching view as generating until a terminal
// signal arrives.
func (c *Client) RegenerateDoc(ctx context.Context, repoID int) error {
	return c.postStatus(ctx, reposRegenPath, map[string]any{"repo_id": repoID})
}

// postStatus posts a JSON payload and checks the generic status reply.
func (c *Client) postStatus(ctx context.Context, path string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.WrapParse("json", err)
	}

	resp, err := c.transport.Post(ctx, c.url(path), body)
	if err != nil {
		return errors.WrapAPI(path, 0, err)
	}

	var reply statusResponse
	if err := decode(resp, path, &reply); err != nil {
		return err
	}
	if reply.Status != "" && reply.Status != "ok" {
		return &errors.APIError{
			Endpoint: path,
			Message:  reply.Message,
		}
	}
	return nil
}

// parseDate parses a backend timestamp, defaulting to the zero time on
// any shape it does not recognize. A missing date must not fail the
// snapshot.
func parseDate(s string) utc.Time {
	if s == "" {
		return utc.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05", "2006-01-02"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			return utc.New(parsed)
		}
	}
	return utc.Time{}
}
