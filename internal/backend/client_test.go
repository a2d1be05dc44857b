package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/docsync/internal/backend"
	"github.com/agentstation/docsync/pkg/errors"
	"github.com/agentstation/docsync/pkg/repos"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *backend.Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := backend.New(server.URL, "")
	require.NoError(t, err)
	return server, client
}

func TestNewValidation(t *testing.T) {
	_, err := backend.New("", "")
	assert.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	client, err := backend.New("http://localhost:8000/", "")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestListRepos(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/list", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{
				"id":              1,
				"name":            "repoA",
				"description":     "first repo",
				"repo_url":        "https://github.com/acme/a.git",
				"date_of_version": "2026-08-01T10:30:00",
				"specific_prompt": "be thorough",
			},
			{
				"id":       2,
				"name":     "repoB",
				"repo_url": "https://github.com/acme/b.git",
			},
		})
	})

	snapshot, err := client.ListRepos(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot, 2)

	assert.Equal(t, 1, snapshot[0].ID)
	assert.Equal(t, "repoA", snapshot[0].Name)
	assert.Equal(t, "be thorough", snapshot[0].Prompt)
	assert.False(t, snapshot[0].VersionDate.IsZero())

	assert.Equal(t, "repoB", snapshot[1].Name)
	assert.True(t, snapshot[1].VersionDate.IsZero(), "missing date defaults to zero")
}

func TestListReposServerError(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.ListRepos(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsBackendUnavailable(err))
}

func TestSubmitClone(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/clone", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "https://github.com/acme/a.git", payload["repo_url"])

		_ = json.NewEncoder(w).Encode(map[string]string{"task_id": "t-123"})
	})

	taskID, err := client.SubmitClone(context.Background(), "https://github.com/acme/a.git")
	require.NoError(t, err)
	assert.Equal(t, "t-123", taskID)
}

func TestSubmitCloneRejectsBadURL(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected for an invalid URL")
	})

	_, err := client.SubmitClone(context.Background(), "not a url")
	assert.True(t, errors.IsValidationError(err))
}

func TestTaskStatus(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/tasks/t-123", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"task_id": "t-123",
			"state":   "STARTED",
		})
	})

	status, err := client.TaskStatus(context.Background(), "t-123")
	require.NoError(t, err)
	assert.Equal(t, repos.TaskReceived, status)

	_, err = client.TaskStatus(context.Background(), "")
	assert.True(t, errors.IsValidationError(err))
}

func TestDocIndex(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/docs/list", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]map[string]string{
			{"id": "1", "repo_name": "repoA", "title": "repoA"},
			{"id": "2", "repo_name": "repoB", "title": "repoB"},
		})
	})

	index, err := client.DocIndex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, index.Len())
	assert.True(t, index.Has("repoA"))
	assert.False(t, index.Has("repoC"))
}

func TestWriteEndpoints(t *testing.T) {
	var gotPath string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	ctx := context.Background()
	require.NoError(t, client.DeleteRepo(ctx, 1))
	assert.Equal(t, "/repos/delete", gotPath)

	require.NoError(t, client.UpdateRepo(ctx, 1, "newname", ""))
	assert.Equal(t, "/repos/update", gotPath)

	require.NoError(t, client.RegenerateDoc(ctx, 1))
	assert.Equal(t, "/repos/regenerate-doc", gotPath)
}

func TestWriteEndpointErrorStatus(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "message": "already exists"})
	})

	err := client.UpdateRepo(context.Background(), 1, "dup", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
