package list_test

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/docsync"
	"github.com/agentstation/docsync/cmd/docsync/cmd/list"
	"github.com/agentstation/docsync/pkg/repos"
)

type stubBackend struct{}

func (s *stubBackend) ListRepos(_ context.Context) ([]repos.Repository, error) {
	return []repos.Repository{
		{ID: 1, URL: "https://github.com/sqlite/sqlite", Name: "sqlite"},
		{ID: 2, URL: "https://github.com/redis/redis", Name: "redis"},
	}, nil
}

func (s *stubBackend) DocIndex(_ context.Context) (repos.DocIndex, error) {
	return repos.NewDocIndex("sqlite"), nil
}

func (s *stubBackend) SubmitClone(_ context.Context, _ string) (string, error) {
	return "t-1", nil
}

func (s *stubBackend) TaskStatus(_ context.Context, _ string) (repos.TaskStatus, error) {
	return repos.TaskPending, nil
}

func (s *stubBackend) RegenerateDoc(_ context.Context, _ int) error {
	return nil
}

type testApp struct {
	engine docsync.Client
	format string
}

func (a *testApp) Engine() (docsync.Client, error) { return a.engine, nil }
func (a *testApp) Logger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}
func (a *testApp) OutputFormat() string { return a.format }

func newTestApp(t *testing.T, format string) *testApp {
	t.Helper()
	eng, err := docsync.New(
		docsync.WithBackend(&stubBackend{}),
		docsync.WithLogger(zerolog.Nop()),
	)
	require.NoError(t, err)
	return &testApp{engine: eng, format: format}
}

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// what was written.
func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	runErr := fn()
	require.NoError(t, w.Close())
	require.NoError(t, runErr)

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestListCommand(t *testing.T) {
	app := newTestApp(t, "json")
	cmd := list.NewCommand(app)
	cmd.SetArgs([]string{})

	out := captureStdout(t, func() error {
		return cmd.ExecuteContext(context.Background())
	})

	assert.Contains(t, out, "https://github.com/sqlite/sqlite")
	assert.Contains(t, out, "https://github.com/redis/redis")
	assert.Contains(t, out, `"doc_status"`)
}

func TestListCommandTable(t *testing.T) {
	app := newTestApp(t, "table")
	cmd := list.NewCommand(app)
	cmd.SetArgs([]string{"--wide"})

	out := captureStdout(t, func() error {
		return cmd.ExecuteContext(context.Background())
	})

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "BRANCH")
	assert.Contains(t, out, "sqlite")
}
