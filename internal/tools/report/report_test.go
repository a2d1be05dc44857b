package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/docsync/pkg/repos"
)

func testViews() []repos.View {
	return []repos.View{
		{
			Name:      "sqlite",
			URL:       "https://github.com/sqlite/sqlite",
			Status:    repos.TaskSuccess,
			DocStatus: repos.Documented,
			AddedAt:   utc.Time{Time: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
		},
		{
			Name:      "redis",
			URL:       "https://github.com/redis/redis",
			Status:    repos.TaskPending,
			DocStatus: repos.NotDocumented,
			TaskID:    "task-42",
		},
	}
}

func TestWriteReport(t *testing.T) {
	g := New()
	g.now = func() time.Time {
		return time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	}

	var buf bytes.Buffer
	require.NoError(t, g.Write(&buf, testViews()))

	out := buf.String()
	assert.Contains(t, out, "# Repository Inventory")
	assert.Contains(t, out, "March 2, 2026")
	assert.Contains(t, out, "https://github.com/sqlite/sqlite")
	assert.Contains(t, out, "## In-Flight Clones")
	assert.Contains(t, out, "task-42")

	// Rows are sorted by name, so redis precedes sqlite.
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("redis")), bytes.Index(buf.Bytes(), []byte("sqlite")))
}

func TestWriteReportNoPendingSection(t *testing.T) {
	g := New()
	var buf bytes.Buffer
	views := testViews()[:1]
	require.NoError(t, g.Write(&buf, views))
	assert.NotContains(t, buf.String(), "In-Flight Clones")
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reports", "inventory.md")

	g := New()
	require.NoError(t, g.WriteFile(path, testViews()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Repository Inventory")
}
