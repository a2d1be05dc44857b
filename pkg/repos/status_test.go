package repos_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/docsync/pkg/repos"
)

func TestTaskStatusTerminal(t *testing.T) {
	assert.False(t, repos.TaskPending.Terminal())
	assert.False(t, repos.TaskReceived.Terminal())
	assert.True(t, repos.TaskSuccess.Terminal())
	assert.True(t, repos.TaskFailure.Terminal())
}

func TestParseTaskStatus(t *testing.T) {
	tests := []struct {
		state string
		want  repos.TaskStatus
	}{
		{"PENDING", repos.TaskPending},
		{"RECEIVED", repos.TaskReceived},
		{"STARTED", repos.TaskReceived},
		{"RETRY", repos.TaskReceived},
		{"SUCCESS", repos.TaskSuccess},
		{"FAILURE", repos.TaskFailure},
		{"", repos.TaskPending},
		{"REVOKED", repos.TaskPending},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, repos.ParseTaskStatus(tt.state), tt.state)
	}
}

func TestDocIndex(t *testing.T) {
	idx := repos.NewDocIndex("repoA", "repoB", "")

	assert.Equal(t, 2, idx.Len())
	assert.True(t, idx.Has("repoA"))
	assert.True(t, idx.Has("repoB"))
	assert.False(t, idx.Has("repoC"))
	assert.False(t, idx.Has(""))
}

func TestEmptyDocIndex(t *testing.T) {
	idx := repos.NewDocIndex()
	assert.Equal(t, 0, idx.Len())
	assert.False(t, idx.Has("anything"))
}

func TestPendingCloneInFlight(t *testing.T) {
	pending := repos.PendingClone{URL: "https://github.com/a/b.git", TaskID: "t1", Status: repos.TaskReceived}
	assert.True(t, pending.InFlight())

	noTask := repos.PendingClone{URL: "https://github.com/a/b.git", Status: repos.TaskPending}
	assert.False(t, noTask.InFlight())

	done := repos.PendingClone{URL: "https://github.com/a/b.git", TaskID: "t1", Status: repos.TaskSuccess}
	assert.False(t, done.InFlight())

	failed := repos.PendingClone{URL: "https://github.com/a/b.git", TaskID: "t1", Status: repos.TaskFailure}
	assert.False(t, failed.InFlight())
}
