package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "github.com/agentstation/docsync/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "repository",
			ID:       "docsync",
		}
		assert.Equal(t, "repository with ID docsync not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("task", "t1")
		assert.Equal(t, "task with ID t1 not found", err.Error())
		assert.True(t, pkgerrors.IsNotFound(err))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "repo_url",
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for field repo_url: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Message: "invalid configuration",
		}
		assert.Equal(t, "validation failed: invalid configuration", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestAPIError(t *testing.T) {
	t.Run("with status code", func(t *testing.T) {
		err := &pkgerrors.APIError{
			Endpoint:   "/repos/list",
			StatusCode: 503,
			Message:    "service unavailable",
		}
		assert.Contains(t, err.Error(), "/repos/list")
		assert.Contains(t, err.Error(), "503")
		assert.True(t, pkgerrors.IsBackendUnavailable(err))
	})

	t.Run("not found status", func(t *testing.T) {
		err := pkgerrors.NewAPIError("/repos/tasks/t1", 404, "no such task")
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("with wrapped error", func(t *testing.T) {
		base := errors.New("connection refused")
		err := pkgerrors.WrapAPI("/docs/list", 0, base)
		assert.True(t, errors.Is(err, base))
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestRefreshError(t *testing.T) {
	base := errors.New("boom")
	err := pkgerrors.NewRefreshError(7, "snapshot", base)
	assert.Equal(t, "refresh cycle 7 failed at snapshot: boom", err.Error())
	assert.True(t, errors.Is(err, base))
}

func TestStaleCycle(t *testing.T) {
	assert.True(t, pkgerrors.IsStaleCycle(pkgerrors.ErrStaleCycle))
	assert.False(t, pkgerrors.IsStaleCycle(errors.New("other")))
}

func TestWrapHelpers(t *testing.T) {
	t.Run("nil passthrough", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapResource("fetch", "repository", "", nil))
		assert.NoError(t, pkgerrors.WrapIO("read", "/tmp/x", nil))
		assert.NoError(t, pkgerrors.WrapParse("json", nil))
		assert.NoError(t, pkgerrors.WrapAPI("/repos/list", 500, nil))
	})

	t.Run("resource wrap", func(t *testing.T) {
		base := errors.New("boom")
		err := pkgerrors.WrapResource("fetch", "repository", "docsync", base)
		assert.Contains(t, err.Error(), "failed to fetch repository docsync")
		assert.True(t, errors.Is(err, base))
	})
}
