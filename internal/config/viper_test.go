package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetStringDefault(t *testing.T) {
	assert.Equal(t, "fallback", GetStringDefault("DOCSYNC_TEST_UNSET_KEY", "fallback"))

	t.Setenv("DOCSYNC_TEST_SET_KEY", "configured")
	assert.Equal(t, "configured", GetStringDefault("DOCSYNC_TEST_SET_KEY", "fallback"))
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 20*time.Second, GetDuration("DOCSYNC_TEST_UNSET_DURATION", 20*time.Second))

	t.Setenv("DOCSYNC_TEST_DURATION", "45s")
	assert.Equal(t, 45*time.Second, GetDuration("DOCSYNC_TEST_DURATION", 20*time.Second))

	t.Setenv("DOCSYNC_TEST_DURATION", "not-a-duration")
	assert.Equal(t, 20*time.Second, GetDuration("DOCSYNC_TEST_DURATION", 20*time.Second))
}

func TestGetBool(t *testing.T) {
	assert.False(t, GetBool("DOCSYNC_TEST_UNSET_BOOL"))

	t.Setenv("DOCSYNC_TEST_BOOL", "true")
	assert.True(t, GetBool("DOCSYNC_TEST_BOOL"))

	t.Setenv("DOCSYNC_TEST_BOOL", "0")
	assert.False(t, GetBool("DOCSYNC_TEST_BOOL"))
}
