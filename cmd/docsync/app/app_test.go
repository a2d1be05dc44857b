package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		BackendURL: "http://localhost:8000",
		LogOutput:  "stderr",
		LogFormat:  "json",
	}
}

func TestNewApp(t *testing.T) {
	a, err := New("1.2.3", "abc123", "2026-03-01", "test", WithConfig(testConfig()))
	require.NoError(t, err)

	assert.Equal(t, "1.2.3", a.Version())
	assert.Equal(t, "abc123", a.Commit())
	assert.NotNil(t, a.Logger())
	assert.Equal(t, "http://localhost:8000", a.Config().BackendURL)
}

func TestEngineIsSingleton(t *testing.T) {
	a, err := New("dev", "", "", "", WithConfig(testConfig()))
	require.NoError(t, err)

	first, err := a.Engine()
	require.NoError(t, err)
	second, err := a.Engine()
	require.NoError(t, err)
	assert.Same(t, first, second)

	require.NoError(t, a.Shutdown(context.Background()))
}

func TestVersionCommand(t *testing.T) {
	a, err := New("9.9.9", "deadbeef", "2026-03-01", "test", WithConfig(testConfig()))
	require.NoError(t, err)

	cmd := a.CreateVersionCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.Run(cmd, nil)

	assert.Contains(t, buf.String(), "docsync 9.9.9")
}
