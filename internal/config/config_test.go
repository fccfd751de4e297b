package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gemini-1.5-flash", cfg.GeminiModel)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 3, cfg.HTTPMaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.DaemonStartupWait)
	assert.Equal(t, 5*time.Second, cfg.DaemonKillTimeout)
	assert.Equal(t, time.Hour, cfg.SleepThreshold)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LYNNE_GEMINI_API_KEY", "test-key")
	t.Setenv("LYNNE_GEMINI_MODEL", "gemini-1.5-pro")
	t.Setenv("LYNNE_HTTP_TIMEOUT", "10s")
	t.Setenv("LYNNE_SLEEP_THRESHOLD", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-1.5-pro", cfg.GeminiModel)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 30*time.Minute, cfg.SleepThreshold)
}

func TestRetryDelays(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	delays := cfg.RetryDelays()
	require.Len(t, delays, 3)
	assert.Equal(t, time.Duration(0), delays[0])
}
