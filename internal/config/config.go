// Package config provides centralized configuration for Lynne runtime values.
package config

import (
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration. Values come from the environment
// (optionally via a .env file) with sensible defaults.
type Config struct {
	// Gemini chat assistant.
	GeminiAPIKey string `env:"LYNNE_GEMINI_API_KEY"`
	GeminiModel  string `env:"LYNNE_GEMINI_MODEL" envDefault:"gemini-1.5-flash"`

	// DatabasePath overrides the default XDG data location.
	DatabasePath string `env:"LYNNE_DATABASE"`

	// HTTP client for webhooks and chat.
	HTTPTimeout    time.Duration `env:"LYNNE_HTTP_TIMEOUT" envDefault:"30s"`
	HTTPMaxRetries int           `env:"LYNNE_HTTP_MAX_RETRIES" envDefault:"3"`

	// Daemon lifecycle.
	DaemonStartupWait time.Duration `env:"LYNNE_DAEMON_STARTUP_WAIT" envDefault:"500ms"`
	DaemonKillTimeout time.Duration `env:"LYNNE_DAEMON_KILL_TIMEOUT" envDefault:"5s"`

	// SleepThreshold is the time gap that indicates the system was sleeping.
	// Checks older than this are skipped instead of fired late.
	SleepThreshold time.Duration `env:"LYNNE_SLEEP_THRESHOLD" envDefault:"1h"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RetryDelays returns the delays between webhook delivery attempts.
// The first attempt is immediate.
func (c *Config) RetryDelays() []time.Duration {
	return []time.Duration{0, 5 * time.Second, 30 * time.Second}
}

// Global holds the process-wide configuration instance.
var Global = mustLoad()

func mustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		// Parse errors here mean a malformed env var; fall back to defaults
		// rather than failing before the CLI can print anything.
		cfg = &Config{
			GeminiModel:       "gemini-1.5-flash",
			HTTPTimeout:       30 * time.Second,
			HTTPMaxRetries:    3,
			DaemonStartupWait: 500 * time.Millisecond,
			DaemonKillTimeout: 5 * time.Second,
			SleepThreshold:    time.Hour,
		}
	}
	return cfg
}
