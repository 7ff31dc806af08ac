// Package config provides configuration for the IPTV client.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// ErrNotConfigured is returned when the panel credential triple is
// incomplete. Callers surface it synchronously instead of letting a fetch
// fail deep inside the client.
var ErrNotConfigured = errors.New("panel credentials not configured")

// Config holds the application configuration.
type Config struct {
	// Panel credentials
	BaseURL  string
	Username string
	Password string

	// Behavior
	EPGRefreshInterval time.Duration
	LogLevel           string
	PrefsPath          string
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		EPGRefreshInterval: 30 * time.Minute,
		LogLevel:           "info",
	}
}

// Validate checks the configuration for errors. A missing credential field
// yields ErrNotConfigured.
func (c *Config) Validate() error {
	if c.BaseURL == "" || c.Username == "" || c.Password == "" {
		return ErrNotConfigured
	}

	parsed, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("base URL must be http or https, got %q", c.BaseURL)
	}

	if c.EPGRefreshInterval < time.Minute {
		return fmt.Errorf("EPG refresh interval must be at least 1m, got %s", c.EPGRefreshInterval)
	}

	return nil
}
