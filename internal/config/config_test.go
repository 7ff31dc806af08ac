package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testBaseURL = "http://panel.example:8080"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, 30*time.Minute, cfg.EPGRefreshInterval)
	require.Equal(t, "info", cfg.LogLevel)

	require.Empty(t, cfg.BaseURL)
	require.Empty(t, cfg.Username)
	require.Empty(t, cfg.Password)
	require.Empty(t, cfg.PrefsPath)
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseURL = testBaseURL
	cfg.Username = "user"
	cfg.Password = "secret"

	require.NoError(t, cfg.Validate())
}

func TestValidate_MissingCredentials(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"missing base URL", func(c *Config) { c.BaseURL = "" }},
		{"missing username", func(c *Config) { c.Username = "" }},
		{"missing password", func(c *Config) { c.Password = "" }},
		{"all missing", func(c *Config) { c.BaseURL, c.Username, c.Password = "", "", "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.BaseURL = testBaseURL
			cfg.Username = "user"
			cfg.Password = "secret"
			tt.modify(cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, ErrNotConfigured)
		})
	}
}

func TestValidate_InvalidBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
	}{
		{"unparseable", "://invalid-url"},
		{"no scheme", "panel.example"},
		{"wrong scheme", "ftp://panel.example"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.BaseURL = tt.baseURL
			cfg.Username = "user"
			cfg.Password = "secret"

			err := cfg.Validate()
			require.Error(t, err)
			require.NotErrorIs(t, err, ErrNotConfigured)
		})
	}
}

func TestValidate_RefreshInterval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseURL = testBaseURL
	cfg.Username = "user"
	cfg.Password = "secret"
	cfg.EPGRefreshInterval = 10 * time.Second

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "refresh interval")

	cfg.EPGRefreshInterval = time.Minute
	require.NoError(t, cfg.Validate())
}
