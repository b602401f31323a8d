package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Len(t, cfg.Feeds.Sources, 5)
	assert.Equal(t, 30, cfg.Feeds.DefaultLimit)
	assert.Equal(t, 300, cfg.Feeds.MaxLimit)
	assert.Contains(t, cfg.Feeds.UserAgent, "Mozilla/5.0")
	assert.Equal(t, 75*time.Second, cfg.Scrape.Timeout)
	assert.Equal(t, 1, cfg.Scrape.Concurrency)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
scrape:
  command: node
  args: ["worker.js"]
  timeout: 90s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "node", cfg.Scrape.Command)
	assert.Equal(t, []string{"worker.js"}, cfg.Scrape.Args)
	assert.Equal(t, 90*time.Second, cfg.Scrape.Timeout)
}

func TestEnvOverridesWin(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("SCRAPE_COMMAND", "python3")
	t.Setenv("SCRAPE_TIMEOUT", "2m")
	t.Setenv("FEED_SOURCES", "https://a.atom, https://b.atom")
	t.Setenv("APP_DEBUG", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "python3", cfg.Scrape.Command)
	assert.Equal(t, 2*time.Minute, cfg.Scrape.Timeout)
	assert.Equal(t, []string{"https://a.atom", "https://b.atom"}, cfg.Feeds.Sources)
	assert.True(t, cfg.Debug)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"no sources", func(c *Config) { c.Feeds.Sources = nil }},
		{"limit above max", func(c *Config) { c.Feeds.DefaultLimit = c.Feeds.MaxLimit + 1 }},
		{"no scrape command", func(c *Config) { c.Scrape.Command = "" }},
		{"zero concurrency", func(c *Config) { c.Scrape.Concurrency = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var cfg Config
			setDefaults(&cfg)
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a mapping"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
