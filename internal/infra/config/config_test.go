package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080/api", cfg.Backend.BaseURL)
	require.Equal(t, SessionFile, cfg.Session.Backend)
	require.Equal(t, 14, cfg.Dashboard.TrendDays)
	require.Equal(t, 3, cfg.Dashboard.ForecastDays)
	require.Equal(t, 30, cfg.Dashboard.HistoryDays)
	require.Equal(t, 300*time.Millisecond, cfg.Search.Debounce)
	require.Equal(t, SinkMemory, cfg.Export.Sink)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
backend:
  baseUrl: https://health.example.com/api
session:
  backend: valkey
  valkey:
    addr: localhost:6379
dashboard:
  historyDays: 60
search:
  debounce: 500ms
`), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("DASHBOARD_TREND_DAYS", "7")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "http://localhost:5173, http://127.0.0.1:5173")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://health.example.com/api", cfg.Backend.BaseURL)
	require.Equal(t, SessionValkey, cfg.Session.Backend)
	require.Equal(t, "healthdash", cfg.Session.Valkey.Prefix)
	require.Equal(t, 60, cfg.Dashboard.HistoryDays)
	require.Equal(t, 7, cfg.Dashboard.TrendDays)
	require.Equal(t, 500*time.Millisecond, cfg.Search.Debounce)
	require.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5173"}, cfg.HTTP.AllowedOrigins)
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("CONFIG_PATH", "")
	for _, key := range []string{"EXPORT_SINK", "EXPORT_DIR"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("EXPORT_SINK=dir\nEXPORT_DIR=out\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, SinkDir, cfg.Export.Sink)
	require.Equal(t, "out", cfg.Export.Dir)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"relative backend":     func(c *Config) { c.Backend.BaseURL = "/api" },
		"unknown session":      func(c *Config) { c.Session.Backend = "sqlite" },
		"valkey without addr":  func(c *Config) { c.Session.Backend = SessionValkey },
		"postgres without dsn": func(c *Config) { c.Session.Backend = SessionPostgres },
		"zero window":          func(c *Config) { c.Dashboard.ForecastDays = 0 },
		"s3 without bucket":    func(c *Config) { c.Export.Sink = SinkS3; c.Export.S3.Endpoint = "localhost:9000" },
		"unknown sink":         func(c *Config) { c.Export.Sink = "ftp" },
		"empty debounce":       func(c *Config) { c.Search.Debounce = 0 },
	}
	for name, mutate := range cases {
		cfg := defaultConfig()
		mutate(cfg)
		require.Error(t, cfg.Validate(), name)
	}
	require.NoError(t, defaultConfig().Validate())
}
