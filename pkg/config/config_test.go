package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitrewind/pkg/config"
)

const (
	testPort    = 9000
	testEnvPort = 9090
	testPageCap = 50
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".gitrewind.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	// Test loading with no config file (should use defaults).
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 100, cfg.Analysis.RepositoryPageCap)
	assert.Equal(t, 350, cfg.Analysis.FullYearThreshold)
	assert.Equal(t, 7, cfg.Analysis.MinProjectionDays)
	assert.Equal(t, 24*time.Hour, cfg.Cache.CurrentYearTTL)
	assert.Equal(t, 365*24*time.Hour, cfg.Cache.PastYearTTL)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.InDelta(t, 1.0, cfg.Telemetry.SampleRatio, 1e-9)

	size, err := cfg.Server.MaxBodyBytes()
	require.NoError(t, err)
	assert.Equal(t, int64(1000*1000), size)
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
server:
  port: 9000
  host: "127.0.0.1"
  max_body_size: "512KiB"

analysis:
  repository_page_cap: 50

rate_limit:
  rps: 0
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, testPort, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, testPageCap, cfg.Analysis.RepositoryPageCap)
	assert.Zero(t, cfg.RateLimit.RPS)

	size, err := cfg.Server.MaxBodyBytes()
	require.NoError(t, err)
	assert.Equal(t, int64(512*1024), size)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("GITREWIND_SERVER_PORT", "9090")
	t.Setenv("GITREWIND_LOGGING_FORMAT", "json")
	t.Setenv("GITREWIND_TELEMETRY_OTLP_ENDPOINT", "collector:4317")

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, testEnvPort, cfg.Server.Port)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "collector:4317", cfg.Telemetry.OTLPEndpoint)
}

func TestTimeDurationParsing(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
server:
  read_timeout: "15s"
  write_timeout: "30s"
  idle_timeout: "2m"

cache:
  current_year_ttl: "6h"
  past_year_ttl: "720h"
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 2*time.Minute, cfg.Server.IdleTimeout)
	assert.Equal(t, 6*time.Hour, cfg.Cache.CurrentYearTTL)
	assert.Equal(t, 720*time.Hour, cfg.Cache.PastYearTTL)
}

func TestLoadConfigValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "port", content: "server:\n  port: 70000\n", wantErr: config.ErrInvalidPort},
		{name: "body_size", content: "server:\n  max_body_size: \"lots\"\n", wantErr: config.ErrInvalidBodySize},
		{name: "burst", content: "rate_limit:\n  rps: 5\n  burst: 0\n", wantErr: config.ErrInvalidRateLimit},
		{name: "cache_entries", content: "cache:\n  max_entries: 0\n", wantErr: config.ErrInvalidCacheEntries},
		{name: "cache_ttl", content: "cache:\n  past_year_ttl: \"0s\"\n", wantErr: config.ErrInvalidCacheTTL},
		{name: "page_cap", content: "analysis:\n  repository_page_cap: -1\n", wantErr: config.ErrInvalidPageCap},
		{name: "threshold", content: "analysis:\n  full_year_threshold: 400\n", wantErr: config.ErrInvalidThreshold},
		{name: "projection", content: "analysis:\n  min_projection_days: 0\n", wantErr: config.ErrInvalidProjection},
		{name: "log_level", content: "logging:\n  level: loud\n", wantErr: config.ErrInvalidLogLevel},
		{name: "log_format", content: "logging:\n  format: xml\n", wantErr: config.ErrInvalidLogFormat},
		{name: "sample_ratio", content: "telemetry:\n  sample_ratio: 2\n", wantErr: config.ErrInvalidSamplingRatio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.LoadConfig(writeConfig(t, tt.content))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDefaultMatchesLoadedDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.InDelta(t, 20.0, cfg.RateLimit.RPS, 1e-9)
	assert.Equal(t, 40, cfg.RateLimit.Burst)
	assert.Equal(t, 1024, cfg.Cache.MaxEntries)
}
