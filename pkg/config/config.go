// Package config provides configuration loading and validation for gitrewind.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidPort          = errors.New("invalid server port")
	ErrInvalidBodySize      = errors.New("invalid server max body size")
	ErrInvalidRateLimit     = errors.New("rate limit burst must be positive when rps is set")
	ErrInvalidCacheEntries  = errors.New("cache max entries must be positive")
	ErrInvalidCacheTTL      = errors.New("cache ttl must be positive")
	ErrInvalidPageCap       = errors.New("repository page cap must be positive")
	ErrInvalidThreshold     = errors.New("full year threshold must be between 1 and 366")
	ErrInvalidProjection    = errors.New("min projection days must be positive")
	ErrInvalidLogLevel      = errors.New("invalid log level")
	ErrInvalidLogFormat     = errors.New("invalid log format")
	ErrInvalidSamplingRatio = errors.New("telemetry sample ratio must be between 0 and 1")
)

// Default configuration values.
const (
	defaultPort              = 8080
	defaultHost              = "0.0.0.0"
	defaultMaxBodySize       = "1MB"
	defaultRPS               = 20
	defaultBurst             = 40
	defaultCacheEntries      = 1024
	defaultPageCap           = 100
	defaultFullYearThreshold = 350
	defaultMinProjection     = 7
	maxPort                  = 65535
	maxYearDays              = 366

	// EnvPrefix prefixes every environment override, e.g. GITREWIND_SERVER_PORT.
	EnvPrefix = "GITREWIND"
	// FileName is the config file looked up in the working and home directories.
	FileName = ".gitrewind"
)

// Config holds all configuration for gitrewind.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ServerConfig holds HTTP service configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	MaxBodySize     string        `mapstructure:"max_body_size"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Port            int           `mapstructure:"port"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MaxBodyBytes parses MaxBodySize, e.g. "1MB" or "512KiB".
func (s ServerConfig) MaxBodyBytes() (int64, error) {
	size, err := humanize.ParseBytes(s.MaxBodySize)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidBodySize, s.MaxBodySize, err)
	}

	if size == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidBodySize, s.MaxBodySize)
	}

	return int64(size), nil //nolint:gosec // humanize sizes of realistic limits fit in int64.
}

// RateLimitConfig holds the per-server token bucket. Zero RPS disables it.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// CacheConfig holds summary cache configuration.
type CacheConfig struct {
	MaxEntries     int           `mapstructure:"max_entries"`
	CurrentYearTTL time.Duration `mapstructure:"current_year_ttl"`
	PastYearTTL    time.Duration `mapstructure:"past_year_ttl"`
}

// AnalysisConfig holds summary and comparison tuning.
type AnalysisConfig struct {
	RepositoryPageCap int `mapstructure:"repository_page_cap"`
	FullYearThreshold int `mapstructure:"full_year_threshold"`
	MinProjectionDays int `mapstructure:"min_projection_days"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TelemetryConfig holds OpenTelemetry export configuration.
type TelemetryConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPHeaders  string  `mapstructure:"otlp_headers"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
}

// LoadConfig loads configuration from file and environment variables. An
// empty configPath searches for .gitrewind.yaml in the working directory and
// then the home directory; a missing file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(FileName)
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("$HOME")
	}

	viperCfg.SetEnvPrefix(EnvPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := config.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// Default returns the built-in configuration without reading a file or the
// environment.
func Default() *Config {
	viperCfg := viper.New()
	setDefaults(viperCfg)

	var config Config

	// The defaults are static and always decode.
	_ = viperCfg.Unmarshal(&config) //nolint:errcheck // see above.

	return &config
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	// Server defaults.
	viperCfg.SetDefault("server.port", defaultPort)
	viperCfg.SetDefault("server.host", defaultHost)
	viperCfg.SetDefault("server.read_timeout", "10s")
	viperCfg.SetDefault("server.write_timeout", "30s")
	viperCfg.SetDefault("server.idle_timeout", "60s")
	viperCfg.SetDefault("server.shutdown_timeout", "10s")
	viperCfg.SetDefault("server.max_body_size", defaultMaxBodySize)

	// Rate limit defaults.
	viperCfg.SetDefault("rate_limit.rps", defaultRPS)
	viperCfg.SetDefault("rate_limit.burst", defaultBurst)

	// Cache defaults.
	viperCfg.SetDefault("cache.max_entries", defaultCacheEntries)
	viperCfg.SetDefault("cache.current_year_ttl", "24h")
	viperCfg.SetDefault("cache.past_year_ttl", "8760h")

	// Analysis defaults.
	viperCfg.SetDefault("analysis.repository_page_cap", defaultPageCap)
	viperCfg.SetDefault("analysis.full_year_threshold", defaultFullYearThreshold)
	viperCfg.SetDefault("analysis.min_projection_days", defaultMinProjection)

	// Logging defaults.
	viperCfg.SetDefault("logging.level", "info")
	viperCfg.SetDefault("logging.format", "text")

	// Telemetry defaults.
	viperCfg.SetDefault("telemetry.otlp_endpoint", "")
	viperCfg.SetDefault("telemetry.otlp_headers", "")
	viperCfg.SetDefault("telemetry.otlp_insecure", false)
	viperCfg.SetDefault("telemetry.sample_ratio", 1.0)
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > maxPort {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Server.Port)
	}

	_, err := c.Server.MaxBodyBytes()
	if err != nil {
		return err
	}

	if c.RateLimit.RPS > 0 && c.RateLimit.Burst <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRateLimit, c.RateLimit.Burst)
	}

	if c.Cache.MaxEntries <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCacheEntries, c.Cache.MaxEntries)
	}

	if c.Cache.CurrentYearTTL <= 0 || c.Cache.PastYearTTL <= 0 {
		return fmt.Errorf("%w: current %s, past %s", ErrInvalidCacheTTL, c.Cache.CurrentYearTTL, c.Cache.PastYearTTL)
	}

	return c.validateRest()
}

func (c *Config) validateRest() error {
	if c.Analysis.RepositoryPageCap <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPageCap, c.Analysis.RepositoryPageCap)
	}

	if c.Analysis.FullYearThreshold <= 0 || c.Analysis.FullYearThreshold > maxYearDays {
		return fmt.Errorf("%w: %d", ErrInvalidThreshold, c.Analysis.FullYearThreshold)
	}

	if c.Analysis.MinProjectionDays <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidProjection, c.Analysis.MinProjectionDays)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidSamplingRatio, c.Telemetry.SampleRatio)
	}

	return nil
}
