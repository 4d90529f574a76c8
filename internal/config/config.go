package config

import (
	"os"
	"strconv"
	"time"

	"csvexplorer/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Upload    UploadConfig
	View      ViewConfig
	Session   SessionConfig
	Profiling ProfilingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	GinMode         string
	ShutdownTimeout time.Duration
}

// UploadConfig bounds what the loader accepts
type UploadConfig struct {
	MaxMB int
}

// MaxBytes is the upload limit in bytes
func (u UploadConfig) MaxBytes() int64 {
	return int64(u.MaxMB) << 20
}

// ViewConfig holds rendering settings for the explorer page
type ViewConfig struct {
	PreviewRows   int
	HistogramBins int
	ChartWidth    int
	ChartHeight   int
}

// SessionConfig controls how long uploaded tables are kept
type SessionConfig struct {
	TTL time.Duration
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:    *loadServerConfig(),
		Upload:    UploadConfig{MaxMB: getEnvIntOrDefault("MAX_UPLOAD_MB", 200)},
		View:      *loadViewConfig(),
		Session:   SessionConfig{TTL: getEnvDurationOrDefault("SESSION_TTL", 2*time.Hour)},
		Profiling: *loadProfilingConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Default returns the configuration used when no environment is set
func Default() *Config {
	return &Config{
		Server:    ServerConfig{Port: "8080", GinMode: "debug", ShutdownTimeout: 10 * time.Second},
		Upload:    UploadConfig{MaxMB: 200},
		View:      ViewConfig{PreviewRows: 20, HistogramBins: 30, ChartWidth: 900, ChartHeight: 420},
		Session:   SessionConfig{TTL: 2 * time.Hour},
		Profiling: ProfilingConfig{Port: "6060"},
	}
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:            getEnvOrDefault("PORT", "8080"),
		GinMode:         getEnvOrDefault("GIN_MODE", "debug"),
		ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func loadViewConfig() *ViewConfig {
	return &ViewConfig{
		PreviewRows:   getEnvIntOrDefault("PREVIEW_ROWS", 20),
		HistogramBins: getEnvIntOrDefault("HISTOGRAM_BINS", 30),
		ChartWidth:    getEnvIntOrDefault("CHART_WIDTH", 900),
		ChartHeight:   getEnvIntOrDefault("CHART_HEIGHT", 420),
	}
}

func loadProfilingConfig() *ProfilingConfig {
	return &ProfilingConfig{
		Port:    getEnvOrDefault("PPROF_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
	}
}

func validateConfig(config *Config) error {
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid("PORT must be numeric")
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("GIN_MODE must be debug, release or test")
	}
	if config.Upload.MaxMB <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	if config.View.PreviewRows < 0 {
		return errors.ConfigInvalid("PREVIEW_ROWS must not be negative")
	}
	if config.View.HistogramBins <= 0 {
		return errors.ConfigInvalid("HISTOGRAM_BINS must be positive")
	}
	if config.View.ChartWidth < 100 || config.View.ChartHeight < 100 {
		return errors.ConfigInvalid("chart dimensions must be at least 100px")
	}
	if config.Session.TTL <= 0 {
		return errors.ConfigInvalid("SESSION_TTL must be positive")
	}
	if config.Profiling.Enabled && config.Profiling.Port == config.Server.Port {
		return errors.ConfigInvalid("PPROF_PORT must differ from PORT")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
