package config

import (
	"log/slog"
	"strings"
	"time"
)

// Config aggregates the whole application configuration.
type Config struct {
	HTTP    HTTPConfig    `mapstructure:"http"`
	Log     LogConfig     `mapstructure:"log"`
	DB      DBConfig      `mapstructure:"database"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Server  ServerConfig  `mapstructure:"server"`
	Polling PollingConfig `mapstructure:"polling"`
	Jobs    JobsConfig    `mapstructure:"jobs"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// HTTPConfig configures the backend HTTP listener.
type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig configures slog output.
type LogConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	AddSource bool   `mapstructure:"add_source"`
}

// SlogLevel maps the configured level string onto slog levels.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DBConfig configures SQLite storage.
type DBConfig struct {
	Path string `mapstructure:"path"`
}

// AuthConfig configures the admin surface.
type AuthConfig struct {
	SigningKey        string        `mapstructure:"signing_key"`
	TokenTTL          time.Duration `mapstructure:"token_ttl"`
	Issuer            string        `mapstructure:"issuer"`
	AdminPasswordHash string        `mapstructure:"admin_password_hash"`
	BcryptCost        int           `mapstructure:"bcrypt_cost"`
}

// ServerConfig points client subcommands at the backend.
type ServerConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// PollingConfig holds tick intervals per client. Values are tuning
// parameters, not correctness constraints.
type PollingConfig struct {
	BoardInterval   time.Duration `mapstructure:"board_interval"`
	TrackerInterval time.Duration `mapstructure:"tracker_interval"`
	NotifyInterval  time.Duration `mapstructure:"notify_interval"`
}

// JobsConfig configures the background job scheduler.
type JobsConfig struct {
	StalePendingSpec      string        `mapstructure:"stale_pending_spec"`
	StalePendingThreshold time.Duration `mapstructure:"stale_pending_threshold"`
	MenuCacheRefreshSpec  string        `mapstructure:"menu_cache_refresh_spec"`
}

// MetricsConfig toggles the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}
