package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from config.yaml, FOODPOS_* environment
// variables and built-in defaults, in that order of precedence.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/foodpos/")

	v.SetEnvPrefix("FOODPOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Missing config file is fine; envs and defaults carry the rest.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", "0.0.0.0:8080")
	v.SetDefault("http.shutdown_timeout", "15s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("database.path", "data/foodpos.db")

	v.SetDefault("auth.signing_key", "change-me")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("auth.issuer", "foodpos")
	v.SetDefault("auth.bcrypt_cost", 12)

	v.SetDefault("server.base_url", "http://127.0.0.1:8080")

	v.SetDefault("polling.board_interval", "5s")
	v.SetDefault("polling.tracker_interval", "10s")
	v.SetDefault("polling.notify_interval", "15s")

	v.SetDefault("jobs.stale_pending_spec", "@every 1m")
	v.SetDefault("jobs.stale_pending_threshold", "10m")
	v.SetDefault("jobs.menu_cache_refresh_spec", "@every 5m")

	v.SetDefault("metrics.enabled", true)
}
