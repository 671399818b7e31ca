// Package config handles configuration loading from an optional config file
// and environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// ListenAddr is the address:port the server listens on.
	ListenAddr string `mapstructure:"listen_addr"`

	// HttpLogging installs the request/response logging middleware.
	HttpLogging bool `mapstructure:"http_logging"`

	// EnablePprof exposes /debug/pprof.
	EnablePprof bool `mapstructure:"enable_pprof"`

	// EnableMetrics exposes /metrics and records per-request metrics.
	EnableMetrics bool `mapstructure:"enable_metrics"`

	// LogLevel is a zerolog level name (debug, info, warn, ...).
	LogLevel string `mapstructure:"log_level"`

	// LogFormat is "console" or "json".
	LogFormat string `mapstructure:"log_format"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

var defaults = map[string]any{
	"listen_addr":      ":8080",
	"http_logging":     true,
	"enable_pprof":     false,
	"enable_metrics":   true,
	"log_level":        "info",
	"log_format":       "console",
	"shutdown_timeout": 10 * time.Second,
}

// Load reads configuration with sensible defaults. Values come from, in
// increasing priority: defaults, ./configs/config.yaml (or the file named
// by CONFIG_FILE), and environment variables such as LISTEN_ADDR.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath("./configs")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log_format %q: want console or json", c.LogFormat)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid shutdown_timeout %s: must be positive", c.ShutdownTimeout)
	}
	if c.ListenAddr == "" {
		return errors.New("listen_addr must not be empty")
	}
	return nil
}
