// Package common provides shared utilities for minca
package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for minca
type Config struct {
	Locale  string        `toml:"locale"` // BCP 47 tag used for table collation, default "sk"
	Server  ServerConfig  `toml:"server"`
	Session SessionConfig `toml:"session"`
	Logging LoggingConfig `toml:"logging"`
}

// ServerConfig holds ledger API configuration
type ServerConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *ServerConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// SessionConfig holds the location of the stored session token
type SessionConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Locale: "sk",
		Server: ServerConfig{
			BaseURL:   "http://127.0.0.1:8000/api/v1",
			RateLimit: 5,
			Timeout:   "30s",
		},
		Session: SessionConfig{
			Path: home + "/.minca/session",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Later files override earlier ones; missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("MINCA_API_URL"); v != "" {
		config.Server.BaseURL = v
	}
	if v := os.Getenv("MINCA_API_TIMEOUT"); v != "" {
		config.Server.Timeout = v
	}
	if v := os.Getenv("MINCA_API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Server.RateLimit = n
		}
	}
	if v := os.Getenv("MINCA_SESSION_PATH"); v != "" {
		config.Session.Path = v
	}
	if v := os.Getenv("MINCA_LOCALE"); v != "" {
		config.Locale = v
	}
	if v := os.Getenv("MINCA_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("MINCA_LOG_FORMAT"); v != "" {
		config.Logging.Format = v
	}
}
