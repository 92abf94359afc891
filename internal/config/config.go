// Package config loads the central application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/lepinkainen/config-forge/pkg/filesystem"
)

// Config holds the central application configuration
type Config struct {
	// Fetch tuning for source retrieval
	Fetch struct {
		TimeoutSeconds int    `mapstructure:"timeout_seconds"` // Per-source request timeout
		Concurrency    int    `mapstructure:"concurrency"`     // Max concurrent fetches
		MaxRetries     int    `mapstructure:"max_retries"`     // Retry attempts per source
		UserAgent      string `mapstructure:"user_agent"`      // User-Agent header
		AuthToken      string `mapstructure:"auth_token"`      // Bearer token for private endpoints
		MinDelayMs     int    `mapstructure:"min_delay_ms"`    // Minimum delay between requests (0 = unpaced)
	} `mapstructure:"fetch"`

	// Cache configuration for the optional fetched-content cache
	Cache struct {
		Enabled  bool   `mapstructure:"enabled"`
		Path     string `mapstructure:"path"`
		TTLHours int    `mapstructure:"ttl_hours"`
	} `mapstructure:"cache"`

	// Groups controls output-group label derivation
	Groups struct {
		Fallback  string            `mapstructure:"fallback"`  // Label for sources without a usable filename
		Overrides map[string]string `mapstructure:"overrides"` // Derived label -> final label
	} `mapstructure:"groups"`
}

// FetchTimeout returns the per-source timeout as a duration
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// CacheTTL returns the cache TTL as a duration
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLHours) * time.Hour
}

// MinDelay returns the pacing delay between requests as a duration
func (c *Config) MinDelay() time.Duration {
	return time.Duration(c.Fetch.MinDelayMs) * time.Millisecond
}

// LoadConfig loads the configuration from a file
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = "config.yaml"
	}

	// If path is relative, try current directory first, then executable directory
	if !filepath.IsAbs(path) {
		if _, err := os.Stat(path); err != nil {
			if execPath, err := filesystem.GetDefaultPath(path); err == nil {
				if _, err := os.Stat(execPath); err == nil {
					path = execPath
				}
			}
			// If both fail, use original path and let Viper handle the error
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set default values
	v.SetDefault("fetch.timeout_seconds", 15)
	v.SetDefault("fetch.concurrency", 8)
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("fetch.user_agent", "config-forge/1.0")
	v.SetDefault("fetch.auth_token", "")
	v.SetDefault("fetch.min_delay_ms", 0)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.path", "fetch-cache.db")
	v.SetDefault("cache.ttl_hours", 12)

	v.SetDefault("groups.fallback", "misc")

	// Read configuration file
	if err := v.ReadInConfig(); err != nil {
		// If config file doesn't exist, that's okay - we'll use defaults
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}
