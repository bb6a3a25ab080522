// Package config loads service configuration from YAML with environment
// variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete service configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Provider ProviderConfig `yaml:"provider"`
	Cache    CacheConfig    `yaml:"cache"`
	Journal  JournalConfig  `yaml:"journal"`
	Analysis AnalysisConfig `yaml:"analysis"`
	LogLevel string         `yaml:"log_level"`
}

// ServerConfig contains HTTP server parameters.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// ProviderConfig contains data provider parameters.
type ProviderConfig struct {
	BaseURL string `yaml:"base_url"` // empty selects the public Yahoo endpoint
	Timeout string `yaml:"timeout"`  // e.g. "30s"
}

// ParseTimeout converts the timeout string to a time.Duration.
func (p ProviderConfig) ParseTimeout() (time.Duration, error) {
	if p.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(p.Timeout)
}

// CacheConfig contains response cache parameters.
type CacheConfig struct {
	TTL string `yaml:"ttl"` // e.g. "15m"
}

// ParseTTL converts the TTL string to a time.Duration.
func (c CacheConfig) ParseTTL() (time.Duration, error) {
	if c.TTL == "" {
		return 0, nil
	}
	return time.ParseDuration(c.TTL)
}

// JournalConfig contains fetch-journal parameters.
type JournalConfig struct {
	Type   string `yaml:"type"` // "sqlite" or "none"
	DBPath string `yaml:"db_path,omitempty"`
}

// AnalysisConfig contains default indicator parameters, used when a request
// doesn't override them.
type AnalysisConfig struct {
	ShortWindow int     `yaml:"short_window"`
	LongWindow  int     `yaml:"long_window"`
	BollWindow  int     `yaml:"boll_window"`
	BollK       float64 `yaml:"boll_k"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is fine; overrides and defaults still apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("STOCKDASH_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("STOCKDASH_PROVIDER_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv("STOCKDASH_CACHE_TTL"); v != "" {
		cfg.Cache.TTL = v
	}
	if v := os.Getenv("STOCKDASH_DB"); v != "" {
		cfg.Journal.Type = "sqlite"
		cfg.Journal.DBPath = v
	}
	if v := os.Getenv("STOCKDASH_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("STOCKDASH_SHORT_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.ShortWindow = n
		}
	}
	if v := os.Getenv("STOCKDASH_LONG_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.LongWindow = n
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration as YAML.
func (c *Config) SaveToFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks that all fields are usable.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if _, err := c.Provider.ParseTimeout(); err != nil {
		return fmt.Errorf("provider.timeout: %w", err)
	}
	if _, err := c.Cache.ParseTTL(); err != nil {
		return fmt.Errorf("cache.ttl: %w", err)
	}
	if c.Journal.Type != "sqlite" && c.Journal.Type != "none" {
		return fmt.Errorf("journal.type must be 'sqlite' or 'none'")
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path required for sqlite type")
	}
	if c.Analysis.ShortWindow <= 0 || c.Analysis.LongWindow <= 0 || c.Analysis.BollWindow <= 0 {
		return fmt.Errorf("analysis windows must be positive")
	}
	if c.Analysis.BollK <= 0 {
		return fmt.Errorf("analysis.boll_k must be positive")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Provider: ProviderConfig{
			Timeout: "30s",
		},
		Cache: CacheConfig{
			TTL: "15m",
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./stockdash.db",
		},
		Analysis: AnalysisConfig{
			ShortWindow: 20,
			LongWindow:  50,
			BollWindow:  20,
			BollK:       2.0,
		},
		LogLevel: "info",
	}
}
