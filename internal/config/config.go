package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level ledger.yaml configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Sync     SyncConfig     `yaml:"sync"`
}

// DatabaseConfig locates the embedded store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// SyncConfig controls the portfolio sync client. APIKey is an opaque
// secret injected into the sync client at construction; it is never
// logged.
type SyncConfig struct {
	Endpoint        string `yaml:"endpoint"`
	APIKey          string `yaml:"api_key"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
	MaxAttempts     int    `yaml:"max_attempts"`
	BackoffSeconds  int    `yaml:"backoff_seconds"`
	IntervalMinutes int    `yaml:"interval_minutes"`
}

// Timeout returns the remote round-trip bound.
func (s SyncConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Backoff returns the initial retry delay.
func (s SyncConfig) Backoff() time.Duration {
	return time.Duration(s.BackoffSeconds) * time.Second
}

// Interval returns the periodic sync interval.
func (s SyncConfig) Interval() time.Duration {
	return time.Duration(s.IntervalMinutes) * time.Minute
}

// Load reads a ledger.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file. The file may hold the API key, so
// it is written owner-readable only.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "ledger.db",
		},
		Sync: SyncConfig{
			TimeoutSeconds:  30,
			MaxAttempts:     5,
			BackoffSeconds:  2,
			IntervalMinutes: 15,
		},
	}
}
