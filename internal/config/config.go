// Package config holds user-level client configuration: which backend to
// talk to, the UI theme, and logging settings. Configuration lives in
// ~/.lojinha/config.yaml and can be overridden per-invocation through
// LOJINHA_* environment variables or a local .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"lojinha/internal/logging"
)

// Config holds all lojinha configuration.
type Config struct {
	// Backend address, scheme and port included.
	BaseURL string `yaml:"base_url"`

	// Request timeout, as a duration string.
	Timeout string `yaml:"timeout"`

	// UI theme: "light" or "dark".
	Theme string `yaml:"theme"`

	// Logging
	Logging logging.Settings `yaml:"logging"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		BaseURL: "http://localhost:8080",
		Timeout: "15s",
		Theme:   "light",
	}
}

// Dir returns the directory where lojinha state is stored.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".lojinha"), nil
}

// File returns the full path to the config file.
func File() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the configuration from disk and applies environment
// overrides. A missing file yields the defaults, not an error.
func Load() (Config, error) {
	// .env is optional; absence is not an error.
	_ = godotenv.Load()

	cfg := Default()

	path, err := File()
	if err != nil {
		cfg.applyEnvOverrides()
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.applyEnvOverrides()
		return cfg, nil
	}
	if err != nil {
		cfg.applyEnvOverrides()
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		cfg = Default()
		cfg.applyEnvOverrides()
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides lets environment variables win over the file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("LOJINHA_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("LOJINHA_TIMEOUT"); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv("LOJINHA_THEME"); v != "" {
		c.Theme = v
	}
	if v := os.Getenv("LOJINHA_DEBUG"); v == "1" || v == "true" {
		c.Logging.Debug = true
	}
}

// Save writes the configuration to disk.
func Save(cfg Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := File()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// RequestTimeout parses the configured timeout, falling back to the
// default when unset or malformed.
func (c Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}
