// Package config loads the optional ~/.gosh.yaml user configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/toba/gosh/internal/constants"
	"gopkg.in/yaml.v3"
)

// Config holds the user-tunable shell settings.
type Config struct {
	// Prompt is written before each read.
	Prompt string `yaml:"prompt,omitempty"`
	// TimeoutSeconds bounds a single external command.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
	// Color styles the prompt when stdout is a terminal.
	Color bool `yaml:"color,omitempty"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Prompt:         constants.DefaultPrompt,
		TimeoutSeconds: constants.DefaultTimeoutSeconds,
	}
}

// Load reads a config file. A missing file yields the defaults; a
// malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.Prompt == "" {
		cfg.Prompt = constants.DefaultPrompt
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = constants.DefaultTimeoutSeconds
	}
	return cfg, nil
}

// DefaultPath returns the config file location in the user's home
// directory, or "" when no home directory is known.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, constants.ConfigFileName)
}

// Timeout returns the external-command ceiling as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
