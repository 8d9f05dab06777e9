package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// userConfigFile is the name of the user settings file (sibling to the store file).
	userConfigFile = ".pdgenconfig.yaml"

	// Default configuration values
	DefaultProbeTimeout = 5 * time.Second
)

// Config represents user settings from .pdgenconfig.yaml.
// This file is user-managed and never written by pdgen.
type Config struct {
	// ProbeTimeout bounds the reachability check run by `connection add`.
	ProbeTimeout time.Duration `yaml:"probe_timeout"`

	// Color forces colored output on or off. Nil means detect the terminal.
	Color *bool `yaml:"color"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		ProbeTimeout: DefaultProbeTimeout,
	}
}

// LoadConfig loads .pdgenconfig.yaml if it exists, otherwise returns defaults.
// Partial config files are merged with defaults.
func (s *Storage) LoadConfig() (*Config, error) {
	configPath := s.ConfigPath()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", userConfigFile, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", userConfigFile, err)
	}

	if cfg.ProbeTimeout <= 0 {
		return nil, fmt.Errorf("invalid probe_timeout in %s: must be positive", userConfigFile)
	}

	return cfg, nil
}

// ConfigPath returns the path to the user settings file.
func (s *Storage) ConfigPath() string {
	return filepath.Join(filepath.Dir(s.path), userConfigFile)
}
