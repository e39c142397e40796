// Package config handles configuration loading and validation for the
// tabula CLI.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the CLI configuration. The library itself carries no
// configuration; everything here shapes the demo surface around it.
type Config struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
	Theme    string `yaml:"theme"`
	// CloneRows controls the store's clone default. Nil keeps the library
	// default (clone on).
	CloneRows *bool `yaml:"clone_rows"`
	// DataFile is the dataset the tui command opens when no argument is
	// given.
	DataFile string `yaml:"data_file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Theme:    "tokyo-night",
	}
}

// Load reads the config file at path. A missing file is not an error; the
// defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
