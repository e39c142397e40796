// Package commands implements the tabula CLI commands, one file per
// command.
package commands

import (
	"os"
	"path/filepath"

	"github.com/colonyops/tabula/internal/core/config"
)

// Flags holds global flag values and state shared by every command.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Config is loaded in the root Before hook.
	Config *config.Config
}

// DefaultConfigPath returns the default config file path using
// XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "tabula", "config.yaml")
}
