package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/colonyops/adminctl/internal/client"
	"github.com/colonyops/adminctl/internal/core/config"
	"github.com/colonyops/adminctl/internal/core/i18n"
)

type Flags struct {
	LogLevel     string
	LogFile      string
	ConfigPath   string
	ServerURL    string
	ProfilerPort int

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Catalog translates alert and label keys
	Catalog *i18n.Catalog
}

// Client builds an admin API client from the loaded configuration.
func (f *Flags) Client() (*client.Client, error) {
	c, err := client.New(client.Options{
		BaseURL: f.Config.Server.URL,
		Timeout: f.Config.Server.Timeout,
		Headers: f.Config.Server.Headers,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return c, nil
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "adminctl", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/adminctl/adminctl.log
// On Linux: $XDG_STATE_HOME/adminctl/adminctl.log (defaults to ~/.local/state/adminctl/adminctl.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "adminctl", "adminctl.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "adminctl", "adminctl.log")
	}

	return filepath.Join(home, ".local", "state", "adminctl", "adminctl.log")
}
