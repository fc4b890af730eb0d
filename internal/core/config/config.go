// Package config handles configuration loading and validation for adminctl.
package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/adminctl/internal/core/status"
	"github.com/colonyops/adminctl/internal/core/styles"
)

// Config holds the application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Status StatusConfig `yaml:"status"`
	TUI    TUIConfig    `yaml:"tui"`
	I18n   I18nConfig   `yaml:"i18n"`
}

// ServerConfig points the console at an admin API.
type ServerConfig struct {
	URL     string            `yaml:"url"`
	Timeout time.Duration     `yaml:"timeout"`
	Headers map[string]string `yaml:"headers"`
	// HeadersFiles are YAML maps merged into Headers in order, so that
	// tokens can live outside the main config. Relative paths resolve
	// against the config file's directory.
	HeadersFiles []string `yaml:"headers_files"`
}

// StatusConfig controls status message polling.
type StatusConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
}

// TUIConfig controls the terminal UI.
type TUIConfig struct {
	Theme string `yaml:"theme"`
	// Icons enables Nerd Font glyphs.
	Icons bool `yaml:"icons"`
}

// I18nConfig points at an optional message catalog override.
type I18nConfig struct {
	MessagesFile string `yaml:"messages_file"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			URL:     "http://localhost:8080/admin/api",
			Timeout: 10 * time.Second,
			Headers: map[string]string{},
		},
		Status: StatusConfig{
			PollInterval: status.DefaultInterval,
		},
		TUI: TUIConfig{
			Theme: styles.DefaultTheme,
		},
	}
}

// Load reads configuration from the given path.
// If configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if len(cfg.Server.HeadersFiles) > 0 {
		headers, err := loadHeadersFiles(filepath.Dir(configPath), cfg.Server.HeadersFiles)
		if err != nil {
			return nil, err
		}
		cfg.Server.Headers = mergeHeaders(headers, cfg.Server.Headers)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Server.URL == "" {
		c.Server.URL = defaults.Server.URL
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = defaults.Server.Timeout
	}
	if c.Server.Headers == nil {
		c.Server.Headers = map[string]string{}
	}
	if c.Status.PollInterval == 0 {
		c.Status.PollInterval = defaults.Status.PollInterval
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
}

// mergeHeaders returns base overridden by the entries of top.
func mergeHeaders(base, top map[string]string) map[string]string {
	result := make(map[string]string, len(base)+len(top))
	maps.Copy(result, base)
	maps.Copy(result, top)
	return result
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server.url cannot be empty")
	}

	if c.Server.Timeout < 0 {
		return fmt.Errorf("server.timeout cannot be negative")
	}

	if c.Status.PollInterval < time.Second {
		return fmt.Errorf("status.poll_interval must be at least 1s")
	}

	if _, ok := styles.GetPalette(c.TUI.Theme); !ok {
		return fmt.Errorf("tui.theme %q is not a known theme (available: %v)", c.TUI.Theme, styles.ThemeNames())
	}

	return nil
}
