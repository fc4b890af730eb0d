package config

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/adminctl/internal/core/i18n"
	"github.com/colonyops/adminctl/internal/core/validate"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration
// including URL syntax, header names and file accessibility. The
// configPath argument specifies the config file location to validate
// (empty string skips config file check). This calls Validate() first for
// basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		validate.ServerURLField("server.url", c.Server.URL),
		c.validateHeaders(),
		c.validateHeadersFiles(configPath),
		criterio.Run("i18n.messages_file", c.I18n.MessagesFile, isCatalogFile),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if u, err := url.Parse(c.Server.URL); err == nil && u.Scheme == "http" && !isLocalHost(u.Hostname()) {
		warnings = append(warnings, ValidationWarning{
			Category: "Server",
			Item:     "url",
			Message:  "server url uses plain http for a non-local host",
		})
	}

	for name := range c.Server.Headers {
		if strings.EqualFold(name, "X-Request-ID") {
			warnings = append(warnings, ValidationWarning{
				Category: "Server",
				Item:     "headers." + name,
				Message:  "X-Request-ID is generated per request and will be overridden",
			})
		}
	}

	return warnings
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func (c *Config) validateHeaders() error {
	var errs criterio.FieldErrorsBuilder
	for name := range c.Server.Headers {
		if err := validate.HeaderName(name); err != nil {
			errs = errs.Append("server.headers", err)
			continue
		}
		if http.CanonicalHeaderKey(name) == "Content-Type" {
			errs = errs.Append("server.headers."+name, fmt.Errorf("content type is set per request"))
		}
	}
	return errs.ToError()
}

func (c *Config) validateHeadersFiles(configPath string) error {
	if len(c.Server.HeadersFiles) == 0 {
		return nil
	}

	configDir := ""
	if configPath != "" {
		configDir = filepath.Dir(configPath)
	}

	var errs criterio.FieldErrorsBuilder
	for i, file := range c.Server.HeadersFiles {
		if _, err := os.Stat(resolvePath(configDir, file)); err != nil {
			errs = errs.Append(fmt.Sprintf("server.headers_files[%d]", i), fmt.Errorf("file not found: %s", file))
		}
	}
	return errs.ToError()
}

// isCatalogFile validates that path, when set, is a readable message catalog.
func isCatalogFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := i18n.Load(path); err != nil {
		return err
	}
	return nil
}

func isLocalHost(host string) bool {
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}
