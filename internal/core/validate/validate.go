// Package validate provides shared validation functions.
package validate

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/hay-kot/criterio"
)

// ServerURL validates that raw is an absolute http or https URL.
func ServerURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errors.New("url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("url has no host")
	}
	return nil
}

// ServerURLField returns a criterio validator for server URLs.
func ServerURLField(field, raw string) error {
	return criterio.Run(field, raw, ServerURL)
}

// HeaderName validates an HTTP header field name.
func HeaderName(name string) error {
	if name == "" {
		return errors.New("header name is required")
	}
	if strings.ContainsAny(name, " \t:\r\n") {
		return fmt.Errorf("invalid header name %q", name)
	}
	return nil
}
