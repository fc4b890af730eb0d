// Package bundle models installed platform extension bundles and the
// lifecycle actions the console can take on them.
package bundle

import (
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// State is the lifecycle state of a bundle.
type State string

const (
	StateUninstalled State = "UNINSTALLED"
	StateInstalled   State = "INSTALLED"
	StateResolved    State = "RESOLVED"
	StateStarting    State = "STARTING"
	StateStopping    State = "STOPPING"
	StateActive      State = "ACTIVE"

	// StateLoading is client-only and marks a bundle with an action in
	// flight.
	StateLoading State = "LOADING"
)

// Bundle is an installed extension unit.
type Bundle struct {
	ID           int64  `json:"bundleId"`
	Name         string `json:"name"`
	SymbolicName string `json:"symbolicName"`
	Version      string `json:"version"`
	State        State  `json:"state"`
	Location     string `json:"location,omitempty"`
}

// DisplayName returns the human name, falling back to the symbolic name.
func (b Bundle) DisplayName() string {
	if b.Name != "" {
		return b.Name
	}
	return b.SymbolicName
}

// Key returns the bundle id formatted for URLs and log fields.
func (b Bundle) Key() string {
	return strconv.FormatInt(b.ID, 10)
}

// IsActive reports whether the bundle is running.
func IsActive(b Bundle) bool {
	return b.State == StateActive
}

// IsStable reports whether no action is in flight for the bundle.
func IsStable(b Bundle) bool {
	return b.State != StateLoading
}

// Match reports whether pattern matches the bundle's symbolic name or name.
// Patterns use doublestar syntax with '.' and '-' treated as ordinary
// characters. An empty pattern matches everything.
func Match(pattern string, b Bundle) bool {
	if pattern == "" {
		return true
	}
	pattern = strings.ToLower(pattern)
	for _, candidate := range []string{b.SymbolicName, b.Name} {
		if candidate == "" {
			continue
		}
		if ok, err := doublestar.Match(pattern, strings.ToLower(candidate)); err == nil && ok {
			return true
		}
	}
	return false
}

// ValidPattern reports whether pattern is a well-formed match pattern.
func ValidPattern(pattern string) bool {
	return doublestar.ValidatePattern(pattern)
}
