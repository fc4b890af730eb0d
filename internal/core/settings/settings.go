// Package settings holds the platform and module configuration options the
// console edits, and the controllers that load and save them.
package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/adminctl/internal/core/i18n"
)

// Type is the value type of an option.
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	TypePath    Type = "path"
)

// State is the client-side save state of an option.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// Option is a single key/value configuration entry.
type Option struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Type  Type   `json:"type,omitempty"`

	State State `json:"-"`
}

// ModuleSettings is one settings file belonging to a bundle.
type ModuleSettings struct {
	Bundle   int64    `json:"bundle"`
	Filename string   `json:"filename"`
	Settings []Option `json:"settings"`
}

// ErrUnknownKey is returned when setting an option that was not loaded.
var ErrUnknownKey = errors.New("unknown setting")

// Label returns the display label for an option key.
func Label(catalog *i18n.Catalog, key string) string {
	return catalog.Message("settings." + key)
}

// Icon returns the glyph shown next to an option in the given save state.
func Icon(state State) string {
	switch state {
	case StateLoading:
		return "◌"
	case StateError:
		return "✗"
	default:
		return "✓"
	}
}

// ValidateValue checks that value can be stored in an option of type t.
func ValidateValue(t Type, value string) error {
	switch t {
	case TypeNumber:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("%q is not a number", value)
		}
	case TypeBoolean:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("%q is not a boolean", value)
		}
	case TypePath:
		if strings.TrimSpace(value) == "" {
			return errors.New("path must not be empty")
		}
	}
	return nil
}

// Validate checks every option value against its type. The returned error
// is a criterio.FieldErrors keyed by option key.
func Validate(opts []Option) error {
	var errs criterio.FieldErrorsBuilder
	for _, o := range opts {
		if err := ValidateValue(o.Type, o.Value); err != nil {
			errs = errs.Append(o.Key, err)
		}
	}
	return errs.ToError()
}

// Flatten joins the options of every settings file into one list, in file
// order.
func Flatten(files []ModuleSettings) []Option {
	var out []Option
	for _, f := range files {
		out = append(out, f.Settings...)
	}
	return out
}
