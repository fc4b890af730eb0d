// Package i18n resolves message catalog keys to display text.
package i18n

import (
	_ "embed"
	"fmt"
	"maps"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed messages_en.yaml
var defaultMessages []byte

// Catalog maps message keys to display text.
type Catalog struct {
	messages map[string]string
}

// Default returns the built-in English catalog.
func Default() *Catalog {
	c, err := Parse(defaultMessages)
	if err != nil {
		panic(fmt.Sprintf("i18n: embedded catalog is invalid: %v", err))
	}
	return c
}

// Parse decodes a flat YAML mapping of key to text.
func Parse(data []byte) (*Catalog, error) {
	messages := map[string]string{}
	if err := yaml.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("parse message catalog: %w", err)
	}
	return &Catalog{messages: messages}, nil
}

// Load returns the default catalog with the entries of path merged over
// it. An empty path returns the default catalog.
func Load(path string) (*Catalog, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read message catalog: %w", err)
	}

	overrides, err := Parse(data)
	if err != nil {
		return nil, err
	}
	c.Merge(overrides)
	return c, nil
}

// Merge copies every entry of other into c, replacing existing keys.
func (c *Catalog) Merge(other *Catalog) {
	maps.Copy(c.messages, other.messages)
}

// Message returns the text for key, or key itself when it is unknown.
func (c *Catalog) Message(key string) string {
	if c == nil {
		return key
	}
	if msg, ok := c.messages[key]; ok {
		return msg
	}
	return key
}

// Messagef formats the text for key with args.
func (c *Catalog) Messagef(key string, args ...any) string {
	return fmt.Sprintf(c.Message(key), args...)
}

// Has reports whether key is defined.
func (c *Catalog) Has(key string) bool {
	if c == nil {
		return false
	}
	_, ok := c.messages[key]
	return ok
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.messages)
}
