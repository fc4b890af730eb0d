package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, "Confirm", c.Message("confirm"))
	assert.Equal(t, "Error starting the module", c.Message("bundles.error.start"))
	assert.Positive(t, c.Len())
}

func TestMessage_missing_key_returns_key(t *testing.T) {
	c := Default()
	assert.Equal(t, "no.such.key", c.Message("no.such.key"))
	assert.False(t, c.Has("no.such.key"))

	var nilCatalog *Catalog
	assert.Equal(t, "x", nilCatalog.Message("x"))
}

func TestLoad_merges_overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.yaml")
	require.NoError(t, os.WriteFile(path, []byte("confirm: Bestätigen\ncustom.key: Custom\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Bestätigen", c.Message("confirm"))
	assert.Equal(t, "Custom", c.Message("custom.key"))
	assert.Equal(t, "Settings saved", c.Message("settings.saved"))
}

func TestLoad_errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- not\n- a map\n"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestMessagef(t *testing.T) {
	c, err := Parse([]byte("greeting: hello %s\n"))
	require.NoError(t, err)
	assert.Equal(t, "hello world", c.Messagef("greeting", "world"))
}
