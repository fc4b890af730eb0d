package config

import (
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config with all required fields set for testing.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	return &cfg
}

func TestValidateDeep_ValidConfig(t *testing.T) {
	cfg := validConfig(t)
	cfg.Server.Headers = map[string]string{"Authorization": "Bearer x"}

	assert.NoError(t, cfg.ValidateDeep(""))
}

func TestValidateDeep_InvalidURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr string
	}{
		{"ftp://admin.example.com", "scheme must be http or https"},
		{"http://", "no host"},
		{"localhost:8080", "scheme"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			cfg := validConfig(t)
			cfg.Server.URL = tt.url

			err := cfg.ValidateDeep("")

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, "server.url", fieldErrs[0].Field)
			assert.Contains(t, fieldErrs[0].Err.Error(), tt.wantErr)
		})
	}
}

func TestValidateDeep_InvalidHeaders(t *testing.T) {
	cfg := validConfig(t)
	cfg.Server.Headers = map[string]string{
		"Bad Header":   "x",
		"content-type": "text/plain",
	}

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 2)
}

func TestValidateDeep_HeadersFileMissing(t *testing.T) {
	dir := t.TempDir()
	cfg := validConfig(t)
	cfg.Server.HeadersFiles = []string{"present.yaml", "absent.yaml"}
	writeFile(t, dir, "present.yaml", "A: b\n")

	err := cfg.ValidateDeep(filepath.Join(dir, "config.yaml"))

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "server.headers_files[1]", fieldErrs[0].Field)
}

func TestValidateDeep_ConfigFileIsDirectory(t *testing.T) {
	cfg := validConfig(t)

	err := cfg.ValidateDeep(t.TempDir())

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "config_file", fieldErrs[0].Field)
	assert.Contains(t, fieldErrs[0].Err.Error(), "is a directory")
}

func TestValidateDeep_MessagesFile(t *testing.T) {
	dir := t.TempDir()

	cfg := validConfig(t)
	cfg.I18n.MessagesFile = writeFile(t, dir, "messages.yaml", "confirm: OK\n")
	assert.NoError(t, cfg.ValidateDeep(""))

	cfg.I18n.MessagesFile = writeFile(t, dir, "broken.yaml", "- a\n- b\n")
	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "i18n.messages_file", fieldErrs[0].Field)
}

func TestValidateDeep_StructuralErrorFirst(t *testing.T) {
	cfg := validConfig(t)
	cfg.TUI.Theme = "neon"
	cfg.Server.URL = "ftp://x"

	err := cfg.ValidateDeep("")
	require.Error(t, err)

	var fieldErrs criterio.FieldErrors
	assert.NotErrorAs(t, err, &fieldErrs, "Validate runs before the deep checks")
}

func TestWarnings(t *testing.T) {
	cfg := validConfig(t)
	assert.Empty(t, cfg.Warnings(), "local http is fine")

	cfg.Server.URL = "http://admin.example.com"
	cfg.Server.Headers = map[string]string{"X-Request-ID": "fixed"}

	warnings := cfg.Warnings()
	require.Len(t, warnings, 2)
	assert.Equal(t, "url", warnings[0].Item)
	assert.Equal(t, "headers.X-Request-ID", warnings[1].Item)
}
