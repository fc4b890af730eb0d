package logutils

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_file(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "adminctl.log")

	logger, closer, err := New("info", path)
	require.NoError(t, err)

	logger.Debug().Msg("hidden")
	logger.Info().Str("cmp", "test").Msg("first")
	closer()

	logger, closer, err = New("info", path)
	require.NoError(t, err)
	logger.Warn().Msg("second")
	closer()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "first", entry["message"])
	assert.Equal(t, "test", entry["cmp"])
	assert.Contains(t, entry, "time")
}

func TestNew_invalidLevel(t *testing.T) {
	_, _, err := New("loud", "")
	assert.Error(t, err)
}

