package validate

import (
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"http", "http://localhost:8080/admin/api", false},
		{"https", "https://admin.example.com", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"no scheme", "localhost:8080", true},
		{"ftp", "ftp://example.com", true},
		{"no host", "http://", true},
		{"unparsable", "://bad", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ServerURL(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "ServerURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		})
	}
}

func TestServerURLField(t *testing.T) {
	require.NoError(t, ServerURLField("server.url", "https://example.com"))

	err := ServerURLField("server.url", "example.com")
	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "server.url", fieldErrs[0].Field)
}

func TestHeaderName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Authorization", false},
		{"custom", "X-Tenant", false},
		{"empty", "", true},
		{"space", "Bad Header", true},
		{"colon", "Bad:", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := HeaderName(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "HeaderName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		})
	}
}
