package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHook_Run(t *testing.T) {
	tests := []struct {
		name      string
		ctx       func() context.Context
		wantKeys  map[string]string
		wantEmpty []string
	}{
		{
			name: "request and bundle",
			ctx: func() context.Context {
				ctx := WithRequestID(context.Background(), "req-1")
				return WithBundleID(ctx, "7")
			},
			wantKeys: map[string]string{"request_id": "req-1", "bundle_id": "7"},
		},
		{
			name:      "only request",
			ctx:       func() context.Context { return WithRequestID(context.Background(), "req-2") },
			wantKeys:  map[string]string{"request_id": "req-2"},
			wantEmpty: []string{"bundle_id"},
		},
		{
			name:      "background context",
			ctx:       context.Background,
			wantEmpty: []string{"request_id", "bundle_id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf).Hook(ContextHook{})

			logger.Info().Ctx(tt.ctx()).Msg("test")

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

			for k, v := range tt.wantKeys {
				assert.Equal(t, v, entry[k], "key %s", k)
			}
			for _, k := range tt.wantEmpty {
				assert.NotContains(t, entry, k)
			}
		})
	}
}
