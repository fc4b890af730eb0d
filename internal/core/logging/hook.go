package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts request_id and bundle_id from context and adds them to log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if requestID := GetRequestID(ctx); requestID != "" {
		e.Str("request_id", requestID)
	}

	if bundleID := GetBundleID(ctx); bundleID != "" {
		e.Str("bundle_id", bundleID)
	}
}
