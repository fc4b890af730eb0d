package logging

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	bundleIDKey  contextKey = "bundle_id"
)

// WithRequestID adds an API request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithBundleID adds the bundle an action targets to the context.
func WithBundleID(ctx context.Context, bundleID string) context.Context {
	return context.WithValue(ctx, bundleIDKey, bundleID)
}

// GetRequestID retrieves the request ID from the context.
// Returns empty string if not present.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// GetBundleID retrieves the bundle ID from the context.
// Returns empty string if not present.
func GetBundleID(ctx context.Context) string {
	if id, ok := ctx.Value(bundleIDKey).(string); ok {
		return id
	}
	return ""
}
