package contextutil

import "context"

type contextKey string

const requestIDKey contextKey = "request_id"

// HeaderRequestID is the header carrying the request id across services.
const HeaderRequestID = "X-Request-ID"

// GetRequestID returns the request id stored in ctx, or "".
func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

// WithRequestID stores rid in ctx.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}
