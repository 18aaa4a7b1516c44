package context

import (
	"context"

	"github.com/google/uuid"
)

type requestIDKey struct{}

// WithRequestID adds a request ID to context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// GetRequestID returns request ID from context or empty string.
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// NewRequestID generates a fresh request ID.
func NewRequestID() string {
	return uuid.New().String()
}
