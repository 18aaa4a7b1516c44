// Package context provides request-scoped values extraction.
package context

import (
	"context"
)

// Actor identifies who performs an operation. Movements carry this as an
// optional created_by reference; there is no authentication layer behind it.
type Actor struct {
	ID   string
	Name string
}

type actorKey struct{}

// WithActor adds Actor to context.
func WithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActor returns Actor from context, or nil for anonymous operations.
func GetActor(ctx context.Context) *Actor {
	if v, ok := ctx.Value(actorKey{}).(*Actor); ok {
		return v
	}
	return nil
}

// GetActorID returns actor ID from context or empty string.
func GetActorID(ctx context.Context) string {
	if a := GetActor(ctx); a != nil {
		return a.ID
	}
	return ""
}
