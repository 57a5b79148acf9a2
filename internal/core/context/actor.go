// Package context provides request-scoped values extraction.
package context

import "context"

type actorKey struct{}

// WithActor stores the staff member (or system job) performing the request.
// The value ends up in updated_by columns and in the audit log.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActor returns the actor from context or empty string.
func GetActor(ctx context.Context) string {
	if v, ok := ctx.Value(actorKey{}).(string); ok {
		return v
	}
	return ""
}
