package auth

import "context"

type observerIDContextKey struct{}

// WithObserverID stores the authenticated observer id in ctx.
func WithObserverID(ctx context.Context, observerID int64) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, observerIDContextKey{}, observerID)
}

// ObserverIDFromContext returns the authenticated observer id, or 0.
func ObserverIDFromContext(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	id, _ := ctx.Value(observerIDContextKey{}).(int64)
	return id
}
