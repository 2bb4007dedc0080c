package domain

import "context"

// contextKey is a type for context keys to avoid collisions
type contextKey string

const userContextKey contextKey = "authenticated_user"

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *AuthenticatedUser) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext extracts the authenticated user from the context,
// or nil if the request is unauthenticated.
func UserFromContext(ctx context.Context) *AuthenticatedUser {
	user, _ := ctx.Value(userContextKey).(*AuthenticatedUser)
	return user
}
