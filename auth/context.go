package auth

import (
	"context"
)

// contextKey is a private type for context keys so they cannot collide with
// keys defined in other packages.
type contextKey string

const userIDContextKey contextKey = "auth_user_id"

// NewContextWithUserID returns a child context carrying the authenticated user's id.
func NewContextWithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext returns the id stored by JWTMiddleware.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDContextKey).(int64)
	return id, ok && id != 0
}
