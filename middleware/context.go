package middleware

import (
	"context"

	"github.com/carromarket/backend/models"
)

// Context key type to avoid collisions
type contextKey string

const (
	// userKey is the context key for the resolved identity
	userKey contextKey = "user"
)

// WithUser adds the resolved identity to the context
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext retrieves the resolved identity from context.
// Returns nil for anonymous requests.
func UserFromContext(ctx context.Context) *models.User {
	if val := ctx.Value(userKey); val != nil {
		if user, ok := val.(*models.User); ok {
			return user
		}
	}
	return nil
}
