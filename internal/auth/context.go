package auth

import (
	"context"

	"github.com/google/uuid"
)

type contextKey struct{}

var userIDContextKey = contextKey{}

func ContextWithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext returns the ID of the logged-in user making the
// request, as set by the auth middleware
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDContextKey).(uuid.UUID)
	return userID, ok
}
