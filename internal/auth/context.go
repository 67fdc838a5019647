package auth

import "context"

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

// userIDKey is the context key for the authenticated user ID.
const userIDKey ctxKey = "userID"

// WithUserID stores the authenticated user ID in context. Used by the HTTP
// auth middleware after a bearer token verifies.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user ID from context.
// Returns false if the request carried no valid bearer token; resolvers that
// require authentication reject in that case, everything else proceeds
// anonymously.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}
