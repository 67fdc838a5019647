package api

import (
	"net/http"
	"strings"

	"github.com/shelfwiseapp/shelfwise-server/internal/auth"
)

// withAuthContext attaches the authenticated user's ID to the request
// context when a valid bearer token is presented. A missing, malformed, or
// expired token leaves the request anonymous rather than rejecting it:
// public operations (login, addUser, hello) share the same endpoint.
func (s *Server) withAuthContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := s.authService.VerifyAccessToken(parts[1])
		if err != nil {
			if s.logger != nil {
				s.logger.Debug("Rejected bearer token", "error", err)
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx := auth.WithUserID(r.Context(), claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
