// Package middleware provides HTTP middlewares for authentication and
// request logging.
package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const userKey ctxKey = "user"

// TokenVerifier validates a bearer token and returns the user id it was
// issued for.
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// BearerAuth enforces bearer-token authentication.
//
// It extracts the token from the Authorization header, verifies it, and
// stores the authenticated user id in the request context so handlers can
// use it downstream. Requests without a valid token are rejected with 401.
func BearerAuth(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, found := strings.CutPrefix(header, "Bearer ")
			if !found || raw == "" {
				http.Error(w, `{"message":"missing bearer token"}`, http.StatusUnauthorized)
				return
			}
			userID, err := tokens.Verify(raw)
			if err != nil {
				http.Error(w, `{"message":"invalid or expired token"}`, http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), userKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext extracts the authenticated user id from the request
// context. Returns 0 if not found.
func GetUserIDFromContext(ctx context.Context) int64 {
	val := ctx.Value(userKey)
	if id, ok := val.(int64); ok {
		return id
	}
	return 0
}
