package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golinks/golinks-be/internal/models"
)

// UserResolver looks up the live user record behind a token's user id.
type UserResolver interface {
	GetUserByID(id string) (models.User, error)
}

type contextKey string

const userKey = contextKey("authUser")

// UserFromContext returns the authenticated user set by RequireAuth.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey).(models.User)
	return user, ok
}

// RequireAuth creates a middleware for protecting routes. The token is read
// from the Authorization header, with or without a "Bearer " prefix. On
// success the handler sees the user as it exists in the store right now,
// not a snapshot from token-issuance time.
func RequireAuth(manager *Manager, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if tokenStr == "" {
				unauthorized(w, "Token is missing")
				return
			}

			userID, err := manager.Resolve(tokenStr)
			if err != nil {
				if err == ErrExpiredToken {
					unauthorized(w, "Token has expired")
				} else {
					unauthorized(w, "Invalid token")
				}
				return
			}

			// A valid signature for a user that no longer exists is still
			// an invalid token from the caller's point of view.
			user, err := users.GetUserByID(userID)
			if err != nil {
				unauthorized(w, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
