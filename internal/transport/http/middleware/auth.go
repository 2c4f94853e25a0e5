package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// TokenParser turns an access token into the id of the user it was issued for.
type TokenParser interface {
	ParseToken(token string) (uuid.UUID, error)
}

// Auth accepts a Bearer access token or, failing that, a session cookie.
func Auth(tokens TokenParser, sessions *Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				userID uuid.UUID
				ok     bool
			)

			if header := r.Header.Get("Authorization"); header != "" {
				tokenStr, found := strings.CutPrefix(header, "Bearer ")
				if !found {
					unauthorized(w, "Missing or invalid token")
					return
				}
				id, err := tokens.ParseToken(tokenStr)
				if err != nil {
					unauthorized(w, "Invalid or expired token")
					return
				}
				userID, ok = id, true
			} else if sessions != nil {
				userID, ok = sessions.UserID(r)
			}

			if !ok {
				unauthorized(w, "Authentication required")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts user ID from request context
func GetUserID(ctx context.Context) uuid.UUID {
	return ctx.Value(UserIDKey).(uuid.UUID)
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    "UNAUTHENTICATED",
			"message": message,
		},
	})
}
