package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/artconecta/backend/internal/auth"
	"github.com/artconecta/backend/internal/models"
)

type contextKey string

const (
	userUIDKey   contextKey = "userUID"
	userEmailKey contextKey = "userEmail"
)

// BearerToken extracts the token from an "Authorization: Bearer ..." header.
// Returns "" when the header is absent or malformed.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth rejects requests without a verifiable bearer token and stores
// the verified UID and email in the request context.
func RequireAuth(verifier auth.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				writeAuthError(w, "Authentication required")
				return
			}

			id, err := verifier.Verify(r.Context(), token)
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					writeAuthError(w, "Token expired")
					return
				}
				writeAuthError(w, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userUIDKey, id.UID)
			ctx = context.WithValue(ctx, userEmailKey, id.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserUID returns the verified UID stored by RequireAuth, or "".
func GetUserUID(ctx context.Context) string {
	uid, _ := ctx.Value(userUIDKey).(string)
	return uid
}

// GetUserEmail returns the verified email stored by RequireAuth, or "".
func GetUserEmail(ctx context.Context) string {
	email, _ := ctx.Value(userEmailKey).(string)
	return email
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(models.NewErrorResponse(message))
}
