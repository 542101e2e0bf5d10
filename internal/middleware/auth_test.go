package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artconecta/backend/internal/auth"
)

func executeAuth(t *testing.T, verifier auth.TokenVerifier, header string) (*httptest.ResponseRecorder, string, string) {
	t.Helper()

	var gotUID, gotEmail string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUID = GetUserUID(r.Context())
		gotEmail = GetUserEmail(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	RequireAuth(verifier)(next).ServeHTTP(rr, req)
	return rr, gotUID, gotEmail
}

func TestRequireAuth(t *testing.T) {
	verifier := auth.NewLocalVerifier("test-secret", time.Hour)
	token, err := verifier.Issue("u1", "ana@x.com")
	require.NoError(t, err)

	t.Run("valid token passes identity through", func(t *testing.T) {
		rr, uid, email := executeAuth(t, verifier, "Bearer "+token)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "u1", uid)
		assert.Equal(t, "ana@x.com", email)
	})

	t.Run("missing header", func(t *testing.T) {
		rr, _, _ := executeAuth(t, verifier, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Authentication required")
	})

	t.Run("malformed header", func(t *testing.T) {
		rr, _, _ := executeAuth(t, verifier, "Token "+token)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Authentication required")
	})

	t.Run("expired token", func(t *testing.T) {
		expiring := auth.NewLocalVerifier("test-secret", -time.Minute)
		expired, err := expiring.Issue("u1", "")
		require.NoError(t, err)

		rr, _, _ := executeAuth(t, verifier, "Bearer "+expired)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Token expired")
	})

	t.Run("invalid token", func(t *testing.T) {
		rr, _, _ := executeAuth(t, verifier, "Bearer garbage")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid token")
	})
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "standard", header: "Bearer abc", want: "abc"},
		{name: "case-insensitive scheme", header: "bearer abc", want: "abc"},
		{name: "missing", header: "", want: ""},
		{name: "no scheme", header: "abc", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, BearerToken(req))
		})
	}
}
