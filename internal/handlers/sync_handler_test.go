package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artconecta/backend/internal/auth"
	"github.com/artconecta/backend/internal/models"
	"github.com/artconecta/backend/internal/services"
)

// stubVerifier resolves tokens from a fixed table.
type stubVerifier struct {
	identities map[string]*auth.Identity
	expired    map[string]bool
}

func (s *stubVerifier) Verify(ctx context.Context, rawToken string) (*auth.Identity, error) {
	if s.expired[rawToken] {
		return nil, auth.ErrTokenExpired
	}
	if id, ok := s.identities[rawToken]; ok {
		return id, nil
	}
	return nil, auth.ErrTokenInvalid
}

type stubUserLoader struct {
	users map[string]*models.User
}

func (s *stubUserLoader) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	if u, ok := s.users[uid]; ok {
		return u, nil
	}
	return nil, services.ErrUserNotFound
}

// countingStore records upserts and optionally fails them.
type countingStore struct {
	upserts  int
	lastUID  string
	failWith error
}

func (c *countingStore) Upsert(ctx context.Context, uid string, profile *models.PublicProfile) error {
	if c.failWith != nil {
		return c.failWith
	}
	c.upserts++
	c.lastUID = uid
	return nil
}

func (c *countingStore) Delete(ctx context.Context, uid string) error { return nil }

func newSyncFixture() (*SyncHandler, *countingStore, *stubUserLoader) {
	verifier := &stubVerifier{
		identities: map[string]*auth.Identity{
			"token-u1": {UID: "u1", Email: "ana@x.com"},
			"token-u2": {UID: "u2", Email: "bia@x.com"},
		},
		expired: map[string]bool{"token-expired": true},
	}
	store := &countingStore{}
	users := &stubUserLoader{users: map[string]*models.User{
		"u1": {UID: "u1", Name: "Ana", Bio: "Cerâmica em SP", Role: "artist"},
	}}
	h := NewSyncHandler(auth.NewGate(verifier), users, services.NewSyncService(store))
	return h, store, users
}

func postSync(h *SyncHandler, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/sync-profile", strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.SyncProfile(rr, req)
	return rr
}

func postRepublish(h *SyncHandler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/republish-profile", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.RepublishProfile(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestSyncProfile_HappyPath(t *testing.T) {
	h, store, _ := newSyncFixture()

	rr := postSync(h, "token-u1", `{"uid":"u1","name":"Ana","bio":"Cerâmica em SP"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "Profile synchronized", body["message"])
	assert.Equal(t, "u1", body["uid"])
	assert.Equal(t, 1, store.upserts)
	assert.Equal(t, "u1", store.lastUID)
}

func TestSyncProfile_MissingToken(t *testing.T) {
	h, store, _ := newSyncFixture()

	rr := postSync(h, "", `{"uid":"u1","name":"Ana"}`)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Authentication required", decodeBody(t, rr)["error"])
	assert.Zero(t, store.upserts)
}

func TestSyncProfile_ExpiredToken(t *testing.T) {
	h, store, _ := newSyncFixture()

	rr := postSync(h, "token-expired", `{"uid":"u1","name":"Ana"}`)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Token expired", decodeBody(t, rr)["error"])
	assert.Zero(t, store.upserts)
}

func TestSyncProfile_InvalidToken(t *testing.T) {
	h, store, _ := newSyncFixture()

	rr := postSync(h, "garbage", `{"uid":"u1","name":"Ana"}`)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Invalid token", decodeBody(t, rr)["error"])
	assert.Zero(t, store.upserts)
}

func TestSyncProfile_UIDMismatch(t *testing.T) {
	h, store, _ := newSyncFixture()

	rr := postSync(h, "token-u1", `{"uid":"u2","name":"Bia"}`)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "Cannot sync another user's profile", decodeBody(t, rr)["error"])
	assert.Zero(t, store.upserts)
}

func TestSyncProfile_MissingName(t *testing.T) {
	h, store, _ := newSyncFixture()

	rr := postSync(h, "token-u1", `{"uid":"u1"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Name is required", decodeBody(t, rr)["error"])
	assert.Zero(t, store.upserts)
}

func TestSyncProfile_MalformedBody(t *testing.T) {
	h, store, _ := newSyncFixture()

	rr := postSync(h, "token-u1", `{not json`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid request body", decodeBody(t, rr)["error"])
	assert.Zero(t, store.upserts)
}

func TestSyncProfile_StoreOutage(t *testing.T) {
	h, store, _ := newSyncFixture()
	store.failWith = &services.StoreError{Op: "upsert", Err: errors.New("firestore unavailable")}

	rr := postSync(h, "token-u1", `{"uid":"u1","name":"Ana"}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "Failed to synchronize profile", body["error"])
	assert.NotContains(t, body["error"], "firestore")
}

func TestRepublishProfile_HappyPath(t *testing.T) {
	h, store, _ := newSyncFixture()

	rr := postRepublish(h, "token-u1")

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "Profile republished", body["message"])
	assert.Equal(t, "u1", body["uid"])
	ts, err := time.Parse(time.RFC3339, body["timestamp"])
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
	assert.Equal(t, 1, store.upserts)
}

func TestRepublishProfile_NoPrivateRecord(t *testing.T) {
	h, store, _ := newSyncFixture()

	rr := postRepublish(h, "token-u2")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Profile not found", decodeBody(t, rr)["error"])
	assert.Zero(t, store.upserts)
}

func TestRepublishProfile_AuthRequired(t *testing.T) {
	h, _, _ := newSyncFixture()

	for _, tc := range []struct {
		token string
		want  string
	}{
		{token: "", want: "Authentication required"},
		{token: "token-expired", want: "Token expired"},
		{token: "garbage", want: "Invalid token"},
	} {
		rr := postRepublish(h, tc.token)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, tc.want)
		assert.Equal(t, tc.want, decodeBody(t, rr)["error"], tc.want)
	}
}

func TestRepublishProfile_StoreOutage(t *testing.T) {
	h, store, _ := newSyncFixture()
	store.failWith = fmt.Errorf("write: %w", errors.New("deadline exceeded"))

	rr := postRepublish(h, "token-u1")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Failed to republish profile", decodeBody(t, rr)["error"])
}
