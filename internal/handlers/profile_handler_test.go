package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artconecta/backend/internal/auth"
	"github.com/artconecta/backend/internal/middleware"
	"github.com/artconecta/backend/internal/models"
	"github.com/artconecta/backend/internal/services"
)

type stubProfileStore struct {
	byUsername map[string]*models.User
	updated    *models.User
	updateErr  error
}

func (s *stubProfileStore) GetOrCreate(ctx context.Context, uid, email, name string) (*models.User, error) {
	return &models.User{UID: uid, Email: email, Name: name}, nil
}

func (s *stubProfileStore) UpdateProfile(ctx context.Context, uid, email string, req *models.UpdateProfileRequest) (*models.User, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.updated, nil
}

func (s *stubProfileStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if u, ok := s.byUsername[username]; ok {
		return u, nil
	}
	return nil, services.ErrUserNotFound
}

func newProfileRouter(profiles *stubProfileStore, store *countingStore) http.Handler {
	verifier := &stubVerifier{identities: map[string]*auth.Identity{
		"token-u1": {UID: "u1", Email: "ana@x.com"},
	}}
	h := NewProfileHandler(profiles, services.NewSyncService(store))

	r := chi.NewRouter()
	r.Get("/api/artists/{username}", h.GetArtistByUsername)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(verifier))
		r.Put("/api/profile", h.UpdateProfile)
	})
	return r
}

func TestUpdateProfile_TriggersSync(t *testing.T) {
	profiles := &stubProfileStore{updated: &models.User{
		UID:  "u1",
		Name: "Ana",
		Bio:  "Cerâmica em SP",
		Role: "artist",
	}}
	store := &countingStore{}
	router := newProfileRouter(profiles, store)

	req := httptest.NewRequest(http.MethodPut, "/api/profile", strings.NewReader(`{"bio":"Cerâmica em SP"}`))
	req.Header.Set("Authorization", "Bearer token-u1")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, store.upserts)
	assert.Equal(t, "u1", store.lastUID)
}

func TestUpdateProfile_SyncFailureDoesNotFailEdit(t *testing.T) {
	profiles := &stubProfileStore{updated: &models.User{UID: "u1", Name: "Ana"}}
	store := &countingStore{failWith: errors.New("firestore unavailable")}
	router := newProfileRouter(profiles, store)

	req := httptest.NewRequest(http.MethodPut, "/api/profile", strings.NewReader(`{"name":"Ana"}`))
	req.Header.Set("Authorization", "Bearer token-u1")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp models.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestUpdateProfile_UsernameTaken(t *testing.T) {
	profiles := &stubProfileStore{updateErr: services.ErrUsernameTaken}
	store := &countingStore{}
	router := newProfileRouter(profiles, store)

	req := httptest.NewRequest(http.MethodPut, "/api/profile", strings.NewReader(`{"username":"ana_ceramica"}`))
	req.Header.Set("Authorization", "Bearer token-u1")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Zero(t, store.upserts)
}

func TestUpdateProfile_RejectsBadUsername(t *testing.T) {
	profiles := &stubProfileStore{}
	store := &countingStore{}
	router := newProfileRouter(profiles, store)

	req := httptest.NewRequest(http.MethodPut, "/api/profile", strings.NewReader(`{"username":"Não Válido"}`))
	req.Header.Set("Authorization", "Bearer token-u1")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Zero(t, store.upserts)
}

func TestGetArtistByUsername(t *testing.T) {
	profiles := &stubProfileStore{byUsername: map[string]*models.User{
		"ana_ceramica": {
			UID:          "u1",
			Name:         "Ana",
			Username:     "ana_ceramica",
			Role:         "artist",
			PasswordHash: "secret-hash",
		},
	}}
	router := newProfileRouter(profiles, &countingStore{})

	t.Run("found serves public projection only", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/artists/ana_ceramica", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"ana_ceramica"`)
		assert.NotContains(t, rr.Body.String(), "secret-hash")
		assert.NotContains(t, rr.Body.String(), "role")
	})

	t.Run("unknown handle is 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/artists/nobody", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
