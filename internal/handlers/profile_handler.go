package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/artconecta/backend/internal/logger"
	"github.com/artconecta/backend/internal/middleware"
	"github.com/artconecta/backend/internal/models"
	"github.com/artconecta/backend/internal/services"
)

// ProfileStore is the slice of the user service the profile endpoints need.
type ProfileStore interface {
	GetOrCreate(ctx context.Context, uid, email, name string) (*models.User, error)
	UpdateProfile(ctx context.Context, uid, email string, req *models.UpdateProfileRequest) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type ProfileHandler struct {
	users ProfileStore
	sync  Synchronizer
}

func NewProfileHandler(users ProfileStore, sync Synchronizer) *ProfileHandler {
	return &ProfileHandler{users: users, sync: sync}
}

// GetProfile returns the caller's private record, creating a skeleton on
// first sign-in.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	uid := middleware.GetUserUID(r.Context())
	if uid == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}
	email := middleware.GetUserEmail(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeoutSeconds*time.Second)
	defer cancel()

	user, err := h.users.GetOrCreate(ctx, uid, email, "")
	if err != nil {
		logger.FromRequest(r).Error().Err(err).Str("uid", uid).Msg("failed to load profile")
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load profile"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(user))
}

// UpdateProfile commits a partial edit to the private record, then fires the
// automatic sync with the freshly-committed record. The sync runs trusted
// (no gate) and a failure does not fail the edit: the public copy is
// eventually consistent and republish recovers it.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	uid := middleware.GetUserUID(r.Context())
	if uid == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}
	email := middleware.GetUserEmail(r.Context())

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeoutSeconds*time.Second)
	defer cancel()

	user, err := h.users.UpdateProfile(ctx, uid, email, &req)
	if err != nil {
		if err == services.ErrUsernameTaken {
			writeJSON(w, http.StatusConflict, models.NewErrorResponse("Username already taken"))
			return
		}
		logger.FromRequest(r).Error().Err(err).Str("uid", uid).Msg("failed to update profile")
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update profile"))
		return
	}

	if err := h.sync.Synchronize(ctx, user); err != nil {
		logger.FromRequest(r).Warn().Err(err).Str("uid", uid).Msg("automatic profile sync failed")
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(user))
}

// GetArtistByUsername serves the public projection of a profile looked up by
// handle. This is the server-side read path; the web client normally reads
// the Firestore copy directly.
func (h *ProfileHandler) GetArtistByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Missing username"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeoutSeconds*time.Second)
	defer cancel()

	user, err := h.users.GetByUsername(ctx, username)
	if err != nil {
		if err == services.ErrUserNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Profile not found"))
			return
		}
		logger.FromRequest(r).Error().Err(err).Str("username", username).Msg("failed to load public profile")
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load profile"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(models.ProjectPublicProfile(user)))
}
