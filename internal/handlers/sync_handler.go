package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/artconecta/backend/internal/auth"
	"github.com/artconecta/backend/internal/logger"
	"github.com/artconecta/backend/internal/middleware"
	"github.com/artconecta/backend/internal/models"
	"github.com/artconecta/backend/internal/services"
)

// UserLoader is the slice of the user service the sync endpoints need.
type UserLoader interface {
	GetByUID(ctx context.Context, uid string) (*models.User, error)
}

// Synchronizer mirrors a private record into the public profile store.
type Synchronizer interface {
	Synchronize(ctx context.Context, user *models.User) error
}

// SyncHandler exposes the two profile-sync entry points. Both use the flat
// response shapes the web client consumes, not the product API envelope.
type SyncHandler struct {
	gate  *auth.Gate
	users UserLoader
	sync  Synchronizer
}

func NewSyncHandler(gate *auth.Gate, users UserLoader, sync Synchronizer) *SyncHandler {
	return &SyncHandler{gate: gate, users: users, sync: sync}
}

// SyncProfile handles POST /sync-profile: the caller supplies the full
// private record and may only sync their own (verified uid == body.uid).
func (h *SyncHandler) SyncProfile(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r)

	decision := h.gate.Identify(r.Context(), token)
	if !decision.Allowed {
		writeDenied(w, decision.Reason)
		return
	}

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeFlatError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := user.Validate(); len(errs) > 0 {
		for _, field := range []string{"uid", "name"} {
			if msg, ok := errs[field]; ok {
				writeFlatError(w, http.StatusBadRequest, msg)
				return
			}
		}
	}

	if user.UID != decision.Identity.UID {
		writeFlatError(w, http.StatusForbidden, "Cannot sync another user's profile")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeoutSeconds*time.Second)
	defer cancel()

	if err := h.sync.Synchronize(ctx, &user); err != nil {
		if services.IsValidation(err) {
			writeFlatError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.FromRequest(r).Error().Err(err).Str("uid", user.UID).Msg("profile sync failed")
		writeFlatError(w, http.StatusInternalServerError, "Failed to synchronize profile")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Profile synchronized",
		"uid":     user.UID,
	})
}

// RepublishProfile handles POST /republish-profile: no body, the target is
// the caller's own uid resolved from the verified token. The current private
// record is loaded server-side and re-projected.
func (h *SyncHandler) RepublishProfile(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r)

	decision := h.gate.Identify(r.Context(), token)
	if !decision.Allowed {
		writeDenied(w, decision.Reason)
		return
	}
	uid := decision.Identity.UID

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeoutSeconds*time.Second)
	defer cancel()

	user, err := h.users.GetByUID(ctx, uid)
	if err != nil {
		if err == services.ErrUserNotFound {
			writeFlatError(w, http.StatusNotFound, "Profile not found")
			return
		}
		logger.FromRequest(r).Error().Err(err).Str("uid", uid).Msg("failed to load private record")
		writeFlatError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	if err := h.sync.Synchronize(ctx, user); err != nil {
		logger.FromRequest(r).Error().Err(err).Str("uid", uid).Msg("profile republish failed")
		writeFlatError(w, http.StatusInternalServerError, "Failed to republish profile")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":   "Profile republished",
		"uid":       uid,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// writeDenied maps gate deny reasons onto the documented auth responses:
// token problems are 401 with a reason-specific message, a subject mismatch
// is 403.
func writeDenied(w http.ResponseWriter, reason auth.DenyReason) {
	switch reason {
	case auth.DenyMissingToken:
		writeFlatError(w, http.StatusUnauthorized, "Authentication required")
	case auth.DenyExpiredToken:
		writeFlatError(w, http.StatusUnauthorized, "Token expired")
	case auth.DenyUIDMismatch:
		writeFlatError(w, http.StatusForbidden, "Cannot sync another user's profile")
	default:
		writeFlatError(w, http.StatusUnauthorized, "Invalid token")
	}
}
