package handlers

import (
	"context"
	"net/http"

	"github.com/artconecta/backend/internal/logger"
	"github.com/artconecta/backend/internal/middleware"
	"github.com/artconecta/backend/internal/models"
	"github.com/artconecta/backend/internal/services"
)

type AccountHandler struct {
	accounts *services.MongoAccountService
}

func NewAccountHandler(accounts *services.MongoAccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// DeleteAccount removes everything the authenticated user owns, including
// the Firestore public profile.
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	uid := middleware.GetUserUID(r.Context())
	if uid == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), services.DefaultAccountTimeout())
	defer cancel()

	result, err := h.accounts.DeleteAccount(ctx, uid)
	if err != nil {
		logger.FromRequest(r).Error().Err(err).Str("uid", uid).Msg("account deletion failed")
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete account"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(result))
}
