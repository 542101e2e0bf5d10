package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/artconecta/backend/internal/auth"
	"github.com/artconecta/backend/internal/logger"
	"github.com/artconecta/backend/internal/models"
	"github.com/artconecta/backend/internal/services"
)

// CredentialStore is the slice of the user service local auth needs.
type CredentialStore interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Authenticate(ctx context.Context, req *models.LoginRequest) (*models.User, error)
}

// AuthHandler implements email/password sessions for deployments running
// without Firebase. Tokens come from the local HS256 verifier, so the rest
// of the API treats them exactly like Firebase ID tokens.
type AuthHandler struct {
	users  CredentialStore
	tokens *auth.LocalVerifier
}

func NewAuthHandler(users CredentialStore, tokens *auth.LocalVerifier) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
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

	user, err := h.users.Register(ctx, &req)
	if err != nil {
		if err == services.ErrEmailExists {
			writeJSON(w, http.StatusConflict, models.NewErrorResponse("Email already registered"))
			return
		}
		logger.FromRequest(r).Error().Err(err).Msg("registration failed")
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create account"))
		return
	}

	token, err := h.tokens.Issue(user.UID, user.Email)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to generate token"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(models.AuthResponse{
		Token: token,
		User:  *user,
	}))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
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

	user, err := h.users.Authenticate(ctx, &req)
	if err != nil {
		if err == services.ErrUserNotFound || err == services.ErrInvalidPassword {
			writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid email or password"))
			return
		}
		logger.FromRequest(r).Error().Err(err).Msg("login failed")
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Login failed"))
		return
	}

	token, err := h.tokens.Issue(user.UID, user.Email)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to generate token"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(models.AuthResponse{
		Token: token,
		User:  *user,
	}))
}
