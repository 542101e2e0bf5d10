package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artconecta/backend/internal/logger"
	"github.com/artconecta/backend/internal/models"
	"github.com/artconecta/backend/internal/services"
)

type ContactHandler struct {
	recaptcha *services.RecaptchaVerifier
	mailer    *services.ContactMailer
}

func NewContactHandler(recaptcha *services.RecaptchaVerifier, mailer *services.ContactMailer) *ContactHandler {
	return &ContactHandler{recaptcha: recaptcha, mailer: mailer}
}

type contactRequestBody struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Message        string `json:"message"`
	RecaptchaToken string `json:"recaptchaToken"`
}

// SubmitContactRequest validates the form, checks reCAPTCHA and forwards the
// message to the platform inbox. Returns a ticket reference.
func (h *ContactHandler) SubmitContactRequest(w http.ResponseWriter, r *http.Request) {
	var req contactRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	msg := strings.TrimSpace(req.Message)
	token := strings.TrimSpace(req.RecaptchaToken)

	errors := map[string]string{}
	if name == "" {
		errors["name"] = "Name is required"
	} else if len(name) > 120 {
		errors["name"] = "Name is too long"
	}

	if email == "" {
		errors["email"] = "Email is required"
	} else if len(email) > 254 {
		errors["email"] = "Email is too long"
	} else if _, err := mail.ParseAddress(email); err != nil {
		errors["email"] = "Email is invalid"
	}

	if msg == "" {
		errors["message"] = "Message is required"
	} else if len(msg) > 4000 {
		errors["message"] = "Message is too long"
	}

	if token == "" {
		errors["recaptchaToken"] = "reCAPTCHA token is required"
	}

	if len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	remoteIP := clientIP(r)
	log := logger.FromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	ok, reason, err := h.recaptcha.Verify(ctx, token, remoteIP)
	if err != nil {
		log.Error().Err(err).Str("ip", remoteIP).Msg("recaptcha verification error")
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to verify reCAPTCHA"))
		return
	}
	if !ok {
		log.Warn().Str("ip", remoteIP).Str("reason", reason).Msg("recaptcha rejected")
		writeJSON(w, http.StatusForbidden, models.NewErrorResponse("reCAPTCHA verification failed"))
		return
	}

	ticket := generateContactTicket()
	if err := h.mailer.SendContactEmail(ctx, ticket, name, email, msg); err != nil {
		log.Error().Err(err).Str("ticket", ticket).Msg("contact mail delivery failed")
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to send message"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{
		"ticket": ticket,
	}))
}

// generateContactTicket builds a reference like AC-20260829-154210-A1B2C3D4.
func generateContactTicket() string {
	now := time.Now().UTC().Format("20060102-150405")
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	if len(id) > 8 {
		id = id[:8]
	}
	return "AC-" + now + "-" + id
}
