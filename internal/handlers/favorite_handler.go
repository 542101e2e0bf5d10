package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/artconecta/backend/internal/middleware"
	"github.com/artconecta/backend/internal/models"
	"github.com/artconecta/backend/internal/services"
)

// FavoriteService is the slice of the favorite service the handlers need.
type FavoriteService interface {
	Add(ctx context.Context, userUID, projectID string) (*models.Favorite, error)
	Remove(ctx context.Context, userUID, projectID string) error
	ListForUser(ctx context.Context, userUID string) ([]*models.Favorite, error)
	ListProjectsForUser(ctx context.Context, userUID string) ([]*models.Project, error)
}

type FavoriteHandler struct {
	favorites FavoriteService
}

func NewFavoriteHandler(favorites FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	uid := middleware.GetUserUID(r.Context())
	if uid == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}
	projectID := chi.URLParam(r, "projectId")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeoutSeconds*time.Second)
	defer cancel()

	favorite, err := h.favorites.Add(ctx, uid, projectID)
	if err != nil {
		switch err {
		case services.ErrAlreadyFavorited:
			writeJSON(w, http.StatusConflict, models.NewErrorResponse("Project already favorited"))
		case services.ErrProjectNotFound:
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Project not found"))
		default:
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to add favorite"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(favorite))
}

func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	uid := middleware.GetUserUID(r.Context())
	if uid == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}
	projectID := chi.URLParam(r, "projectId")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeoutSeconds*time.Second)
	defer cancel()

	if err := h.favorites.Remove(ctx, uid, projectID); err != nil {
		if err == services.ErrFavoriteNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Favorite not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to remove favorite"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Favorite removed"}))
}

func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	uid := middleware.GetUserUID(r.Context())
	if uid == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeoutSeconds*time.Second)
	defer cancel()

	favorites, err := h.favorites.ListForUser(ctx, uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list favorites"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(favorites))
}

func (h *FavoriteHandler) ListFavoriteProjects(w http.ResponseWriter, r *http.Request) {
	uid := middleware.GetUserUID(r.Context())
	if uid == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeoutSeconds*time.Second)
	defer cancel()

	projects, err := h.favorites.ListProjectsForUser(ctx, uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list favorites"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(projects))
}
