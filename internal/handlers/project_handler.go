package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/artconecta/backend/internal/logger"
	"github.com/artconecta/backend/internal/middleware"
	"github.com/artconecta/backend/internal/models"
	"github.com/artconecta/backend/internal/services"
)

// ProjectService is the slice of the project service the handlers need.
type ProjectService interface {
	Create(ctx context.Context, ownerUID string, req *models.CreateProjectRequest) (*models.Project, error)
	GetByID(ctx context.Context, id string) (*models.Project, error)
	List(ctx context.Context, q *models.ListProjectsQuery) ([]*models.Project, error)
	Update(ctx context.Context, ownerUID, id string, req *models.UpdateProjectRequest) (*models.Project, error)
	Delete(ctx context.Context, ownerUID, id string) error
}

type ProjectHandler struct {
	projects ProjectService
}

func NewProjectHandler(projects ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	uid := middleware.GetUserUID(r.Context())
	if uid == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.CreateProjectRequest
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

	project, err := h.projects.Create(ctx, uid, &req)
	if err != nil {
		logger.FromRequest(r).Error().Err(err).Str("uid", uid).Msg("failed to create project")
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create project"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(project))
}

func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeoutSeconds*time.Second)
	defer cancel()

	project, err := h.projects.GetByID(ctx, projectID)
	if err != nil {
		if err == services.ErrProjectNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Project not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to get project"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(project))
}

func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	q := &models.ListProjectsQuery{
		Tag:      r.URL.Query().Get("tag"),
		OwnerUID: r.URL.Query().Get("owner"),
		OpenOnly: r.URL.Query().Get("open") == "true",
	}
	if limit, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64); err == nil {
		q.Limit = limit
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeoutSeconds*time.Second)
	defer cancel()

	projects, err := h.projects.List(ctx, q)
	if err != nil {
		logger.FromRequest(r).Error().Err(err).Msg("failed to list projects")
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list projects"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(projects))
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	uid := middleware.GetUserUID(r.Context())
	projectID := chi.URLParam(r, "projectId")

	var req models.UpdateProjectRequest
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

	project, err := h.projects.Update(ctx, uid, projectID, &req)
	if err != nil {
		switch err {
		case services.ErrProjectNotFound:
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Project not found"))
		case services.ErrNotProjectOwner:
			writeJSON(w, http.StatusForbidden, models.NewErrorResponse("Not authorized to update this project"))
		default:
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update project"))
		}
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(project))
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	uid := middleware.GetUserUID(r.Context())
	projectID := chi.URLParam(r, "projectId")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeoutSeconds*time.Second)
	defer cancel()

	if err := h.projects.Delete(ctx, uid, projectID); err != nil {
		switch err {
		case services.ErrProjectNotFound:
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Project not found"))
		case services.ErrNotProjectOwner:
			writeJSON(w, http.StatusForbidden, models.NewErrorResponse("Not authorized to delete this project"))
		default:
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete project"))
		}
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Project deleted"}))
}
