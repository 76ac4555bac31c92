package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vitrine/vitrine/internal/metrics"
	"github.com/vitrine/vitrine/internal/model"
	"github.com/vitrine/vitrine/internal/repository"
)

// ContentHandler handles CRUD for portfolio content collections.
type ContentHandler struct {
	repo    *repository.Repository
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(repo *repository.Repository, logger *slog.Logger, recorder metrics.Recorder) *ContentHandler {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ContentHandler{
		repo:    repo,
		logger:  logger,
		metrics: recorder,
	}
}

// ListProjects handles GET /api/projects.
func (h *ContentHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := repository.ProjectFilter{}
	if f := query.Get("featured"); f != "" {
		if featured, err := strconv.ParseBool(f); err == nil {
			filter.Featured = &featured
		}
	}
	if l := query.Get("limit"); l != "" {
		if limit, err := strconv.Atoi(l); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}

	projects, err := h.repo.ListProjects(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeSuccess(w, http.StatusOK, projects)
}

// GetProject handles GET /api/projects/{id}.
func (h *ContentHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.repo.GetProjectByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleReadError(w, err, "Project not found")
		return
	}

	writeSuccess(w, http.StatusOK, project)
}

// CreateProject handles POST /api/projects.
func (h *ContentHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req model.Project
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !h.normalizeProject(w, &req) {
		return
	}

	created, err := h.repo.CreateProject(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.metrics.IncContentCreated("project")
	h.logger.Info("project_created", "id", created.ID, "title", created.Title)
	writeSuccess(w, http.StatusCreated, created)
}

// UpdateProject handles PUT /api/projects/{id}.
func (h *ContentHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var req model.Project
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !h.normalizeProject(w, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.repo.UpdateProject(r.Context(), &req)
	if err != nil {
		h.handleReadError(w, err, "Project not found")
		return
	}

	h.metrics.IncContentUpdated("project")
	h.logger.Info("project_updated", "id", updated.ID)
	writeSuccess(w, http.StatusOK, updated)
}

// DeleteProject handles DELETE /api/projects/{id}.
func (h *ContentHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.repo.DeleteProject(r.Context(), id); err != nil {
		h.handleReadError(w, err, "Project not found")
		return
	}

	h.metrics.IncContentDeleted("project")
	h.logger.Info("project_deleted", "id", id)
	writeMessage(w, http.StatusOK, "Project deleted")
}

// normalizeProject applies defaults and validates the status field.
// Returns false after writing an error response.
func (h *ContentHandler) normalizeProject(w http.ResponseWriter, p *model.Project) bool {
	if p.Status == "" {
		p.Status = model.ProjectCompleted
	}
	if !p.Status.IsValid() {
		writeError(w, http.StatusBadRequest, "Invalid project status")
		return false
	}
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	return true
}

// handleReadError maps repository errors for detail reads.
func (h *ContentHandler) handleReadError(w http.ResponseWriter, err error, notFoundMsg string) {
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, notFoundMsg)
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}
