package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vitrine/vitrine/internal/model"
)

// ListEducation handles GET /api/education.
func (h *ContentHandler) ListEducation(w http.ResponseWriter, r *http.Request) {
	entries, err := h.repo.ListEducation(r.Context())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeSuccess(w, http.StatusOK, entries)
}

// GetEducation handles GET /api/education/{id}.
func (h *ContentHandler) GetEducation(w http.ResponseWriter, r *http.Request) {
	entry, err := h.repo.GetEducationByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleReadError(w, err, "Education entry not found")
		return
	}

	writeSuccess(w, http.StatusOK, entry)
}

// CreateEducation handles POST /api/education.
func (h *ContentHandler) CreateEducation(w http.ResponseWriter, r *http.Request) {
	var req model.Education
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.repo.CreateEducation(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.metrics.IncContentCreated("education")
	h.logger.Info("education_created", "id", created.ID, "institution", created.Institution)
	writeSuccess(w, http.StatusCreated, created)
}

// UpdateEducation handles PUT /api/education/{id}.
func (h *ContentHandler) UpdateEducation(w http.ResponseWriter, r *http.Request) {
	var req model.Education
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.repo.UpdateEducation(r.Context(), &req)
	if err != nil {
		h.handleReadError(w, err, "Education entry not found")
		return
	}

	h.metrics.IncContentUpdated("education")
	h.logger.Info("education_updated", "id", updated.ID)
	writeSuccess(w, http.StatusOK, updated)
}

// DeleteEducation handles DELETE /api/education/{id}.
func (h *ContentHandler) DeleteEducation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.repo.DeleteEducation(r.Context(), id); err != nil {
		h.handleReadError(w, err, "Education entry not found")
		return
	}

	h.metrics.IncContentDeleted("education")
	h.logger.Info("education_deleted", "id", id)
	writeMessage(w, http.StatusOK, "Education entry deleted")
}
