package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vitrine/vitrine/internal/model"
	"github.com/vitrine/vitrine/internal/repository"
)

// ListSkills handles GET /api/skills.
func (h *ContentHandler) ListSkills(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := repository.SkillFilter{
		Category: query.Get("category"),
	}
	if l := query.Get("limit"); l != "" {
		if limit, err := strconv.Atoi(l); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}

	skills, err := h.repo.ListSkills(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeSuccess(w, http.StatusOK, skills)
}

// GetSkill handles GET /api/skills/{id}.
func (h *ContentHandler) GetSkill(w http.ResponseWriter, r *http.Request) {
	skill, err := h.repo.GetSkillByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleReadError(w, err, "Skill not found")
		return
	}

	writeSuccess(w, http.StatusOK, skill)
}

// CreateSkill handles POST /api/skills.
func (h *ContentHandler) CreateSkill(w http.ResponseWriter, r *http.Request) {
	var req model.Skill
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.repo.CreateSkill(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.metrics.IncContentCreated("skill")
	h.logger.Info("skill_created", "id", created.ID, "name", created.Name)
	writeSuccess(w, http.StatusCreated, created)
}

// UpdateSkill handles PUT /api/skills/{id}.
func (h *ContentHandler) UpdateSkill(w http.ResponseWriter, r *http.Request) {
	var req model.Skill
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.repo.UpdateSkill(r.Context(), &req)
	if err != nil {
		h.handleReadError(w, err, "Skill not found")
		return
	}

	h.metrics.IncContentUpdated("skill")
	h.logger.Info("skill_updated", "id", updated.ID)
	writeSuccess(w, http.StatusOK, updated)
}

// DeleteSkill handles DELETE /api/skills/{id}.
func (h *ContentHandler) DeleteSkill(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.repo.DeleteSkill(r.Context(), id); err != nil {
		h.handleReadError(w, err, "Skill not found")
		return
	}

	h.metrics.IncContentDeleted("skill")
	h.logger.Info("skill_deleted", "id", id)
	writeMessage(w, http.StatusOK, "Skill deleted")
}
