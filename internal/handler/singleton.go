package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vitrine/vitrine/internal/cache"
	"github.com/vitrine/vitrine/internal/handler/dto"
	"github.com/vitrine/vitrine/internal/metrics"
	"github.com/vitrine/vitrine/internal/model"
	"github.com/vitrine/vitrine/internal/repository"
)

const (
	entityPersonalInfo   = "personal_info"
	entityContactDetails = "contact_details"
)

// SingletonHandler serves the two single-row resources: the owner's
// profile and contact card.
type SingletonHandler struct {
	repo    *repository.Repository
	cache   *cache.Cache
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewSingletonHandler creates a new SingletonHandler.
func NewSingletonHandler(repo *repository.Repository, c *cache.Cache, logger *slog.Logger, recorder metrics.Recorder) *SingletonHandler {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &SingletonHandler{
		repo:    repo,
		cache:   c,
		logger:  logger,
		metrics: recorder,
	}
}

// GetPersonalInfo handles GET /api/personal-info.
// A missing row is a success with null data, not an error.
func (h *SingletonHandler) GetPersonalInfo(w http.ResponseWriter, r *http.Request) {
	var cached model.PersonalInfo
	if h.cacheGet(r.Context(), entityPersonalInfo, &cached) {
		writeJSON(w, http.StatusOK, dto.DataEnvelope{Success: true, Data: &cached})
		return
	}

	info, err := h.repo.GetPersonalInfo(r.Context())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if info != nil {
		h.cacheSet(r.Context(), entityPersonalInfo, info)
	}
	writeJSON(w, http.StatusOK, dto.DataEnvelope{Success: true, Data: info})
}

// UpsertPersonalInfo handles POST /api/personal-info.
func (h *SingletonHandler) UpsertPersonalInfo(w http.ResponseWriter, r *http.Request) {
	var req model.PersonalInfo
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	saved, err := h.repo.UpsertPersonalInfo(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.invalidate(r.Context(), entityPersonalInfo)
	h.metrics.IncContentUpdated(entityPersonalInfo)
	h.logger.Info("personal_info_upserted", "id", saved.ID)
	writeSuccess(w, http.StatusOK, saved)
}

// GetContactDetails handles GET /api/contact-details.
func (h *SingletonHandler) GetContactDetails(w http.ResponseWriter, r *http.Request) {
	var cached model.ContactDetails
	if h.cacheGet(r.Context(), entityContactDetails, &cached) {
		writeJSON(w, http.StatusOK, dto.DataEnvelope{Success: true, Data: &cached})
		return
	}

	details, err := h.repo.GetContactDetails(r.Context())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if details != nil {
		h.cacheSet(r.Context(), entityContactDetails, details)
	}
	writeJSON(w, http.StatusOK, dto.DataEnvelope{Success: true, Data: details})
}

// UpsertContactDetails handles POST /api/contact-details.
func (h *SingletonHandler) UpsertContactDetails(w http.ResponseWriter, r *http.Request) {
	var req model.ContactDetails
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	saved, err := h.repo.UpsertContactDetails(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.invalidate(r.Context(), entityContactDetails)
	h.metrics.IncContentUpdated(entityContactDetails)
	h.logger.Info("contact_details_upserted", "id", saved.ID)
	writeSuccess(w, http.StatusOK, saved)
}

// cacheGet reads a cached entity. Cache failures degrade to a miss.
func (h *SingletonHandler) cacheGet(ctx context.Context, entity string, out any) bool {
	if h.cache == nil {
		return false
	}
	err := h.cache.GetContent(ctx, entity, out)
	if err == nil {
		h.metrics.IncContentCacheHit()
		return true
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		h.logger.Warn("content cache read failed", "entity", entity, "error", err)
	}
	h.metrics.IncContentCacheMiss()
	return false
}

func (h *SingletonHandler) cacheSet(ctx context.Context, entity string, value any) {
	if h.cache == nil {
		return
	}
	if err := h.cache.SetContent(ctx, entity, value); err != nil {
		h.logger.Warn("content cache write failed", "entity", entity, "error", err)
	}
}

func (h *SingletonHandler) invalidate(ctx context.Context, entity string) {
	if h.cache == nil {
		return
	}
	if err := h.cache.InvalidateContent(ctx, entity); err != nil {
		h.logger.Warn("content cache invalidation failed", "entity", entity, "error", err)
	}
}
