package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vitrine/vitrine/internal/model"
)

// ListCertificates handles GET /api/certificates.
func (h *ContentHandler) ListCertificates(w http.ResponseWriter, r *http.Request) {
	certs, err := h.repo.ListCertificates(r.Context())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeSuccess(w, http.StatusOK, certs)
}

// GetCertificate handles GET /api/certificates/{id}.
func (h *ContentHandler) GetCertificate(w http.ResponseWriter, r *http.Request) {
	cert, err := h.repo.GetCertificateByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleReadError(w, err, "Certificate not found")
		return
	}

	writeSuccess(w, http.StatusOK, cert)
}

// CreateCertificate handles POST /api/certificates.
func (h *ContentHandler) CreateCertificate(w http.ResponseWriter, r *http.Request) {
	var req model.Certificate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.repo.CreateCertificate(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.metrics.IncContentCreated("certificate")
	h.logger.Info("certificate_created", "id", created.ID, "title", created.Title)
	writeSuccess(w, http.StatusCreated, created)
}

// UpdateCertificate handles PUT /api/certificates/{id}.
func (h *ContentHandler) UpdateCertificate(w http.ResponseWriter, r *http.Request) {
	var req model.Certificate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.repo.UpdateCertificate(r.Context(), &req)
	if err != nil {
		h.handleReadError(w, err, "Certificate not found")
		return
	}

	h.metrics.IncContentUpdated("certificate")
	h.logger.Info("certificate_updated", "id", updated.ID)
	writeSuccess(w, http.StatusOK, updated)
}

// DeleteCertificate handles DELETE /api/certificates/{id}.
func (h *ContentHandler) DeleteCertificate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.repo.DeleteCertificate(r.Context(), id); err != nil {
		h.handleReadError(w, err, "Certificate not found")
		return
	}

	h.metrics.IncContentDeleted("certificate")
	h.logger.Info("certificate_deleted", "id", id)
	writeMessage(w, http.StatusOK, "Certificate deleted")
}
