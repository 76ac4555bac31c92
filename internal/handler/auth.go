package handler

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/vitrine/vitrine/internal/auth"
	"github.com/vitrine/vitrine/internal/cache"
	"github.com/vitrine/vitrine/internal/handler/dto"
	"github.com/vitrine/vitrine/internal/model"
)

// AuthHandler handles owner session endpoints.
type AuthHandler struct {
	cache      *cache.Cache
	ownerEmail string
	ownerHash  string
	sessionTTL time.Duration
	logger     *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(c *cache.Cache, ownerEmail, ownerHash string, sessionTTL time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		cache:      c,
		ownerEmail: ownerEmail,
		ownerHash:  ownerHash,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Login handles POST /api/auth/login.
//
// Credential failures all answer the same generic 401 so the response
// does not reveal whether the email or the password was wrong.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	emailMatch := subtle.ConstantTimeCompare([]byte(req.Email), []byte(h.ownerEmail)) == 1
	passwordMatch, err := auth.VerifyPassword(req.Password, h.ownerHash)
	if err != nil {
		h.logger.Error("password verification failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An internal error occurred")
		return
	}
	if !emailMatch || !passwordMatch {
		h.logger.Warn("login_rejected", "email", req.Email)
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := auth.NewSessionToken()
	if err != nil {
		h.logger.Error("session token generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An internal error occurred")
		return
	}

	session := &model.Session{
		Token:     token,
		Email:     h.ownerEmail,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.cache.SetSession(r.Context(), session, h.sessionTTL); err != nil {
		h.logger.Error("session store failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An internal error occurred")
		return
	}

	h.logger.Info("login_succeeded", "email", h.ownerEmail)
	writeSuccess(w, http.StatusOK, dto.LoginResponse{
		Token: token,
		Email: h.ownerEmail,
	})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())
	if session == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.cache.DeleteSession(r.Context(), session.Token); err != nil {
		h.logger.Error("session revocation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An internal error occurred")
		return
	}

	h.logger.Info("logout", "email", session.Email)
	writeMessage(w, http.StatusOK, "Logged out")
}

// User handles GET /api/auth/user.
func (h *AuthHandler) User(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())
	if session == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	writeSuccess(w, http.StatusOK, dto.UserResponse{Email: session.Email})
}
