package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"contacts-api/internal/auth"
	"contacts-api/internal/service"
)

const minPasswordLen = 6

type AuthHandler struct {
	svc    *service.AuthService
	logger *slog.Logger
}

func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		WriteError(w, r, http.StatusBadRequest, "name, email and password are required")
		return
	}
	if !validEmail(req.Email) {
		WriteError(w, r, http.StatusBadRequest, "email is not valid")
		return
	}
	if len(req.Password) < minPasswordLen {
		WriteError(w, r, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	pair, err := h.svc.SignUp(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteSuccess(w, http.StatusCreated, pair)
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		WriteError(w, r, http.StatusBadRequest, "email and password are required")
		return
	}

	pair, err := h.svc.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteSuccess(w, http.StatusOK, pair)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.RefreshToken == "" {
		WriteError(w, r, http.StatusBadRequest, "refreshToken is required")
		return
	}

	pair, err := h.svc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteSuccess(w, http.StatusOK, pair)
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		WriteError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.svc.SignOut(r.Context(), claims.Subject); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// validEmail is a minimal shape check; real validation happens when the
// address is used.
func validEmail(s string) bool {
	at := strings.IndexByte(s, '@')
	return at > 0 && at < len(s)-1 && !strings.ContainsAny(s, " \t")
}
