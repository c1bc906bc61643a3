package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"contacts-api/internal/service"
)

type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, logger: logger}
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	user, err := h.svc.Create(req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteSuccess(w, http.StatusCreated, user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List()
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteSuccess(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Get(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteSuccess(w, http.StatusOK, user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email != "" && !validEmail(req.Email) {
		WriteError(w, r, http.StatusBadRequest, "email is not valid")
		return
	}
	if req.Password != "" && len(req.Password) < minPasswordLen {
		WriteError(w, r, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	user, err := h.svc.Update(r.PathValue("id"), strings.TrimSpace(req.Name), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteSuccess(w, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Delete(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteSuccess(w, http.StatusOK, user)
}
