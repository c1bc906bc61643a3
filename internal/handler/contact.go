package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"contacts-api/internal/auth"
	"contacts-api/internal/service"
)

// ContactHandler resolves the owning user from the verified claims on every
// request; a contact id is only meaningful within that owner's scope.
type ContactHandler struct {
	svc    *service.ContactService
	logger *slog.Logger
}

func NewContactHandler(svc *service.ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{svc: svc, logger: logger}
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.Subject(r.Context())
	if userID == "" {
		WriteError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	if req.FirstName == "" || req.LastName == "" || req.Email == "" {
		WriteError(w, r, http.StatusBadRequest, "first_name, last_name and email are required")
		return
	}
	if !validEmail(req.Email) {
		WriteError(w, r, http.StatusBadRequest, "email is not valid")
		return
	}

	contact, err := h.svc.Create(userID, req.FirstName, req.LastName, req.Email, req.Phone)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteSuccess(w, http.StatusCreated, contact)
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.Subject(r.Context())
	if userID == "" {
		WriteError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	contacts, err := h.svc.List(userID)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteSuccess(w, http.StatusOK, contacts)
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.Subject(r.Context())
	if userID == "" {
		WriteError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	contact, err := h.svc.Get(r.PathValue("id"), userID)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteSuccess(w, http.StatusOK, contact)
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.Subject(r.Context())
	if userID == "" {
		WriteError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
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

	contact, err := h.svc.Update(r.PathValue("id"), userID,
		strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName), req.Email, req.Phone)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteSuccess(w, http.StatusOK, contact)
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.Subject(r.Context())
	if userID == "" {
		WriteError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	contact, err := h.svc.Delete(r.PathValue("id"), userID)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteSuccess(w, http.StatusOK, contact)
}
