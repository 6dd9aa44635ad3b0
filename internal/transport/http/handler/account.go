package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/staff-portal/internal/application/account"
	"github.com/staff-portal/internal/domain"
)

// AccountHandler lets an employee maintain their own credentials.
type AccountHandler struct {
	svc account.Service
}

func NewAccountHandler(svc account.Service) *AccountHandler {
	return &AccountHandler{svc: svc}
}

func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ChangePasswordRequest
	if !decodeValid(w, r, &req) {
		return
	}
	if err := h.svc.ChangePassword(r.Context(), chi.URLParam(r, "id"), req.CurrentPassword, req.NewPassword); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "password changed"})
}

func (h *AccountHandler) ChangePhone(w http.ResponseWriter, r *http.Request) {
	var req domain.ChangePhoneRequest
	if !decodeValid(w, r, &req) {
		return
	}
	u, err := h.svc.ChangePhone(r.Context(), chi.URLParam(r, "id"), req.Phone)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
