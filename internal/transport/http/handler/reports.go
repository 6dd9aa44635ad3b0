package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/staff-portal/internal/application/report"
	"github.com/staff-portal/internal/domain"
	"github.com/staff-portal/internal/transport/http/middleware"
)

// IdempotencyHeader carries the client-chosen key that deduplicates report submissions.
const IdempotencyHeader = "Idempotency-Key"

// ReportHandler handles issue report endpoints.
type ReportHandler struct {
	svc report.Service
}

func NewReportHandler(svc report.Service) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// Create answers 201 for a new report and 200 when the key was already used.
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.CreateReportRequest
	if !decodeValid(w, r, &req) {
		return
	}
	rep, created, err := h.svc.Create(r.Context(), claims.UserID, r.Header.Get(IdempotencyHeader), req)
	if err != nil {
		httpError(w, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, rep)
}

func (h *ReportHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	reports, err := h.svc.ListForUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

func (h *ReportHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	reports, err := h.svc.ListAll(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

func (h *ReportHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req domain.SetReportStatusRequest
	if !decodeValid(w, r, &req) {
		return
	}
	rep, err := h.svc.SetStatus(r.Context(), chi.URLParam(r, "id"), domain.ReportStatus(req.Status))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
