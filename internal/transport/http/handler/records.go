package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/staff-portal/internal/application/record"
)

// RecordHandler serves an employee's payroll, expense and performance records.
// Routes are mounted under /employees/{fileNumber}; ownership is enforced by middleware.
type RecordHandler struct {
	svc record.Service
}

func NewRecordHandler(svc record.Service) *RecordHandler {
	return &RecordHandler{svc: svc}
}

func (h *RecordHandler) Payroll(w http.ResponseWriter, r *http.Request) {
	recs, err := h.svc.ListPayroll(r.Context(), chi.URLParam(r, "fileNumber"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *RecordHandler) Expenses(w http.ResponseWriter, r *http.Request) {
	recs, err := h.svc.ListExpenses(r.Context(), chi.URLParam(r, "fileNumber"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *RecordHandler) Performance(w http.ResponseWriter, r *http.Request) {
	recs, err := h.svc.ListPerformance(r.Context(), chi.URLParam(r, "fileNumber"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *RecordHandler) Statement(w http.ResponseWriter, r *http.Request) {
	url, err := h.svc.PayrollStatement(r.Context(), chi.URLParam(r, "fileNumber"), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StatementEnvelope{URL: url})
}
