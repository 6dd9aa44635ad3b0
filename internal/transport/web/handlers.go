package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/staff-portal/internal/domain"
	"github.com/staff-portal/internal/portal"
)

// ── Session ──────────────────────────────────────────────────────────────────

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	redirect(w, r, portal.Resolve(h.ctl.Session(), portal.ViewMain))
}

type loginData struct {
	FileNumber string
	Phone      string
	Remember   bool
}

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if h.ctl.Session() != nil {
		redirect(w, r, portal.ViewMain)
		return
	}
	rem, ok := h.ctl.Remembered()
	h.render(w, http.StatusOK, "login", "تسجيل الدخول", loginData{FileNumber: rem.FileNumber, Phone: rem.Phone, Remember: ok})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	fileNumber, phone := r.PostFormValue("file_number"), r.PostFormValue("phone_number")
	err := h.ctl.Login(r.Context(), fileNumber, phone, r.PostFormValue("password"),
		r.PostFormValue("persist") != "", r.PostFormValue("remember") != "")
	if err != nil {
		h.render(w, http.StatusOK, "login", "تسجيل الدخول", loginData{FileNumber: fileNumber, Phone: phone})
		return
	}
	redirect(w, r, portal.ViewMain)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.ctl.Logout(r.Context())
	redirect(w, r, portal.ViewLogin)
}

// ── Notifications ────────────────────────────────────────────────────────────

type mainData struct {
	Query         string
	Chips         []portal.Chip
	ResultsInfo   string
	Notifications []portal.NotificationView
}

func (h *Handler) mainData() mainData {
	snap := h.ctl.Snapshot()
	return mainData{
		Query:         snap.Query,
		Chips:         portal.Chips(snap.Category),
		ResultsInfo:   snap.ResultsInfo,
		Notifications: portal.NotificationViews(h.now(), snap.Notifications, portal.Arabic),
	}
}

func (h *Handler) Main(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "main", "الإشعارات", h.mainData())
}

// Search takes one keystroke's worth of query. The list catches up after the debounce.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	h.ctl.Search(r.PostFormValue("q"))
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) Category(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	cat, err := domain.ParseFilter(r.PostFormValue("category"))
	if err != nil {
		http.Error(w, "unknown category", http.StatusBadRequest)
		return
	}
	h.ctl.SetCategory(cat)
	redirect(w, r, portal.ViewMain)
}

func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	_ = h.ctl.RefreshNotifications(r.Context())
	redirect(w, r, portal.ViewMain)
}

func (h *Handler) NotificationList(w http.ResponseWriter, r *http.Request) {
	h.fragment(w, "notifications", h.mainData())
}

// ── Records ──────────────────────────────────────────────────────────────────

type listData struct {
	Items  []portal.ListItem
	Empty  string
	Base   string
	Failed bool
}

func (h *Handler) SalaryList(w http.ResponseWriter, r *http.Request) {
	recs, err := h.ctl.Payroll(r.Context())
	h.render(w, http.StatusOK, "salary", "الرواتب", listData{
		Items: portal.PayrollItems(recs), Empty: portal.NoPayrollData, Base: "/salary", Failed: err != nil,
	})
}

func (h *Handler) SalaryDetail(w http.ResponseWriter, r *http.Request) {
	recs, err := h.ctl.Payroll(r.Context())
	if err != nil {
		h.failed(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	for i := range recs {
		if recs[i].RecordID == id {
			b := portal.BuildPayroll(&recs[i])
			logDiscrepancies("payroll", id, b)
			h.render(w, http.StatusOK, "salary_detail", b.Title, struct {
				*portal.Breakdown
				ID string
			}{b, id})
			return
		}
	}
	h.notFound(w)
}

func (h *Handler) SalaryStatement(w http.ResponseWriter, r *http.Request) {
	u, err := h.ctl.PayrollStatement(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.failed(w, err)
		return
	}
	http.Redirect(w, r, u, http.StatusSeeOther)
}

func (h *Handler) ExpenseList(w http.ResponseWriter, r *http.Request) {
	recs, err := h.ctl.Expenses(r.Context())
	h.render(w, http.StatusOK, "expenses", "المصروفات", listData{
		Items: portal.ExpenseItems(recs), Empty: portal.NoExpenseData, Base: "/expenses", Failed: err != nil,
	})
}

func (h *Handler) ExpenseDetail(w http.ResponseWriter, r *http.Request) {
	recs, err := h.ctl.Expenses(r.Context())
	if err != nil {
		h.failed(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	for i := range recs {
		if recs[i].RecordID == id {
			b := portal.BuildExpense(&recs[i])
			logDiscrepancies("expense", id, b)
			h.render(w, http.StatusOK, "expense_detail", b.Title, b)
			return
		}
	}
	h.notFound(w)
}

// logDiscrepancies records sections whose lines do not add up to the stored total.
// The page shows the stored totals either way.
func logDiscrepancies(kind, id string, b *portal.Breakdown) {
	for _, d := range b.Discrepancies() {
		slog.Warn("record totals disagree with line items",
			"kind", kind, "record_id", id, "section", d.Section, "itemized", d.Itemized, "stated", d.Stated)
	}
}

func (h *Handler) PerformanceList(w http.ResponseWriter, r *http.Request) {
	recs, err := h.ctl.Performance(r.Context())
	h.render(w, http.StatusOK, "performance", "تقارير الأداء", listData{
		Items: portal.PerformanceItems(recs), Empty: portal.NoPerformanceData, Base: "/performance", Failed: err != nil,
	})
}

func (h *Handler) PerformanceDetail(w http.ResponseWriter, r *http.Request) {
	recs, err := h.ctl.Performance(r.Context())
	if err != nil {
		h.failed(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	for i := range recs {
		if recs[i].RecordID == id {
			v := portal.BuildPerformance(&recs[i])
			h.render(w, http.StatusOK, "performance_detail", v.Title, v)
			return
		}
	}
	h.notFound(w)
}

// ── Profile ──────────────────────────────────────────────────────────────────

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "profile", "الملف الشخصي", nil)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	_ = h.ctl.ChangePassword(r.Context(),
		r.PostFormValue("current_password"), r.PostFormValue("new_password"), r.PostFormValue("confirm_password"))
	redirect(w, r, portal.ViewProfile)
}

func (h *Handler) ChangePhone(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	_ = h.ctl.ChangePhone(r.Context(), r.PostFormValue("phone_number"))
	redirect(w, r, portal.ViewProfile)
}

// ── Reports ──────────────────────────────────────────────────────────────────

type reportsData struct {
	Reports        []portal.ReportView
	SubmitDisabled bool
	Failed         bool
}

func (h *Handler) Reports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.ctl.MyReports(r.Context())
	h.render(w, http.StatusOK, "reports", "البلاغات", reportsData{
		Reports:        portal.ReportViews(reports),
		SubmitDisabled: h.ctl.Snapshot().SubmitDisabled,
		Failed:         err != nil,
	})
}

func (h *Handler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	_, err := h.ctl.SubmitReport(r.Context(), r.PostFormValue("title"), r.PostFormValue("content"))
	if errors.Is(err, portal.ErrBusy) {
		w.Header().Set("Retry-After", "1")
		http.Error(w, portal.MsgReportBusy, http.StatusConflict)
		return
	}
	redirect(w, r, portal.ViewReports)
}

// ── Admin ────────────────────────────────────────────────────────────────────

type adminData struct {
	Notifications []portal.NotificationView
	Reports       []adminReport
	Categories    []portal.Chip
}

type adminReport struct {
	portal.ReportView
	Options []portal.StatusOption
}

func (h *Handler) Admin(w http.ResponseWriter, r *http.Request) {
	_ = h.ctl.Reload(r.Context())
	reports, _ := h.ctl.AllReports(r.Context())

	all := h.ctl.Master()
	views := portal.ReportViews(reports)
	rows := make([]adminReport, 0, len(views))
	for _, v := range views {
		rows = append(rows, adminReport{ReportView: v, Options: portal.StatusOptions(v.Status)})
	}
	h.render(w, http.StatusOK, "admin", "لوحة الإدارة", adminData{
		Notifications: portal.NotificationViews(h.now(), all, portal.Arabic),
		Reports:       rows,
		Categories:    portal.Chips("")[1:],
	})
}

func (h *Handler) EditNotification(w http.ResponseWriter, r *http.Request) {
	n, ok := h.ctl.Notification(chi.URLParam(r, "id"))
	if !ok {
		h.notFound(w)
		return
	}
	chips := portal.Chips(n.Type)[1:]
	h.render(w, http.StatusOK, "notification_edit", "تعديل الإشعار", struct {
		Notification domain.Notification
		Categories   []portal.Chip
	}{n, chips})
}

func notificationInput(r *http.Request) domain.NotificationInput {
	return domain.NotificationInput{
		Title:   r.PostFormValue("title"),
		Content: r.PostFormValue("content"),
		Type:    r.PostFormValue("type"),
	}
}

func (h *Handler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	_ = h.ctl.CreateNotification(r.Context(), notificationInput(r))
	redirect(w, r, portal.ViewAdmin)
}

func (h *Handler) UpdateNotification(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	_ = h.ctl.UpdateNotification(r.Context(), chi.URLParam(r, "id"), notificationInput(r))
	redirect(w, r, portal.ViewAdmin)
}

func (h *Handler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	_ = h.ctl.DeleteNotification(r.Context(), chi.URLParam(r, "id"))
	redirect(w, r, portal.ViewAdmin)
}

func (h *Handler) SetReportStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	_ = h.ctl.SetReportStatus(r.Context(), chi.URLParam(r, "id"), domain.ReportStatus(r.PostFormValue("status")))
	redirect(w, r, portal.ViewAdmin)
}

// ── Errors ───────────────────────────────────────────────────────────────────

func (h *Handler) failed(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	}
	http.Error(w, portal.Message(err, ""), status)
}

func (h *Handler) notFound(w http.ResponseWriter) {
	http.Error(w, portal.MsgNotFound, http.StatusNotFound)
}
