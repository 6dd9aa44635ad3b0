package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/staff-portal/internal/portal"
)

// NewRouter builds the portal's HTML router around one controller.
func NewRouter(ctl *portal.Controller) (http.Handler, error) {
	pages, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	h := &Handler{ctl: ctl, pages: pages, now: time.Now}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Get("/", h.Home)
	r.Get("/login", h.LoginPage)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)

	r.Group(func(r chi.Router) {
		r.Use(h.requireView(portal.ViewMain))
		r.Get("/main", h.Main)
		r.Post("/search", h.Search)
		r.Post("/category", h.Category)
		r.Post("/notifications/reload", h.Reload)
		r.Get("/notifications/list", h.NotificationList)
	})
	r.With(h.requireView(portal.ViewSalary)).Route("/salary", func(r chi.Router) {
		r.Get("/", h.SalaryList)
		r.Get("/{id}", h.SalaryDetail)
		r.Get("/{id}/statement", h.SalaryStatement)
	})
	r.With(h.requireView(portal.ViewExpenses)).Route("/expenses", func(r chi.Router) {
		r.Get("/", h.ExpenseList)
		r.Get("/{id}", h.ExpenseDetail)
	})
	r.With(h.requireView(portal.ViewPerformance)).Route("/performance", func(r chi.Router) {
		r.Get("/", h.PerformanceList)
		r.Get("/{id}", h.PerformanceDetail)
	})
	r.With(h.requireView(portal.ViewProfile)).Route("/profile", func(r chi.Router) {
		r.Get("/", h.Profile)
		r.Post("/password", h.ChangePassword)
		r.Post("/phone", h.ChangePhone)
	})
	r.With(h.requireView(portal.ViewReports)).Route("/reports", func(r chi.Router) {
		r.Get("/", h.Reports)
		r.Post("/", h.SubmitReport)
	})
	r.With(h.requireView(portal.ViewAdmin)).Route("/admin", func(r chi.Router) {
		r.Get("/", h.Admin)
		r.Get("/notifications/{id}", h.EditNotification)
		r.Post("/notifications", h.CreateNotification)
		r.Post("/notifications/{id}", h.UpdateNotification)
		r.Post("/notifications/{id}/delete", h.DeleteNotification)
		r.Post("/reports/{id}/status", h.SetReportStatus)
	})

	return r, nil
}

// requireView redirects to the view Resolve picks when it differs from want.
func (h *Handler) requireView(want portal.View) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := portal.Resolve(h.ctl.Session(), want); got != want {
				redirect(w, r, got)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func redirect(w http.ResponseWriter, r *http.Request, v portal.View) {
	http.Redirect(w, r, "/"+string(v), http.StatusSeeOther)
}
