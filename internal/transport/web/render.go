package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/staff-portal/internal/portal"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"login", "main", "salary", "salary_detail", "expenses", "expense_detail",
	"performance", "performance_detail", "profile", "reports", "admin", "notification_edit",
}

var funcs = template.FuncMap{
	"money":     portal.Money,
	"deduction": portal.Deduction,
}

// loadTemplates parses every page together with the shared layout and fragments.
func loadTemplates() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/fragments.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

// Handler serves the portal pages.
type Handler struct {
	ctl   *portal.Controller
	pages map[string]*template.Template
	now   func() time.Time
}

type page struct {
	Title   string
	View    portal.View
	Session *portal.Session
	Notices []portal.Notice
	Data    any
}

func (h *Handler) render(w http.ResponseWriter, status int, name, title string, data any) {
	t, ok := h.pages[name]
	if !ok {
		slog.Error("unknown page", "page", name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	p := page{
		Title:   title,
		View:    portal.View(name),
		Session: h.ctl.Session(),
		Notices: h.ctl.Notices(),
		Data:    data,
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		slog.Error("render page", "page", name, "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) fragment(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := h.pages["main"].ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("render fragment", "fragment", name, "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
