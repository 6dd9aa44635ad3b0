package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/staff-portal/internal/application/account"
	"github.com/staff-portal/internal/application/notification"
	"github.com/staff-portal/internal/application/record"
	"github.com/staff-portal/internal/application/report"
	"github.com/staff-portal/internal/application/session"
	"github.com/staff-portal/internal/config"
	"github.com/staff-portal/internal/domain"
	"github.com/staff-portal/internal/infrastructure/sns"
	"github.com/staff-portal/internal/transport/http/handler"
	appmiddleware "github.com/staff-portal/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo         UserRepository
	SessionRepo      SessionRepository
	NotificationRepo NotificationRepository
	ReportRepo       ReportRepository
	RecordRepo       RecordRepository
	Statements       StatementStore
	RenderStatement  record.StatementRenderer
	SMSSender        sns.SMSSender
	JWTProvider      TokenProvider
}

// NewRouter builds and returns the application router. ctx bounds background
// work owned by the router, such as rate-limiter cleanup.
func NewRouter(ctx context.Context, cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", handler.IdempotencyHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider, deps.SessionRepo)
	adminOnly := appmiddleware.RequireRole(domain.RoleAdmin)
	selfOnly := appmiddleware.RequireOwner("id", appmiddleware.ByUserID, false)
	userOrAdmin := appmiddleware.RequireOwner("id", appmiddleware.ByUserID, true)
	employeeOrAdmin := appmiddleware.RequireOwner("fileNumber", appmiddleware.ByFileNumber, true)

	// 5 requests/second, burst of 10, applied to the login endpoint.
	loginRL := appmiddleware.NewRateLimiter(ctx, rate.Limit(5), 10)

	sessionSvc := session.NewService(session.ServiceDeps{
		UserRepo:        deps.UserRepo,
		SessionRepo:     deps.SessionRepo,
		JWTProvider:     deps.JWTProvider,
		RefreshTokenDur: cfg.RefreshTokenDur,
	})
	accountSvc := account.NewService(deps.UserRepo)
	notifSvc := notification.NewService(deps.NotificationRepo)
	reportSvc := report.NewService(report.ServiceDeps{
		ReportRepo: deps.ReportRepo,
		UserRepo:   deps.UserRepo,
		SMSSender:  deps.SMSSender,
	})
	recordSvc := record.NewService(record.ServiceDeps{
		RecordRepo: deps.RecordRepo,
		Statements: deps.Statements,
		Render:     deps.RenderStatement,
	})

	healthH := handler.NewHealthHandler()
	sessionH := handler.NewSessionHandler(sessionSvc)
	accountH := handler.NewAccountHandler(accountSvc)
	notifH := handler.NewNotificationHandler(notifSvc)
	reportH := handler.NewReportHandler(reportSvc)
	recordH := handler.NewRecordHandler(recordSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.With(loginRL.Limit).Post("/sessions/login", sessionH.Login)
		r.Post("/sessions/refresh", sessionH.Refresh)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/sessions", sessionH.GetCurrent)
			r.Post("/sessions/logout", sessionH.Logout)

			r.Get("/notifications", notifH.List)
			r.Get("/notifications/{id}", notifH.Get)

			r.Route("/employees/{fileNumber}", func(r chi.Router) {
				r.Use(employeeOrAdmin)
				r.Get("/payroll", recordH.Payroll)
				r.Get("/payroll/{id}/statement", recordH.Statement)
				r.Get("/expenses", recordH.Expenses)
				r.Get("/performance", recordH.Performance)
			})

			r.Post("/reports", reportH.Create)
			r.With(userOrAdmin).Get("/users/{id}/reports", reportH.ListForUser)
			r.With(selfOnly).Put("/users/{id}/password", accountH.ChangePassword)
			r.With(selfOnly).Put("/users/{id}/phone", accountH.ChangePhone)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(adminOnly)

				r.Post("/notifications", notifH.Create)
				r.Put("/notifications/{id}", notifH.Update)
				r.Delete("/notifications/{id}", notifH.Delete)

				r.Get("/reports", reportH.ListAll)
				r.Put("/reports/{id}/status", reportH.SetStatus)
			})
		})
	})

	return r
}
