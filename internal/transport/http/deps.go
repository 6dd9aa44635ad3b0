package http

import (
	"context"

	"github.com/staff-portal/internal/domain"
	jwtinfra "github.com/staff-portal/internal/infrastructure/jwt"
)

// UserRepository is the minimal interface the router requires from a user store.
type UserRepository interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByFileNumber(ctx context.Context, fileNumber string) (*domain.User, error)
	SetPasswordHash(ctx context.Context, userID, hash string) error
	SetPhone(ctx context.Context, userID, phone string) error
}

// SessionRepository is the minimal interface the router requires from a session store.
type SessionRepository interface {
	Put(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	GetByRefreshToken(ctx context.Context, token string) (*domain.Session, error)
	RotateRefreshToken(ctx context.Context, sessionID, newToken string, newExpiry int64) error
	Disable(ctx context.Context, sessionID string) error
}

// NotificationRepository is the minimal interface the router requires from a notification store.
type NotificationRepository interface {
	ListFeed(ctx context.Context) ([]domain.Notification, error)
	Get(ctx context.Context, notificationID string) (*domain.Notification, error)
	Put(ctx context.Context, n *domain.Notification) error
	Update(ctx context.Context, notificationID string, in domain.NotificationInput) error
	Delete(ctx context.Context, notificationID string) error
}

// ReportRepository is the minimal interface the router requires from a report store.
type ReportRepository interface {
	PutIfAbsent(ctx context.Context, rep *domain.Report) (bool, error)
	Get(ctx context.Context, reportID string) (*domain.Report, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Report, error)
	ListAll(ctx context.Context) ([]domain.Report, error)
	UpdateStatus(ctx context.Context, reportID string, status domain.ReportStatus) error
}

// RecordRepository is the minimal interface the router requires from the record tables.
type RecordRepository interface {
	ListPayroll(ctx context.Context, fileNumber string) ([]domain.PayrollRecord, error)
	GetPayroll(ctx context.Context, recordID string) (*domain.PayrollRecord, error)
	ListExpenses(ctx context.Context, fileNumber string) ([]domain.ExpenseRecord, error)
	ListPerformance(ctx context.Context, fileNumber string) ([]domain.PerformanceRecord, error)
}

// StatementStore is the minimal interface the router requires from the payslip archive.
type StatementStore interface {
	PutStatement(ctx context.Context, key string, body []byte) (string, error)
}

// TokenProvider signs and verifies access tokens.
type TokenProvider interface {
	Sign(userID, fileNumber, role, sessionID string) (string, error)
	Verify(tokenStr string) (*jwtinfra.Claims, error)
}
