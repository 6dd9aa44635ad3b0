package portal

import (
	"context"

	"github.com/staff-portal/internal/domain"
)

// Repository is the portal's view of the record store. List calls that
// cannot reach the store return an empty slice and an error wrapping
// domain.ErrUnreachable. Mutations that cannot reach it wrap both
// domain.ErrWrite and domain.ErrUnreachable.
type Repository interface {
	Authenticate(ctx context.Context, fileNumber, phone, password string) (*Session, error)
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
	Logout(ctx context.Context) error

	ListNotifications(ctx context.Context) ([]domain.Notification, error)
	CreateNotification(ctx context.Context, in domain.NotificationInput) (*domain.Notification, error)
	UpdateNotification(ctx context.Context, id string, in domain.NotificationInput) (*domain.Notification, error)
	DeleteNotification(ctx context.Context, id string) error

	ListPayroll(ctx context.Context, fileNumber string) ([]domain.PayrollRecord, error)
	ListExpenses(ctx context.Context, fileNumber string) ([]domain.ExpenseRecord, error)
	ListPerformance(ctx context.Context, fileNumber string) ([]domain.PerformanceRecord, error)
	PayrollStatementURL(ctx context.Context, fileNumber, recordID string) (string, error)

	CreateReport(ctx context.Context, ownerID, title, content, idempotencyKey string) (*domain.Report, error)
	ListReportsForUser(ctx context.Context, ownerID string) ([]domain.Report, error)
	ListAllReports(ctx context.Context) ([]domain.Report, error)
	SetReportStatus(ctx context.Context, reportID string, status domain.ReportStatus) (*domain.Report, error)

	ChangePassword(ctx context.Context, userID, current, next string) error
	ChangePhone(ctx context.Context, userID, phone string) error
}

// StateStore persists small JSON values across restarts.
type StateStore interface {
	// Load decodes the value under key into dst and reports whether it existed.
	Load(key string, dst any) (bool, error)
	Save(key string, v any) error
	Delete(key string) error
}

// Keys of the persisted state.
const (
	KeyCurrentUser    = "currentUser"
	KeyRememberedData = "rememberedData"
)

// Remembered holds the login fields a user asked to keep. Never the password.
type Remembered struct {
	FileNumber string `json:"file_number"`
	Phone      string `json:"phone_number"`
}
