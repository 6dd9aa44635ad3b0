package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/staff-portal/internal/domain"
	"github.com/staff-portal/internal/infrastructure/sns"
	"github.com/staff-portal/internal/pkg/id"
)

type Service interface {
	// Create files a report. A repeated idempotency key returns the report
	// stored under it instead of creating a second one.
	Create(ctx context.Context, userID, idempotencyKey string, req domain.CreateReportRequest) (*domain.Report, bool, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Report, error)
	ListAll(ctx context.Context) ([]domain.Report, error)
	SetStatus(ctx context.Context, reportID string, status domain.ReportStatus) (*domain.Report, error)
}

type reportStore interface {
	PutIfAbsent(ctx context.Context, rep *domain.Report) (bool, error)
	Get(ctx context.Context, reportID string) (*domain.Report, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Report, error)
	ListAll(ctx context.Context) ([]domain.Report, error)
	UpdateStatus(ctx context.Context, reportID string, status domain.ReportStatus) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type service struct {
	repo     reportStore
	userRepo userStore
	sms      sns.SMSSender
}

type ServiceDeps struct {
	ReportRepo reportStore
	UserRepo   userStore
	// SMSSender is optional. When nil, status changes are not announced.
	SMSSender sns.SMSSender
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.ReportRepo, userRepo: deps.UserRepo, sms: deps.SMSSender}
}

func (s *service) Create(ctx context.Context, userID, idempotencyKey string, req domain.CreateReportRequest) (*domain.Report, bool, error) {
	reportID := id.New()
	if idempotencyKey != "" {
		if !id.ValidKey(idempotencyKey) {
			return nil, false, fmt.Errorf("malformed idempotency key: %w", domain.ErrBadRequest)
		}
		reportID = idempotencyKey
	}
	now := time.Now().UTC()
	rep := &domain.Report{
		ReportID:  reportID,
		UserID:    userID,
		Title:     req.Title,
		Content:   req.Content,
		Status:    domain.ReportPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := s.repo.PutIfAbsent(ctx, rep)
	if err != nil {
		return nil, false, err
	}
	if created {
		return rep, true, nil
	}

	existing, err := s.repo.Get(ctx, reportID)
	if err != nil {
		return nil, false, err
	}
	if existing.UserID != userID {
		return nil, false, fmt.Errorf("idempotency key already used: %w", domain.ErrConflict)
	}
	slog.Info("duplicate report submission", "report_id", reportID, "user_id", userID)
	return existing, false, nil
}

func (s *service) ListForUser(ctx context.Context, userID string) ([]domain.Report, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListAll returns every report with its owner's name and file number attached.
// Owners that no longer exist are left nil.
func (s *service) ListAll(ctx context.Context) ([]domain.Report, error) {
	reports, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	owners := map[string]*domain.ReportOwner{}
	for i := range reports {
		uid := reports[i].UserID
		owner, seen := owners[uid]
		if !seen {
			if u, err := s.userRepo.Get(ctx, uid); err == nil {
				owner = &domain.ReportOwner{Name: u.Name, FileNumber: u.FileNumber}
			} else {
				slog.Warn("report owner lookup failed", "user_id", uid, "err", err)
			}
			owners[uid] = owner
		}
		reports[i].Owner = owner
	}
	return reports, nil
}

func (s *service) SetStatus(ctx context.Context, reportID string, status domain.ReportStatus) (*domain.Report, error) {
	if _, err := domain.ParseReportStatus(string(status)); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, reportID, status); err != nil {
		return nil, err
	}
	rep, err := s.repo.Get(ctx, reportID)
	if err != nil {
		return nil, err
	}
	s.announce(ctx, rep)
	return rep, nil
}

// announce texts the owner about a status change. Failures are logged only.
func (s *service) announce(ctx context.Context, rep *domain.Report) {
	if s.sms == nil {
		return
	}
	u, err := s.userRepo.Get(ctx, rep.UserID)
	if err != nil || u.Phone == "" {
		slog.Warn("report owner has no reachable phone", "report_id", rep.ReportID, "err", err)
		return
	}
	msg := fmt.Sprintf("تم تحديث حالة بلاغك \"%s\" إلى: %s", rep.Title, rep.Status.Label())
	if err := s.sms.SendSMS(ctx, u.Phone, msg); err != nil {
		slog.Warn("report status sms failed", "report_id", rep.ReportID, "err", err)
	}
}
