package record

import (
	"context"
	"fmt"

	"github.com/staff-portal/internal/domain"
	s3infra "github.com/staff-portal/internal/infrastructure/s3"
)

type Service interface {
	ListPayroll(ctx context.Context, fileNumber string) ([]domain.PayrollRecord, error)
	ListExpenses(ctx context.Context, fileNumber string) ([]domain.ExpenseRecord, error)
	ListPerformance(ctx context.Context, fileNumber string) ([]domain.PerformanceRecord, error)
	// PayrollStatement archives the rendered payslip and returns a time-limited link to it.
	PayrollStatement(ctx context.Context, fileNumber, recordID string) (string, error)
}

type recordStore interface {
	ListPayroll(ctx context.Context, fileNumber string) ([]domain.PayrollRecord, error)
	GetPayroll(ctx context.Context, recordID string) (*domain.PayrollRecord, error)
	ListExpenses(ctx context.Context, fileNumber string) ([]domain.ExpenseRecord, error)
	ListPerformance(ctx context.Context, fileNumber string) ([]domain.PerformanceRecord, error)
}

type statementStore interface {
	PutStatement(ctx context.Context, key string, body []byte) (string, error)
}

// StatementRenderer turns one payroll record into a standalone HTML document.
type StatementRenderer func(p *domain.PayrollRecord) ([]byte, error)

type service struct {
	repo       recordStore
	statements statementStore
	render     StatementRenderer
}

type ServiceDeps struct {
	RecordRepo recordStore
	Statements statementStore
	Render     StatementRenderer
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.RecordRepo, statements: deps.Statements, render: deps.Render}
}

func (s *service) ListPayroll(ctx context.Context, fileNumber string) ([]domain.PayrollRecord, error) {
	return s.repo.ListPayroll(ctx, fileNumber)
}

func (s *service) ListExpenses(ctx context.Context, fileNumber string) ([]domain.ExpenseRecord, error) {
	return s.repo.ListExpenses(ctx, fileNumber)
}

func (s *service) ListPerformance(ctx context.Context, fileNumber string) ([]domain.PerformanceRecord, error) {
	return s.repo.ListPerformance(ctx, fileNumber)
}

func (s *service) PayrollStatement(ctx context.Context, fileNumber, recordID string) (string, error) {
	if s.statements == nil || s.render == nil {
		return "", fmt.Errorf("statement archive not configured: %w", domain.ErrNotFound)
	}
	p, err := s.repo.GetPayroll(ctx, recordID)
	if err != nil {
		return "", err
	}
	// A record belonging to someone else is reported as missing.
	if p.FileNumber != fileNumber {
		return "", fmt.Errorf("payroll record not found: %w", domain.ErrNotFound)
	}
	body, err := s.render(p)
	if err != nil {
		return "", fmt.Errorf("render statement: %w", err)
	}
	return s.statements.PutStatement(ctx, s3infra.StatementKey(fileNumber, recordID), body)
}
