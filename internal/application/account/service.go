package account

import (
	"context"
	"fmt"

	"github.com/staff-portal/internal/domain"
	"github.com/staff-portal/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

type Service interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	ChangePhone(ctx context.Context, userID, phone string) (*domain.User, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	SetPasswordHash(ctx context.Context, userID, hash string) error
	SetPhone(ctx context.Context, userID, phone string) error
}

type service struct {
	repo userStore
}

func NewService(repo userStore) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.Get(ctx, userID)
}

// ChangePassword re-verifies the current password against the stored hash
// before writing the new one.
func (s *service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters: %w", minPasswordLen, domain.ErrBadRequest)
	}
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect: %w", domain.ErrAuthMismatch)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.SetPasswordHash(ctx, userID, string(hash))
}

func (s *service) ChangePhone(ctx context.Context, userID, phone string) (*domain.User, error) {
	if !validate.Phone(phone) {
		return nil, fmt.Errorf("phone must be an Egyptian mobile number: %w", domain.ErrBadRequest)
	}
	if err := s.repo.SetPhone(ctx, userID, phone); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID)
}
