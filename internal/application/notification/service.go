package notification

import (
	"context"
	"time"

	"github.com/staff-portal/internal/domain"
	"github.com/staff-portal/internal/pkg/id"
)

type Service interface {
	List(ctx context.Context) ([]domain.Notification, error)
	Get(ctx context.Context, notificationID string) (*domain.Notification, error)
	Create(ctx context.Context, in domain.NotificationInput) (*domain.Notification, error)
	Update(ctx context.Context, notificationID string, in domain.NotificationInput) (*domain.Notification, error)
	Delete(ctx context.Context, notificationID string) error
}

type notificationStore interface {
	ListFeed(ctx context.Context) ([]domain.Notification, error)
	Get(ctx context.Context, notificationID string) (*domain.Notification, error)
	Put(ctx context.Context, n *domain.Notification) error
	Update(ctx context.Context, notificationID string, in domain.NotificationInput) error
	Delete(ctx context.Context, notificationID string) error
}

type service struct {
	repo notificationStore
}

func NewService(repo notificationStore) Service {
	return &service{repo: repo}
}

// List returns every notification, newest first.
func (s *service) List(ctx context.Context) ([]domain.Notification, error) {
	return s.repo.ListFeed(ctx)
}

func (s *service) Get(ctx context.Context, notificationID string) (*domain.Notification, error) {
	return s.repo.Get(ctx, notificationID)
}

func (s *service) Create(ctx context.Context, in domain.NotificationInput) (*domain.Notification, error) {
	cat, err := domain.ParseCategory(in.Type)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	n := &domain.Notification{
		NotificationID: id.New(),
		Title:          in.Title,
		Content:        in.Content,
		Type:           cat,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Put(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *service) Update(ctx context.Context, notificationID string, in domain.NotificationInput) (*domain.Notification, error) {
	if _, err := domain.ParseCategory(in.Type); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, notificationID, in); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, notificationID)
}

func (s *service) Delete(ctx context.Context, notificationID string) error {
	return s.repo.Delete(ctx, notificationID)
}
