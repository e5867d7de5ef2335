package repository

import (
	"context"
	"errors"
	"time"

	"cro-sprint-backend/internal/domain"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Confirm(ctx context.Context, token string, at time.Time) (*domain.User, error)
	SetConfirmationToken(ctx context.Context, id, token string) error
	DeleteUnconfirmedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
}

type AnalyticsEventRepository interface {
	Create(ctx context.Context, event *domain.AnalyticsEvent) error
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
