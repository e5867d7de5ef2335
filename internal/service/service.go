package service

import (
	"context"

	"cro-sprint-backend/internal/domain"
)

// AuthService is the authentication collaborator behind the dashboard
type AuthService interface {
	SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error)
	SignUp(ctx context.Context, email, password string, opts domain.SignUpOptions) (*domain.User, error)
	GetUser(ctx context.Context, accessToken string) (*domain.User, error)
	ConfirmSignup(ctx context.Context, token string) (*domain.User, error)
}

// RecordStore is the record-store collaborator: rows are inserted by table name
type RecordStore interface {
	Insert(ctx context.Context, table string, row domain.Row) error
}

type EmailService interface {
	SendSignupConfirmation(ctx context.Context, email, name, confirmURL string) error
}
