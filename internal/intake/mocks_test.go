package intake

import (
	"context"

	"cro-sprint-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockAuthenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) SignInWithPassword(ctx context.Context, email, password string) error {
	args := m.Called(ctx, email, password)
	return args.Error(0)
}
func (m *MockAuthenticator) SignUp(ctx context.Context, email, password string, opts domain.SignUpOptions) error {
	args := m.Called(ctx, email, password, opts)
	return args.Error(0)
}
func (m *MockAuthenticator) GetUser(ctx context.Context) (*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockRecordStore
type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) Insert(ctx context.Context, table string, row domain.Row) error {
	args := m.Called(ctx, table, row)
	return args.Error(0)
}
