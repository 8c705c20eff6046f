// Package mocks provides testify mocks for the session use case layer.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/Felobateer/ECommerce-API/internal/auth/domain"
)

// MockRevocationRepository is a mock implementation of usecase.RevocationRepository.
type MockRevocationRepository struct {
	mock.Mock
}

func (m *MockRevocationRepository) Record(ctx context.Context, record *authDomain.RevocationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRevocationRepository) IsRevoked(ctx context.Context, tokenHash string, now time.Time) (bool, error) {
	args := m.Called(ctx, tokenHash, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockRevocationRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRevocationRepository) CountExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockSessionUseCase is a mock implementation of usecase.SessionUseCase.
type MockSessionUseCase struct {
	mock.Mock
}

func (m *MockSessionUseCase) Issue(ctx context.Context, subject uuid.UUID) (*authDomain.Token, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Token), args.Error(1)
}

func (m *MockSessionUseCase) Authorize(ctx context.Context, token string) (uuid.UUID, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockSessionUseCase) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockSessionUseCase) PurgeExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionUseCase) CountExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockLoginUseCase is a mock implementation of usecase.LoginUseCase.
type MockLoginUseCase struct {
	mock.Mock
}

func (m *MockLoginUseCase) Login(ctx context.Context, email, password string) (*authDomain.Token, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Token), args.Error(1)
}
