package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"beanvault/internal/domain"
)

// MockLatestDataRepo is a mock implementation of port.LatestDataRepository.
type MockLatestDataRepo struct {
	mock.Mock
}

func (m *MockLatestDataRepo) Get(ctx context.Context, provider string) (*domain.LatestData, error) {
	args := m.Called(ctx, provider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LatestData), args.Error(1)
}

func (m *MockLatestDataRepo) Upsert(ctx context.Context, provider string, year, month int) error {
	args := m.Called(ctx, provider, year, month)
	return args.Error(0)
}

func (m *MockLatestDataRepo) List(ctx context.Context) ([]domain.LatestData, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LatestData), args.Error(1)
}
