package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"beanvault/internal/domain"
)

// MockPriceListRepo is a mock implementation of port.PriceListRepository.
type MockPriceListRepo struct {
	mock.Mock
}

func (m *MockPriceListRepo) Create(ctx context.Context, pl *domain.PriceList) error {
	args := m.Called(ctx, pl)
	return args.Error(0)
}

func (m *MockPriceListRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PriceList, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceList), args.Error(1)
}

func (m *MockPriceListRepo) List(ctx context.Context, offset, limit int) ([]domain.PriceList, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.PriceList), args.Int(1), args.Error(2)
}

func (m *MockPriceListRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.PriceList, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PriceList), args.Error(1)
}

func (m *MockPriceListRepo) MarkCompleted(ctx context.Context, id uuid.UUID, modelUsed string, beanCount int) error {
	args := m.Called(ctx, id, modelUsed, beanCount)
	return args.Error(0)
}

func (m *MockPriceListRepo) MarkFailed(ctx context.Context, id uuid.UUID, parseError string, terminal bool) error {
	args := m.Called(ctx, id, parseError, terminal)
	return args.Error(0)
}
