package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"beanvault/internal/domain"
	"beanvault/internal/port"
)

// MockBeanRepo is a mock implementation of port.BeanRepository.
type MockBeanRepo struct {
	mock.Mock
}

func (m *MockBeanRepo) ReplaceForPeriod(ctx context.Context, provider string, beanType domain.BeanType, year, month int, beans []domain.CoffeeBean) error {
	args := m.Called(ctx, provider, beanType, year, month, beans)
	return args.Error(0)
}

func (m *MockBeanRepo) List(ctx context.Context, filter port.BeanFilter, offset, limit int) ([]domain.CoffeeBean, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.CoffeeBean), args.Int(1), args.Error(2)
}

func (m *MockBeanRepo) GetByKey(ctx context.Context, provider string, year, month int, code string) (*domain.CoffeeBean, error) {
	args := m.Called(ctx, provider, year, month, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CoffeeBean), args.Error(1)
}

func (m *MockBeanRepo) PriceTrends(ctx context.Context, name string) ([]domain.PricePoint, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PricePoint), args.Error(1)
}

func (m *MockBeanRepo) ListProfiles(ctx context.Context, provider string, year, month int) ([]port.FlavorProfile, error) {
	args := m.Called(ctx, provider, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.FlavorProfile), args.Error(1)
}

func (m *MockBeanRepo) UpdateFlavorCategories(ctx context.Context, provider string, year, month int, categories map[string]string) (int, error) {
	args := m.Called(ctx, provider, year, month, categories)
	return args.Int(0), args.Error(1)
}

func (m *MockBeanRepo) ListAll(ctx context.Context) ([]domain.CoffeeBean, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CoffeeBean), args.Error(1)
}
