package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"beanvault/internal/domain"
	"beanvault/internal/service"
)

// MockBeanService is a mock implementation of service.BeanService.
type MockBeanService struct {
	mock.Mock
}

func (m *MockBeanService) List(ctx context.Context, input service.BeanListInput) (*service.BeanListOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BeanListOutput), args.Error(1)
}

func (m *MockBeanService) GetByKey(ctx context.Context, provider string, year, month int, code string) (*domain.CoffeeBean, error) {
	args := m.Called(ctx, provider, year, month, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CoffeeBean), args.Error(1)
}

func (m *MockBeanService) PriceTrends(ctx context.Context, name string) ([]domain.PricePoint, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PricePoint), args.Error(1)
}

func (m *MockBeanService) Latest(ctx context.Context, provider string) (*domain.LatestData, error) {
	args := m.Called(ctx, provider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LatestData), args.Error(1)
}

func (m *MockBeanService) LatestAll(ctx context.Context) ([]domain.LatestData, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LatestData), args.Error(1)
}

func (m *MockBeanService) InvalidateLatest(provider string) {
	m.Called(provider)
}

// MockIngestService is a mock implementation of service.IngestService.
type MockIngestService struct {
	mock.Mock
}

func (m *MockIngestService) Upload(ctx context.Context, input service.UploadPriceListInput) (*domain.PriceList, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceList), args.Error(1)
}

func (m *MockIngestService) GetPriceList(ctx context.Context, id uuid.UUID) (*domain.PriceList, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceList), args.Error(1)
}

func (m *MockIngestService) ListPriceLists(ctx context.Context, page, pageSize int) ([]domain.PriceList, int, int, int, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Int(2), args.Int(3), args.Error(4)
	}
	return args.Get(0).([]domain.PriceList), args.Int(1), args.Int(2), args.Int(3), args.Error(4)
}

func (m *MockIngestService) ParsePriceList(ctx context.Context, pl *domain.PriceList, maxAttempts int) {
	m.Called(ctx, pl, maxAttempts)
}

func (m *MockIngestService) IngestText(ctx context.Context, provider string, beanType domain.BeanType, year, month int, text string, pageCount int) (*service.IngestResult, error) {
	args := m.Called(ctx, provider, beanType, year, month, text, pageCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.IngestResult), args.Error(1)
}

// MockFlavorService is a mock implementation of service.FlavorService.
type MockFlavorService struct {
	mock.Mock
}

func (m *MockFlavorService) CategorizeProvider(ctx context.Context, provider string, year, month int) (*service.FlavorResult, error) {
	args := m.Called(ctx, provider, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FlavorResult), args.Error(1)
}

// MockAgentService is a mock implementation of service.AgentService.
type MockAgentService struct {
	mock.Mock
}

func (m *MockAgentService) Ask(ctx context.Context, question string) (*service.AgentAnswer, error) {
	args := m.Called(ctx, question)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AgentAnswer), args.Error(1)
}

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(input service.LoginInput) (*service.Token, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Token), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}
