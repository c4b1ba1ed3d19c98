package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"beanvault/internal/port"
)

// MockPriceListParser is a mock implementation of port.PriceListParser.
type MockPriceListParser struct {
	mock.Mock
}

func (m *MockPriceListParser) Parse(ctx context.Context, input port.ParseInput) (*port.ParseOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.ParseOutput), args.Error(1)
}

// MockFlavorCategorizer is a mock implementation of port.FlavorCategorizer.
type MockFlavorCategorizer struct {
	mock.Mock
}

func (m *MockFlavorCategorizer) Categorize(ctx context.Context, profiles []port.FlavorProfile, categories []port.FlavorCategory) ([]port.FlavorAssignment, error) {
	args := m.Called(ctx, profiles, categories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.FlavorAssignment), args.Error(1)
}

// MockQueryGenerator is a mock implementation of port.QueryGenerator.
type MockQueryGenerator struct {
	mock.Mock
}

func (m *MockQueryGenerator) GenerateQuery(ctx context.Context, question string) (string, error) {
	args := m.Called(ctx, question)
	return args.String(0), args.Error(1)
}

// MockQueryRunner is a mock implementation of port.QueryRunner.
type MockQueryRunner struct {
	mock.Mock
}

func (m *MockQueryRunner) RunSelect(ctx context.Context, query string, maxRows int) (*port.QueryResult, error) {
	args := m.Called(ctx, query, maxRows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.QueryResult), args.Error(1)
}
