package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"beanvault/internal/domain"
	"beanvault/internal/port"
	"beanvault/internal/service"
	"beanvault/mocks"
)

func newAgentService() (*mocks.MockQueryGenerator, *mocks.MockQueryRunner, service.AgentService) {
	generator := new(mocks.MockQueryGenerator)
	runner := new(mocks.MockQueryRunner)
	return generator, runner, service.NewAgentService(generator, runner, 100)
}

func TestAgentService_Ask(t *testing.T) {
	generator, runner, svc := newAgentService()

	query := "SELECT name, price_per_kg FROM coffee_beans WHERE country ILIKE '%ethiopia%'"
	generator.On("GenerateQuery", mock.Anything, "cheapest Ethiopian beans?").Return(query, nil)
	runner.On("RunSelect", mock.Anything, query, 100).
		Return(&port.QueryResult{
			Columns: []string{"name", "price_per_kg"},
			Rows:    []map[string]interface{}{{"name": "Yirgacheffe", "price_per_kg": 84.0}},
			Count:   1,
		}, nil)

	answer, err := svc.Ask(context.Background(), "cheapest Ethiopian beans?")
	require.NoError(t, err)
	assert.Equal(t, query, answer.SQL)
	assert.Equal(t, 1, answer.Count)
	assert.Equal(t, []string{"name", "price_per_kg"}, answer.Columns)
}

func TestAgentService_Ask_EmptyQuestion(t *testing.T) {
	generator, _, svc := newAgentService()

	_, err := svc.Ask(context.Background(), "   ")
	require.Error(t, err)
	generator.AssertNotCalled(t, "GenerateQuery", mock.Anything, mock.Anything)
}

func TestAgentService_Ask_RejectsNonSelect(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"update", "UPDATE coffee_beans SET price_per_kg = 0"},
		{"delete", "DELETE FROM coffee_beans"},
		{"stacked statements", "SELECT 1; DROP TABLE coffee_beans"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator, runner, svc := newAgentService()
			generator.On("GenerateQuery", mock.Anything, "question").Return(tt.query, nil)

			_, err := svc.Ask(context.Background(), "question")
			require.ErrorIs(t, err, domain.ErrQueryNotSelect)
			runner.AssertNotCalled(t, "RunSelect", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAgentService_Ask_AcceptsTrailingSemicolon(t *testing.T) {
	generator, runner, svc := newAgentService()

	generator.On("GenerateQuery", mock.Anything, "question").
		Return("SELECT name FROM coffee_beans;", nil)
	runner.On("RunSelect", mock.Anything, "SELECT name FROM coffee_beans;", 100).
		Return(&port.QueryResult{Columns: []string{"name"}, Rows: nil, Count: 0}, nil)

	_, err := svc.Ask(context.Background(), "question")
	require.NoError(t, err)
}

func TestAgentService_Ask_GeneratorError(t *testing.T) {
	generator, _, svc := newAgentService()

	generator.On("GenerateQuery", mock.Anything, "question").
		Return("", errors.New("model unavailable"))

	_, err := svc.Ask(context.Background(), "question")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model unavailable")
}
