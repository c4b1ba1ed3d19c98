package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"beanvault/internal/domain"
	"beanvault/internal/port"
)

// AgentAnswer is the result of one natural language query.
type AgentAnswer struct {
	SQL     string                   `json:"sql"`
	Columns []string                 `json:"columns"`
	Rows    []map[string]interface{} `json:"rows"`
	Count   int                      `json:"count"`
}

// AgentService answers natural language questions about the catalog with
// model-generated SQL.
type AgentService interface {
	Ask(ctx context.Context, question string) (*AgentAnswer, error)
}

type agentService struct {
	generator port.QueryGenerator
	runner    port.QueryRunner
	maxRows   int
}

// NewAgentService creates a new AgentService implementation.
func NewAgentService(generator port.QueryGenerator, runner port.QueryRunner, maxRows int) AgentService {
	return &agentService{
		generator: generator,
		runner:    runner,
		maxRows:   maxRows,
	}
}

func (s *agentService) Ask(ctx context.Context, question string) (*AgentAnswer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("agentService.Ask: empty question")
	}

	query, err := s.generator.GenerateQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("agentService.Ask: %w", err)
	}

	if !isSelect(query) {
		log.Printf("agentService: rejected non-SELECT query: %.120s", query)
		return nil, domain.ErrQueryNotSelect
	}

	result, err := s.runner.RunSelect(ctx, query, s.maxRows)
	if err != nil {
		return nil, fmt.Errorf("agentService.Ask: %w", err)
	}

	return &AgentAnswer{
		SQL:     query,
		Columns: result.Columns,
		Rows:    result.Rows,
		Count:   result.Count,
	}, nil
}

// isSelect accepts exactly one plain SELECT statement.
func isSelect(query string) bool {
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(query), ";"))
	if trimmed == "" {
		return false
	}
	if !strings.HasPrefix(strings.ToUpper(trimmed), "SELECT") {
		return false
	}
	return !strings.Contains(trimmed, ";")
}
