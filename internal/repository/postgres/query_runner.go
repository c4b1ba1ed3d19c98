package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"beanvault/internal/domain"
	"beanvault/internal/port"
)

type queryRunner struct {
	db *sqlx.DB
}

// NewQueryRunner creates a read-only SQL executor for the query agent.
func NewQueryRunner(db *sqlx.DB) port.QueryRunner {
	return &queryRunner{db: db}
}

// RunSelect executes a single SELECT statement and returns at most maxRows
// rows. Anything that is not a plain SELECT is rejected before touching the
// database.
func (r *queryRunner) RunSelect(ctx context.Context, query string, maxRows int) (*port.QueryResult, error) {
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(query), ";"))
	if !strings.HasPrefix(strings.ToUpper(trimmed), "SELECT") {
		return nil, domain.ErrQueryNotSelect
	}
	if strings.Contains(trimmed, ";") {
		return nil, domain.ErrQueryNotSelect
	}

	rows, err := r.db.QueryxContext(ctx, trimmed)
	if err != nil {
		return nil, fmt.Errorf("queryRunner.RunSelect: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("queryRunner.RunSelect columns: %w", err)
	}

	result := &port.QueryResult{Columns: columns, Rows: []map[string]interface{}{}}
	for rows.Next() {
		if maxRows > 0 && len(result.Rows) >= maxRows {
			break
		}
		row := map[string]interface{}{}
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("queryRunner.RunSelect scan: %w", err)
		}
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("queryRunner.RunSelect rows: %w", err)
	}

	result.Count = len(result.Rows)
	return result, nil
}
