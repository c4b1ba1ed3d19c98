package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"beanvault/internal/domain"
	"beanvault/internal/port"
)

type latestDataRepo struct {
	db *sqlx.DB
}

// NewLatestDataRepo creates a new PostgreSQL-backed LatestDataRepository.
func NewLatestDataRepo(db *sqlx.DB) port.LatestDataRepository {
	return &latestDataRepo{db: db}
}

func (r *latestDataRepo) Get(ctx context.Context, provider string) (*domain.LatestData, error) {
	var latest domain.LatestData
	err := r.db.GetContext(ctx, &latest,
		"SELECT * FROM latest_data WHERE provider = $1", provider)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("latestDataRepo.Get: %w", err)
	}
	return &latest, nil
}

// Upsert records the period for a provider, only ever moving it forward.
func (r *latestDataRepo) Upsert(ctx context.Context, provider string, year, month int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO latest_data (provider, data_year, data_month, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (provider) DO UPDATE
		 SET data_year = EXCLUDED.data_year, data_month = EXCLUDED.data_month, updated_at = NOW()
		 WHERE (EXCLUDED.data_year, EXCLUDED.data_month) > (latest_data.data_year, latest_data.data_month)`,
		provider, year, month)
	if err != nil {
		return fmt.Errorf("latestDataRepo.Upsert: %w", err)
	}
	return nil
}

func (r *latestDataRepo) List(ctx context.Context) ([]domain.LatestData, error) {
	var all []domain.LatestData
	err := r.db.SelectContext(ctx, &all,
		"SELECT * FROM latest_data ORDER BY provider")
	if err != nil {
		return nil, fmt.Errorf("latestDataRepo.List: %w", err)
	}
	return all, nil
}
