package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"beanvault/internal/domain"
	"beanvault/internal/port"
)

type priceListRepo struct {
	db *sqlx.DB
}

// NewPriceListRepo creates a new PostgreSQL-backed PriceListRepository.
func NewPriceListRepo(db *sqlx.DB) port.PriceListRepository {
	return &priceListRepo{db: db}
}

func (r *priceListRepo) Create(ctx context.Context, pl *domain.PriceList) error {
	now := time.Now().UTC()
	pl.CreatedAt = now
	pl.UpdatedAt = now
	if pl.Status == "" {
		pl.Status = domain.ParseStatusQueued
	}

	_, err := r.db.NamedExecContext(ctx, `INSERT INTO price_lists (
		id, provider, bean_type, data_year, data_month,
		file_name, content_type, size_bytes, s3_bucket, s3_key, page_count,
		status, parse_attempts, parse_error, model_used, bean_count,
		parsed_at, created_at, updated_at
	) VALUES (
		:id, :provider, :bean_type, :data_year, :data_month,
		:file_name, :content_type, :size_bytes, :s3_bucket, :s3_key, :page_count,
		:status, :parse_attempts, :parse_error, :model_used, :bean_count,
		:parsed_at, :created_at, :updated_at
	)`, pl)
	if err != nil {
		return fmt.Errorf("priceListRepo.Create: %w", err)
	}
	return nil
}

func (r *priceListRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PriceList, error) {
	var pl domain.PriceList
	err := r.db.GetContext(ctx, &pl, "SELECT * FROM price_lists WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("priceListRepo.GetByID: %w", err)
	}
	return &pl, nil
}

func (r *priceListRepo) List(ctx context.Context, offset, limit int) ([]domain.PriceList, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM price_lists")
	if err != nil {
		return nil, 0, fmt.Errorf("priceListRepo.List count: %w", err)
	}

	var lists []domain.PriceList
	err = r.db.SelectContext(ctx, &lists,
		"SELECT * FROM price_lists ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("priceListRepo.List: %w", err)
	}
	return lists, total, nil
}

// ClaimQueued atomically moves up to limit queued rows to processing. SKIP
// LOCKED keeps concurrent workers from claiming the same row.
func (r *priceListRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.PriceList, error) {
	var lists []domain.PriceList
	err := r.db.SelectContext(ctx, &lists,
		`UPDATE price_lists SET
			status = $1, parse_attempts = parse_attempts + 1, updated_at = NOW()
		 WHERE id IN (
			SELECT id FROM price_lists WHERE status = $2
			ORDER BY created_at LIMIT $3
			FOR UPDATE SKIP LOCKED
		 )
		 RETURNING *`,
		domain.ParseStatusProcessing, domain.ParseStatusQueued, limit)
	if err != nil {
		return nil, fmt.Errorf("priceListRepo.ClaimQueued: %w", err)
	}
	return lists, nil
}

func (r *priceListRepo) MarkCompleted(ctx context.Context, id uuid.UUID, modelUsed string, beanCount int) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE price_lists SET
			status = $1, parse_error = '', model_used = $2, bean_count = $3,
			parsed_at = $4, updated_at = $4
		 WHERE id = $5`,
		domain.ParseStatusCompleted, modelUsed, beanCount, now, id)
	if err != nil {
		return fmt.Errorf("priceListRepo.MarkCompleted: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkFailed records a parse error. Non-terminal failures go back to queued
// for another attempt; terminal ones stay failed.
func (r *priceListRepo) MarkFailed(ctx context.Context, id uuid.UUID, parseError string, terminal bool) error {
	status := domain.ParseStatusQueued
	if terminal {
		status = domain.ParseStatusFailed
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE price_lists SET status = $1, parse_error = $2, updated_at = NOW()
		 WHERE id = $3`,
		status, parseError, id)
	if err != nil {
		return fmt.Errorf("priceListRepo.MarkFailed: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
