package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"beanvault/internal/domain"
	"beanvault/internal/port"
)

type beanRepo struct {
	db *sqlx.DB
}

// NewBeanRepo creates a new PostgreSQL-backed BeanRepository.
func NewBeanRepo(db *sqlx.DB) port.BeanRepository {
	return &beanRepo{db: db}
}

func (r *beanRepo) ReplaceForPeriod(ctx context.Context, provider string, beanType domain.BeanType, year, month int, beans []domain.CoffeeBean) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beanRepo.ReplaceForPeriod begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		"DELETE FROM coffee_beans WHERE provider = $1 AND type = $2 AND data_year = $3 AND data_month = $4",
		provider, beanType, year, month)
	if err != nil {
		return fmt.Errorf("beanRepo.ReplaceForPeriod delete: %w", err)
	}

	now := time.Now().UTC()
	for i := range beans {
		b := &beans[i]
		if b.ID == uuid.Nil {
			b.ID = uuid.New()
		}
		b.Provider = provider
		b.Type = beanType
		b.DataYear = year
		b.DataMonth = month
		b.CreatedAt = now
		b.UpdatedAt = now

		_, err = tx.NamedExecContext(ctx, `INSERT INTO coffee_beans (
			id, price_list_id, provider, data_year, data_month,
			type, code, name, country, flavor_profile, flavor_category,
			price_per_kg, price_per_pkg, sold_out,
			origin, plot, estate, grade, humidity, altitude, density,
			processing_method, harvest_season, variety,
			created_at, updated_at
		) VALUES (
			:id, :price_list_id, :provider, :data_year, :data_month,
			:type, :code, :name, :country, :flavor_profile, :flavor_category,
			:price_per_kg, :price_per_pkg, :sold_out,
			:origin, :plot, :estate, :grade, :humidity, :altitude, :density,
			:processing_method, :harvest_season, :variety,
			:created_at, :updated_at
		)`, b)
		if err != nil {
			return fmt.Errorf("beanRepo.ReplaceForPeriod insert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("beanRepo.ReplaceForPeriod commit: %w", err)
	}
	return nil
}

func (r *beanRepo) List(ctx context.Context, filter port.BeanFilter, offset, limit int) ([]domain.CoffeeBean, int, error) {
	where, args := buildBeanFilter(filter)

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM coffee_beans"+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("beanRepo.List count: %w", err)
	}

	args = append(args, limit, offset)
	var beans []domain.CoffeeBean
	err = r.db.SelectContext(ctx, &beans,
		fmt.Sprintf(`SELECT * FROM coffee_beans%s
		 ORDER BY type, code LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("beanRepo.List: %w", err)
	}
	return beans, total, nil
}

func buildBeanFilter(filter port.BeanFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	add := func(cond string, val interface{}) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Provider != "" {
		add("provider = $%d", filter.Provider)
	}
	if filter.Country != "" {
		add("country = $%d", filter.Country)
	}
	if filter.Type != "" {
		add("type = $%d", filter.Type)
	}
	if filter.DataYear != 0 {
		add("data_year = $%d", filter.DataYear)
	}
	if filter.DataMonth != 0 {
		add("data_month = $%d", filter.DataMonth)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *beanRepo) GetByKey(ctx context.Context, provider string, year, month int, code string) (*domain.CoffeeBean, error) {
	var bean domain.CoffeeBean
	err := r.db.GetContext(ctx, &bean,
		`SELECT * FROM coffee_beans
		 WHERE provider = $1 AND data_year = $2 AND data_month = $3 AND code = $4`,
		provider, year, month, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("beanRepo.GetByKey: %w", err)
	}
	return &bean, nil
}

func (r *beanRepo) PriceTrends(ctx context.Context, name string) ([]domain.PricePoint, error) {
	var points []domain.PricePoint
	err := r.db.SelectContext(ctx, &points,
		`SELECT name, data_year, data_month, price_per_kg FROM coffee_beans
		 WHERE name ILIKE '%' || $1 || '%' AND price_per_kg IS NOT NULL
		 ORDER BY name, data_year, data_month`,
		name)
	if err != nil {
		return nil, fmt.Errorf("beanRepo.PriceTrends: %w", err)
	}
	return points, nil
}

func (r *beanRepo) ListProfiles(ctx context.Context, provider string, year, month int) ([]port.FlavorProfile, error) {
	var profiles []port.FlavorProfile
	err := r.db.SelectContext(ctx, &profiles,
		`SELECT code, flavor_profile FROM coffee_beans
		 WHERE provider = $1 AND data_year = $2 AND data_month = $3
		   AND flavor_profile <> '' AND flavor_category = ''
		 ORDER BY code`,
		provider, year, month)
	if err != nil {
		return nil, fmt.Errorf("beanRepo.ListProfiles: %w", err)
	}
	return profiles, nil
}

func (r *beanRepo) UpdateFlavorCategories(ctx context.Context, provider string, year, month int, categories map[string]string) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beanRepo.UpdateFlavorCategories begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	updated := 0
	now := time.Now().UTC()
	for code, category := range categories {
		result, err := tx.ExecContext(ctx,
			`UPDATE coffee_beans SET flavor_category = $1, updated_at = $2
			 WHERE provider = $3 AND data_year = $4 AND data_month = $5 AND code = $6`,
			category, now, provider, year, month, code)
		if err != nil {
			return 0, fmt.Errorf("beanRepo.UpdateFlavorCategories: %w", err)
		}
		rows, _ := result.RowsAffected()
		updated += int(rows)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("beanRepo.UpdateFlavorCategories commit: %w", err)
	}
	return updated, nil
}

func (r *beanRepo) ListAll(ctx context.Context) ([]domain.CoffeeBean, error) {
	var beans []domain.CoffeeBean
	err := r.db.SelectContext(ctx, &beans,
		"SELECT * FROM coffee_beans ORDER BY provider, data_year, data_month, type, code")
	if err != nil {
		return nil, fmt.Errorf("beanRepo.ListAll: %w", err)
	}
	return beans, nil
}
