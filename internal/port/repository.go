package port

import (
	"context"

	"github.com/google/uuid"

	"beanvault/internal/domain"
)

// BeanFilter narrows catalog listings.
type BeanFilter struct {
	Provider string
	Country  string
	Type     string
	// Period restricts results to one provider month; zero values mean all.
	DataYear  int
	DataMonth int
}

// BeanRepository defines the contract for coffee bean persistence.
type BeanRepository interface {
	// ReplaceForPeriod atomically swaps one tier's beans for one provider month.
	ReplaceForPeriod(ctx context.Context, provider string, beanType domain.BeanType, year, month int, beans []domain.CoffeeBean) error
	List(ctx context.Context, filter BeanFilter, offset, limit int) ([]domain.CoffeeBean, int, error)
	GetByKey(ctx context.Context, provider string, year, month int, code string) (*domain.CoffeeBean, error)
	PriceTrends(ctx context.Context, name string) ([]domain.PricePoint, error)
	ListProfiles(ctx context.Context, provider string, year, month int) ([]FlavorProfile, error)
	UpdateFlavorCategories(ctx context.Context, provider string, year, month int, categories map[string]string) (int, error)
	ListAll(ctx context.Context) ([]domain.CoffeeBean, error)
}

// PriceListRepository defines the contract for price list queue persistence.
type PriceListRepository interface {
	Create(ctx context.Context, pl *domain.PriceList) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PriceList, error)
	List(ctx context.Context, offset, limit int) ([]domain.PriceList, int, error)
	// ClaimQueued marks up to limit queued price lists as processing and
	// returns them, incrementing their attempt counters.
	ClaimQueued(ctx context.Context, limit int) ([]domain.PriceList, error)
	MarkCompleted(ctx context.Context, id uuid.UUID, modelUsed string, beanCount int) error
	MarkFailed(ctx context.Context, id uuid.UUID, parseError string, terminal bool) error
}

// LatestDataRepository defines the contract for per-provider latest period tracking.
type LatestDataRepository interface {
	Get(ctx context.Context, provider string) (*domain.LatestData, error)
	// Upsert records the period if it is newer than the stored one.
	Upsert(ctx context.Context, provider string, year, month int) error
	List(ctx context.Context) ([]domain.LatestData, error)
}

// QueryResult is the outcome of an agent-generated SELECT.
type QueryResult struct {
	Columns []string                 `json:"columns"`
	Rows    []map[string]interface{} `json:"rows"`
	Count   int                      `json:"count"`
}

// QueryRunner executes read-only SQL on behalf of the query agent.
type QueryRunner interface {
	RunSelect(ctx context.Context, query string, maxRows int) (*QueryResult, error)
}
