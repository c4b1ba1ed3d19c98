package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"beanvault/internal/domain"
	"beanvault/internal/port"
)

const latestCacheTTL = time.Hour

// BeanListInput is the DTO for catalog listing requests.
type BeanListInput struct {
	Provider  string
	Country   string
	Type      string
	DataYear  int
	DataMonth int
	Page      int
	PageSize  int
}

// BeanListOutput is a page of catalog entries plus pagination metadata.
type BeanListOutput struct {
	Beans    []domain.CoffeeBean `json:"beans"`
	Total    int                 `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}

// BeanService defines the coffee bean catalog contract.
type BeanService interface {
	List(ctx context.Context, input BeanListInput) (*BeanListOutput, error)
	GetByKey(ctx context.Context, provider string, year, month int, code string) (*domain.CoffeeBean, error)
	PriceTrends(ctx context.Context, name string) ([]domain.PricePoint, error)
	// Latest resolves the most recent known period for a provider, cached
	// for an hour.
	Latest(ctx context.Context, provider string) (*domain.LatestData, error)
	LatestAll(ctx context.Context) ([]domain.LatestData, error)
	// InvalidateLatest drops a provider's cached period after new data lands.
	InvalidateLatest(provider string)
}

type beanService struct {
	beanRepo   port.BeanRepository
	latestRepo port.LatestDataRepository

	mu          sync.RWMutex
	latestCache map[string]cachedLatest
}

type cachedLatest struct {
	latest    domain.LatestData
	fetchedAt time.Time
}

// NewBeanService creates a new BeanService implementation.
func NewBeanService(beanRepo port.BeanRepository, latestRepo port.LatestDataRepository) BeanService {
	return &beanService{
		beanRepo:    beanRepo,
		latestRepo:  latestRepo,
		latestCache: make(map[string]cachedLatest),
	}
}

func (s *beanService) List(ctx context.Context, input BeanListInput) (*BeanListOutput, error) {
	page, pageSize := domain.NormalizePagination(input.Page, input.PageSize)

	filter := port.BeanFilter{
		Provider:  input.Provider,
		Country:   input.Country,
		Type:      input.Type,
		DataYear:  input.DataYear,
		DataMonth: input.DataMonth,
	}

	// A provider filter without a period means "that provider's latest month".
	if filter.Provider != "" && filter.DataYear == 0 {
		latest, err := s.Latest(ctx, filter.Provider)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		if latest != nil {
			filter.DataYear = latest.DataYear
			filter.DataMonth = latest.DataMonth
		}
	}

	beans, total, err := s.beanRepo.List(ctx, filter, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, fmt.Errorf("beanService.List: %w", err)
	}
	if beans == nil {
		beans = []domain.CoffeeBean{}
	}

	return &BeanListOutput{
		Beans:    beans,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *beanService) GetByKey(ctx context.Context, provider string, year, month int, code string) (*domain.CoffeeBean, error) {
	if year == 0 {
		latest, err := s.Latest(ctx, provider)
		if err != nil {
			return nil, err
		}
		year = latest.DataYear
		month = latest.DataMonth
	}
	return s.beanRepo.GetByKey(ctx, provider, year, month, code)
}

func (s *beanService) PriceTrends(ctx context.Context, name string) ([]domain.PricePoint, error) {
	points, err := s.beanRepo.PriceTrends(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("beanService.PriceTrends: %w", err)
	}
	return points, nil
}

func (s *beanService) Latest(ctx context.Context, provider string) (*domain.LatestData, error) {
	s.mu.RLock()
	cached, ok := s.latestCache[provider]
	s.mu.RUnlock()
	if ok && time.Since(cached.fetchedAt) < latestCacheTTL {
		latest := cached.latest
		return &latest, nil
	}

	latest, err := s.latestRepo.Get(ctx, provider)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.latestCache[provider] = cachedLatest{latest: *latest, fetchedAt: time.Now()}
	s.mu.Unlock()

	return latest, nil
}

func (s *beanService) LatestAll(ctx context.Context) ([]domain.LatestData, error) {
	all, err := s.latestRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("beanService.LatestAll: %w", err)
	}
	return all, nil
}

func (s *beanService) InvalidateLatest(provider string) {
	s.mu.Lock()
	delete(s.latestCache, provider)
	s.mu.Unlock()
}
