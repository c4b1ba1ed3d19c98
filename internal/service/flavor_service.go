package service

import (
	"context"
	"fmt"
	"log"

	"beanvault/internal/parser"
	"beanvault/internal/port"
)

// FlavorResult summarizes one categorization run.
type FlavorResult struct {
	Profiles   int `json:"profiles"`
	Categories int `json:"categories"`
	Updated    int `json:"updated"`
}

// FlavorService maps detailed flavor profiles onto the simplified categories.
type FlavorService interface {
	CategorizeProvider(ctx context.Context, provider string, year, month int) (*FlavorResult, error)
}

type flavorService struct {
	beanRepo    port.BeanRepository
	categorizer port.FlavorCategorizer
	categories  []port.FlavorCategory
}

// NewFlavorService creates a new FlavorService using the default categories.
func NewFlavorService(beanRepo port.BeanRepository, categorizer port.FlavorCategorizer) FlavorService {
	return &flavorService{
		beanRepo:    beanRepo,
		categorizer: categorizer,
		categories:  parser.DefaultFlavorCategories,
	}
}

// CategorizeProvider categorizes every still-uncategorized bean of one
// provider month and writes the categories back.
func (s *flavorService) CategorizeProvider(ctx context.Context, provider string, year, month int) (*FlavorResult, error) {
	profiles, err := s.beanRepo.ListProfiles(ctx, provider, year, month)
	if err != nil {
		return nil, fmt.Errorf("flavorService.CategorizeProvider: %w", err)
	}
	if len(profiles) == 0 {
		return &FlavorResult{}, nil
	}

	assignments, err := s.categorizer.Categorize(ctx, profiles, s.categories)
	if err != nil {
		return nil, fmt.Errorf("flavorService.CategorizeProvider: %w", err)
	}

	byCode := make(map[string]string, len(assignments))
	for _, a := range assignments {
		if a.Code == "" {
			continue
		}
		category := a.FlavorCategory
		if category == "" {
			category = parser.UncategorizedFlavor
		}
		byCode[a.Code] = category
	}
	if len(byCode) == 0 {
		return nil, fmt.Errorf("flavorService.CategorizeProvider: model returned no usable assignments")
	}

	updated, err := s.beanRepo.UpdateFlavorCategories(ctx, provider, year, month, byCode)
	if err != nil {
		return nil, fmt.Errorf("flavorService.CategorizeProvider: %w", err)
	}

	log.Printf("flavorService: categorized %d/%d beans for %s %d-%02d",
		updated, len(profiles), provider, year, month)

	return &FlavorResult{
		Profiles:   len(profiles),
		Categories: len(byCode),
		Updated:    updated,
	}, nil
}
