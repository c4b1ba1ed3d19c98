package port

import (
	"context"

	"beanvault/internal/extract"
)

// ParseInput carries the data needed to parse one price list.
type ParseInput struct {
	Text      string
	PageCount int
}

// ParseOutput contains the structured result from an LLM price list parse.
type ParseOutput struct {
	Pages      []extract.Page
	ModelUsed  string
	PromptUsed string
	Diagnostic extract.Diagnostic
}

// PriceListParser abstracts LLM-based price list parsing.
type PriceListParser interface {
	Parse(ctx context.Context, input ParseInput) (*ParseOutput, error)
}

// FlavorProfile pairs a bean code with its detailed flavor description.
type FlavorProfile struct {
	Code          string `db:"code" json:"code"`
	FlavorProfile string `db:"flavor_profile" json:"flavor_profile"`
}

// FlavorCategory is one of the simplified categories profiles are mapped to.
type FlavorCategory struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// FlavorAssignment is the categorization result for one bean.
type FlavorAssignment struct {
	Code           string `json:"code"`
	FlavorProfile  string `json:"flavor_profile"`
	FlavorCategory string `json:"flavor_category"`
}

// FlavorCategorizer abstracts LLM-based flavor profile categorization.
type FlavorCategorizer interface {
	Categorize(ctx context.Context, profiles []FlavorProfile, categories []FlavorCategory) ([]FlavorAssignment, error)
}

// QueryGenerator abstracts LLM-based SQL generation for the query agent.
type QueryGenerator interface {
	GenerateQuery(ctx context.Context, question string) (string, error)
}
