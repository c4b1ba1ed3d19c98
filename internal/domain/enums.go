package domain

// BeanType distinguishes the two provider price list tiers.
type BeanType string

const (
	BeanTypeCommon  BeanType = "common"
	BeanTypePremium BeanType = "premium"
)

// ParseStatus tracks a price list through the parse queue.
type ParseStatus string

const (
	ParseStatusQueued     ParseStatus = "queued"
	ParseStatusProcessing ParseStatus = "processing"
	ParseStatusCompleted  ParseStatus = "completed"
	ParseStatusFailed     ParseStatus = "failed"
)

// PageSizes are the accepted pagination sizes; anything else falls back to
// the default.
var PageSizes = map[int]bool{10: true, 50: true, 100: true}

const DefaultPageSize = 10

// NormalizePagination clamps page and pageSize to accepted values.
func NormalizePagination(page, pageSize int) (int, int) {
	if !PageSizes[pageSize] {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	return page, pageSize
}
