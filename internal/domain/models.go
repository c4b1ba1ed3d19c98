package domain

import (
	"time"

	"github.com/google/uuid"
)

// CoffeeBean is one catalog entry extracted from a provider price list for a
// specific month.
type CoffeeBean struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	PriceListID      *uuid.UUID `db:"price_list_id" json:"price_list_id,omitempty"`
	Provider         string     `db:"provider" json:"provider"`
	DataYear         int        `db:"data_year" json:"data_year"`
	DataMonth        int        `db:"data_month" json:"data_month"`
	Type             BeanType   `db:"type" json:"type"`
	Code             string     `db:"code" json:"code"`
	Name             string     `db:"name" json:"name"`
	Country          string     `db:"country" json:"country"`
	FlavorProfile    string     `db:"flavor_profile" json:"flavor_profile"`
	FlavorCategory   string     `db:"flavor_category" json:"flavor_category"`
	PricePerKg       *float64   `db:"price_per_kg" json:"price_per_kg"`
	PricePerPkg      *float64   `db:"price_per_pkg" json:"price_per_pkg"`
	SoldOut          bool       `db:"sold_out" json:"sold_out"`
	Origin           string     `db:"origin" json:"origin"`
	Plot             string     `db:"plot" json:"plot"`
	Estate           string     `db:"estate" json:"estate"`
	Grade            string     `db:"grade" json:"grade"`
	Humidity         string     `db:"humidity" json:"humidity"`
	Altitude         string     `db:"altitude" json:"altitude"`
	Density          string     `db:"density" json:"density"`
	ProcessingMethod string     `db:"processing_method" json:"processing_method"`
	HarvestSeason    string     `db:"harvest_season" json:"harvest_season"`
	Variety          string     `db:"variety" json:"variety"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

// PriceList is an uploaded provider price list and its parse queue state.
type PriceList struct {
	ID            uuid.UUID   `db:"id" json:"id"`
	Provider      string      `db:"provider" json:"provider"`
	BeanType      BeanType    `db:"bean_type" json:"bean_type"`
	DataYear      int         `db:"data_year" json:"data_year"`
	DataMonth     int         `db:"data_month" json:"data_month"`
	FileName      string      `db:"file_name" json:"file_name"`
	ContentType   string      `db:"content_type" json:"content_type"`
	SizeBytes     int64       `db:"size_bytes" json:"size_bytes"`
	S3Bucket      string      `db:"s3_bucket" json:"-"`
	S3Key         string      `db:"s3_key" json:"-"`
	PageCount     int         `db:"page_count" json:"page_count"`
	Status        ParseStatus `db:"status" json:"status"`
	ParseAttempts int         `db:"parse_attempts" json:"parse_attempts"`
	ParseError    string      `db:"parse_error" json:"parse_error"`
	ModelUsed     string      `db:"model_used" json:"model_used"`
	BeanCount     int         `db:"bean_count" json:"bean_count"`
	ParsedAt      *time.Time  `db:"parsed_at" json:"parsed_at"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at" json:"updated_at"`
}

// LatestData records the most recent price list period seen per provider.
type LatestData struct {
	Provider  string    `db:"provider" json:"provider"`
	DataYear  int       `db:"data_year" json:"data_year"`
	DataMonth int       `db:"data_month" json:"data_month"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Newer reports whether the given period is more recent than this record.
func (l *LatestData) Newer(year, month int) bool {
	return year > l.DataYear || (year == l.DataYear && month > l.DataMonth)
}

// PricePoint is one step of a bean's price history.
type PricePoint struct {
	Name       string   `db:"name" json:"name"`
	DataYear   int      `db:"data_year" json:"data_year"`
	DataMonth  int      `db:"data_month" json:"data_month"`
	PricePerKg *float64 `db:"price_per_kg" json:"price_per_kg"`
}
