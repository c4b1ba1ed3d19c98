package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"beanvault/internal/domain"
)

// BOM is the UTF-8 byte order mark, written first so Excel on Windows decodes
// the Chinese bean names correctly.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Columns defines the export header row, shared by the CSV and XLSX writers.
var Columns = []string{
	"type",
	"code",
	"name",
	"country",
	"flavor_profile",
	"flavor_category",
	"price_per_kg",
	"price_per_pkg",
	"sold_out",
	"origin",
	"plot",
	"estate",
	"grade",
	"humidity",
	"altitude",
	"density",
	"processing_method",
	"harvest_season",
	"variety",
	"provider",
	"data_year",
	"data_month",
}

// CSVWriter wraps csv.Writer for exporting beans as CSV.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(Columns)
}

// WriteBeans converts a batch of beans to CSV rows and writes them.
func (w *CSVWriter) WriteBeans(beans []domain.CoffeeBean) error {
	for i := range beans {
		if err := w.csv.Write(beanToRow(&beans[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

func beanToRow(b *domain.CoffeeBean) []string {
	return []string{
		string(b.Type),
		b.Code,
		b.Name,
		b.Country,
		b.FlavorProfile,
		b.FlavorCategory,
		formatPrice(b.PricePerKg),
		formatPrice(b.PricePerPkg),
		formatBool(b.SoldOut),
		b.Origin,
		b.Plot,
		b.Estate,
		b.Grade,
		b.Humidity,
		b.Altitude,
		b.Density,
		b.ProcessingMethod,
		b.HarvestSeason,
		b.Variety,
		b.Provider,
		strconv.Itoa(b.DataYear),
		strconv.Itoa(b.DataMonth),
	}
}

func formatPrice(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatBool(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition. Replaces
// non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized download filename with today's date.
func BuildFilename(base, ext string) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(base), time.Now().Format("2006-01-02"), ext)
}
