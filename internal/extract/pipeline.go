package extract

import (
	"encoding/json"
	"log"
	"unicode/utf8"
)

const previewChars = 500

// Diagnostic reports how an extraction attempt went. It accompanies every
// result so callers can log failures without the pipeline ever raising.
type Diagnostic struct {
	OK        bool   `json:"ok"`
	RawLength int    `json:"raw_length"`
	Preview   string `json:"preview"`
}

// ExtractAndNormalize locates the first balanced JSON span in raw model
// output, parses it, and normalizes it as a flat record list. Every failure
// mode degrades to an empty list plus a diagnostic.
func (s Schema) ExtractAndNormalize(raw string) ([]Record, Diagnostic) {
	parsed, diag := s.extract(raw)
	if !diag.OK {
		return nil, diag
	}
	return s.NormalizeFlat(parsed), diag
}

// ExtractAndNormalizePages is the page-grouped counterpart of
// ExtractAndNormalize.
func (s Schema) ExtractAndNormalizePages(raw string) ([]Page, Diagnostic) {
	parsed, diag := s.extract(raw)
	if !diag.OK {
		return nil, diag
	}
	return s.NormalizePages(parsed), diag
}

func (s Schema) extract(raw string) (interface{}, Diagnostic) {
	diag := Diagnostic{RawLength: len(raw), Preview: truncateChars(raw, previewChars)}

	span := FirstJSONSpan(raw)
	if span == "" {
		log.Printf("extract: no JSON data found in response (length %d)", len(raw))
		return nil, diag
	}

	var parsed interface{}
	if err := json.Unmarshal([]byte(span), &parsed); err != nil {
		log.Printf("extract: JSON parse error: %v (extracted %d chars)", err, utf8.RuneCountInString(span))
		return nil, diag
	}

	diag.OK = true
	return parsed, diag
}
