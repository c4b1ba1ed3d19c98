package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FieldKind selects the coercion rule applied to a schema field.
type FieldKind int

const (
	// FieldString stringifies the value; nil, "None" and "" collapse to "".
	FieldString FieldKind = iota
	// FieldNullableFloat keeps numbers, digs the first digits-and-dots run
	// out of strings, and falls back to nil.
	FieldNullableFloat
	// FieldBool maps truthy/falsy string forms and non-zero numbers to bool.
	FieldBool
	// FieldPassthrough keeps the decoded value verbatim, whatever its type.
	FieldPassthrough
)

// Field declares one schema field and its coercion rule.
type Field struct {
	Name string
	Kind FieldKind
}

// Schema describes the shape records are normalized into. Every declared
// field is present in every emitted record. Records whose KeyField coerces to
// an empty string are dropped. For page-grouped input, ItemsKey names the
// per-page list of item records.
type Schema struct {
	Fields   []Field
	KeyField string
	ItemsKey string
}

// Record is a normalized item record keyed by field name.
type Record map[string]interface{}

// Page groups normalized records under a 1-based page number.
type Page struct {
	Number int      `json:"page"`
	Items  []Record `json:"items"`
}

var numberRun = regexp.MustCompile(`[0-9.]+`)

// NormalizeFlat coerces a decoded flat list of item records. Input that is
// not a list yields an empty result; list entries that are not objects or
// lack the key field are dropped.
func (s Schema) NormalizeFlat(parsed interface{}) []Record {
	list, ok := parsed.([]interface{})
	if !ok {
		return nil
	}

	var out []Record
	for _, entry := range list {
		item, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		rec := s.normalizeItem(item)
		if rec != nil {
			out = append(out, rec)
		}
	}
	return out
}

// NormalizePages coerces a decoded page-grouped list. Page entries that are
// not objects are skipped. A missing or non-positive page number is replaced
// with the entry's 1-based enumeration index. Pages left with no valid items
// are dropped entirely.
func (s Schema) NormalizePages(parsed interface{}) []Page {
	list, ok := parsed.([]interface{})
	if !ok {
		return nil
	}

	var out []Page
	for i, entry := range list {
		pageMap, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}

		pageNum, ok := intValue(pageMap["page"])
		if !ok || pageNum <= 0 {
			pageNum = i + 1
		}

		items, _ := pageMap[s.ItemsKey].([]interface{})
		var records []Record
		for _, raw := range items {
			item, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			rec := s.normalizeItem(item)
			if rec != nil {
				records = append(records, rec)
			}
		}

		if len(records) > 0 {
			out = append(out, Page{Number: pageNum, Items: records})
		}
	}
	return out
}

func (s Schema) normalizeItem(item map[string]interface{}) Record {
	rec := make(Record, len(s.Fields))
	for _, f := range s.Fields {
		rec[f.Name] = coerce(f.Kind, item[f.Name])
	}
	if s.KeyField != "" {
		if key, _ := rec[s.KeyField].(string); key == "" {
			return nil
		}
	}
	return rec
}

func coerce(kind FieldKind, v interface{}) interface{} {
	switch kind {
	case FieldString:
		return coerceString(v)
	case FieldNullableFloat:
		return coerceNullableFloat(v)
	case FieldBool:
		return coerceBool(v)
	default:
		return v
	}
}

func coerceString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		if val == "None" {
			return ""
		}
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func coerceNullableFloat(v interface{}) interface{} {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		run := numberRun.FindString(val)
		if run == "" {
			return nil
		}
		f, err := strconv.ParseFloat(run, 64)
		if err != nil {
			return nil
		}
		return f
	default:
		return nil
	}
}

func coerceBool(v interface{}) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		switch strings.ToLower(val) {
		case "true", "1", "yes", "on":
			return true
		default:
			return false
		}
	case float64:
		return val != 0
	default:
		return false
	}
}

func intValue(v interface{}) (int, bool) {
	f, ok := v.(float64)
	if !ok || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}
