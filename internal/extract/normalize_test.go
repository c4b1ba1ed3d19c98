package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var flavorSchema = Schema{
	Fields: []Field{
		{Name: "code", Kind: FieldString},
		{Name: "flavor_profile", Kind: FieldString},
		{Name: "flavor_category", Kind: FieldString},
	},
	KeyField: "code",
}

var beanSchema = Schema{
	Fields: []Field{
		{Name: "code", Kind: FieldString},
		{Name: "name", Kind: FieldString},
		{Name: "price_per_kg", Kind: FieldNullableFloat},
		{Name: "price_per_pkg", Kind: FieldPassthrough},
		{Name: "sold_out", Kind: FieldBool},
	},
	KeyField: "name",
	ItemsKey: "coffee_beans",
}

func decode(t *testing.T, s string) interface{} {
	t.Helper()
	var v interface{}
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestNormalizeFlat_RejectsNonList(t *testing.T) {
	assert.Empty(t, flavorSchema.NormalizeFlat(decode(t, `{"code":"A1"}`)))
	assert.Empty(t, flavorSchema.NormalizeFlat(decode(t, `"just a string"`)))
}

func TestNormalizeFlat_FillsDeclaredFields(t *testing.T) {
	records := flavorSchema.NormalizeFlat(decode(t, `[{"code":"A1","flavor_profile":"nutty"}]`))
	require.Len(t, records, 1)
	assert.Equal(t, "A1", records[0]["code"])
	assert.Equal(t, "nutty", records[0]["flavor_profile"])
	assert.Equal(t, "", records[0]["flavor_category"])
}

func TestNormalizeFlat_DropsRecordsWithoutKey(t *testing.T) {
	records := flavorSchema.NormalizeFlat(decode(t, `[{"flavor_profile":"nutty"},{"code":"","flavor_profile":"x"},{"code":"B2"}]`))
	require.Len(t, records, 1)
	assert.Equal(t, "B2", records[0]["code"])
}

func TestNormalizeFlat_SkipsNonObjectEntries(t *testing.T) {
	records := flavorSchema.NormalizeFlat(decode(t, `[42,"x",{"code":"A1"}]`))
	require.Len(t, records, 1)
}

func TestNormalizePages_InvalidPageNumberUsesEnumerationIndex(t *testing.T) {
	pages := beanSchema.NormalizePages(decode(t, `[{"page":0,"coffee_beans":[{"code":"X","name":"Foo"}]}]`))
	require.Len(t, pages, 1)
	assert.Equal(t, 1, pages[0].Number)
	require.Len(t, pages[0].Items, 1)
	assert.Equal(t, "X", pages[0].Items[0]["code"])
	assert.Equal(t, "Foo", pages[0].Items[0]["name"])
	assert.Equal(t, false, pages[0].Items[0]["sold_out"])
}

func TestNormalizePages_SkippedEntryStillAdvancesFallbackIndex(t *testing.T) {
	// Entry 0 is not an object; the fallback for entry 1 is its raw
	// enumeration index, 2.
	pages := beanSchema.NormalizePages(decode(t, `["garbage",{"page":-3,"coffee_beans":[{"name":"Foo"}]}]`))
	require.Len(t, pages, 1)
	assert.Equal(t, 2, pages[0].Number)
}

func TestNormalizePages_FractionalPageNumberInvalid(t *testing.T) {
	pages := beanSchema.NormalizePages(decode(t, `[{"page":1.5,"coffee_beans":[{"name":"Foo"}]}]`))
	require.Len(t, pages, 1)
	assert.Equal(t, 1, pages[0].Number)
}

func TestNormalizePages_DropsEmptyPages(t *testing.T) {
	pages := beanSchema.NormalizePages(decode(t, `[
		{"page":1,"coffee_beans":[{"code":"A","name":""},{"code":"B"}]},
		{"page":2,"coffee_beans":[{"code":"C","name":"Keep"}]}
	]`))
	require.Len(t, pages, 1)
	assert.Equal(t, 2, pages[0].Number)
}

func TestCoercePricePerKg(t *testing.T) {
	records := beanSchema.NormalizeFlat(decode(t, `[
		{"name":"a","price_per_kg":126.0},
		{"name":"b","price_per_kg":"¥84/KG"},
		{"name":"c","price_per_kg":"售罄"},
		{"name":"d","price_per_kg":true},
		{"name":"e"}
	]`))
	require.Len(t, records, 5)
	assert.Equal(t, 126.0, records[0]["price_per_kg"])
	assert.Equal(t, 84.0, records[1]["price_per_kg"])
	assert.Nil(t, records[2]["price_per_kg"])
	assert.Nil(t, records[3]["price_per_kg"])
	assert.Nil(t, records[4]["price_per_kg"])
}

func TestCoercePricePerPkgPassthrough(t *testing.T) {
	records := beanSchema.NormalizeFlat(decode(t, `[{"name":"a","price_per_pkg":"120元"},{"name":"b","price_per_pkg":74.0}]`))
	require.Len(t, records, 2)
	assert.Equal(t, "120元", records[0]["price_per_pkg"])
	assert.Equal(t, 74.0, records[1]["price_per_pkg"])
}

func TestCoerceSoldOut(t *testing.T) {
	records := beanSchema.NormalizeFlat(decode(t, `[
		{"name":"a","sold_out":true},
		{"name":"b","sold_out":"yes"},
		{"name":"c","sold_out":"0"},
		{"name":"d","sold_out":1},
		{"name":"e","sold_out":"maybe"}
	]`))
	require.Len(t, records, 5)
	assert.Equal(t, true, records[0]["sold_out"])
	assert.Equal(t, true, records[1]["sold_out"])
	assert.Equal(t, false, records[2]["sold_out"])
	assert.Equal(t, true, records[3]["sold_out"])
	assert.Equal(t, false, records[4]["sold_out"])
}

func TestCoerceString_NoneCollapsesToEmpty(t *testing.T) {
	records := beanSchema.NormalizeFlat(decode(t, `[{"name":"a","code":null},{"name":"b","code":"None"}]`))
	require.Len(t, records, 2)
	assert.Equal(t, "", records[0]["code"])
	assert.Equal(t, "", records[1]["code"])
}

func TestNormalize_Idempotent(t *testing.T) {
	first := beanSchema.NormalizeFlat(decode(t, `[{"code":"A1","name":"Foo","price_per_kg":"¥84/KG","sold_out":"yes"}]`))
	require.Len(t, first, 1)

	again := make([]interface{}, 0, len(first))
	for _, rec := range first {
		again = append(again, map[string]interface{}(rec))
	}
	second := beanSchema.NormalizeFlat(again)
	assert.Equal(t, first, second)
}
