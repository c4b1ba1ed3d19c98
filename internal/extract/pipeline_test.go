package extract

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulate_StopsAtDone(t *testing.T) {
	got := Accumulate([]Fragment{
		{Text: "hello "},
		{Text: "world"},
		{Done: true},
		{Text: "ignored"},
	})
	assert.Equal(t, "hello world", got)
}

func TestAccumulate_EmptySource(t *testing.T) {
	assert.Equal(t, "", Accumulate(nil))
}

func TestAccumulateSSE_ConcatenatesDeltas(t *testing.T) {
	stream := strings.Join([]string{
		`data: {"choices":[{"delta":{"content":"[{\"a\":1}"}}]}`,
		`data: {"choices":[{"delta":{"content":",{\"b\":2}]"}}]}`,
		`data: [DONE]`,
		"",
	}, "\n")

	got, err := AccumulateSSE(strings.NewReader(stream))
	require.NoError(t, err)
	assert.Equal(t, `[{"a":1},{"b":2}]`, got)
}

func TestAccumulateSSE_SkipsMalformedAndForeignLines(t *testing.T) {
	stream := strings.Join([]string{
		`: keep-alive comment`,
		`data: not json at all`,
		`data: {"choices":[{"delta":{"content":"ok"}}]}`,
		`data: {"choices":[]}`,
		`data: [DONE]`,
	}, "\n")

	got, err := AccumulateSSE(strings.NewReader(stream))
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestAccumulateSSE_TruncatedStreamWithoutDone(t *testing.T) {
	stream := `data: {"choices":[{"delta":{"content":"[{\"a\":1}"}}]}` + "\n"

	got, err := AccumulateSSE(strings.NewReader(stream))
	require.NoError(t, err)
	assert.Equal(t, `[{"a":1}`, got)

	// Downstream extraction takes the bounded-prefix path on this buffer.
	assert.Equal(t, `[{"a":1}`, FirstJSONSpan(got))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestAccumulateSSE_ReadFailure(t *testing.T) {
	got, err := AccumulateSSE(failingReader{})
	assert.Error(t, err)
	assert.Equal(t, "", got)
}

func TestExtractAndNormalize_ProseWrappedArray(t *testing.T) {
	raw := `Here is data: [{"code":"A1","flavor_profile":"nutty"}] done`

	records, diag := flavorSchema.ExtractAndNormalize(raw)
	require.Len(t, records, 1)
	assert.True(t, diag.OK)
	assert.Equal(t, len(raw), diag.RawLength)
	assert.Equal(t, "A1", records[0]["code"])
	assert.Equal(t, "nutty", records[0]["flavor_profile"])
	assert.Equal(t, "", records[0]["flavor_category"])
}

func TestExtractAndNormalize_NoJSONFound(t *testing.T) {
	records, diag := flavorSchema.ExtractAndNormalize("nothing useful in here")
	assert.Empty(t, records)
	assert.False(t, diag.OK)
	assert.Equal(t, "nothing useful in here", diag.Preview)
}

func TestExtractAndNormalize_MalformedJSON(t *testing.T) {
	raw := "prefix " + `{"code": "A1", "bad":` + strings.Repeat("x", 50)

	records, diag := flavorSchema.ExtractAndNormalize(raw)
	assert.Empty(t, records)
	assert.False(t, diag.OK)
	assert.Equal(t, len(raw), diag.RawLength)
}

func TestExtractAndNormalize_PreviewBounded(t *testing.T) {
	raw := strings.Repeat("a", 2000)
	_, diag := flavorSchema.ExtractAndNormalize(raw)
	assert.Len(t, diag.Preview, previewChars)
}

func TestExtractAndNormalizePages_EndToEnd(t *testing.T) {
	raw := "Model says:\n" + `[{"page": 0, "coffee_beans": [{"code":"X","name":"Foo","price_per_kg":"¥84/KG"}]}]` + "\nthat is all"

	pages, diag := beanSchema.ExtractAndNormalizePages(raw)
	assert.True(t, diag.OK)
	require.Len(t, pages, 1)
	assert.Equal(t, 1, pages[0].Number)
	require.Len(t, pages[0].Items, 1)
	assert.Equal(t, 84.0, pages[0].Items[0]["price_per_kg"])
}

func TestExtractAndNormalizePages_ShapeMismatchRejectedWhole(t *testing.T) {
	pages, diag := beanSchema.ExtractAndNormalizePages(`{"page":1,"coffee_beans":[{"name":"Foo"}]}`)
	assert.True(t, diag.OK)
	assert.Empty(t, pages)
}
