package extract

import (
	"strings"
	"unicode/utf8"
)

// fallbackSpanChars bounds the prefix returned for unbalanced input, counted
// in characters so multi-byte text is cut at the same point the reference
// output would be.
const fallbackSpanChars = 10000

// FirstJSONSpan returns the minimal substring of text spanning the first
// balanced JSON object or array, with all whitespace runs collapsed to single
// spaces. Only the bracket kind of the first opener is tracked: once matching
// on "{...}", inner "[" and "]" do not affect depth, and vice versa. Brackets
// inside string literals and escaped characters are ignored. If no opener
// exists the result is empty; if the text ends before the span closes, a
// prefix of at most fallbackSpanChars characters is returned instead.
func FirstJSONSpan(text string) string {
	brace := strings.IndexByte(text, '{')
	bracket := strings.IndexByte(text, '[')

	var start int
	var open, closer byte
	switch {
	case brace == -1 && bracket == -1:
		return ""
	case bracket == -1 || (brace != -1 && brace < bracket):
		start, open, closer = brace, '{', '}'
	default:
		start, open, closer = bracket, '[', ']'
	}

	depth := 0
	inString := false
	escapeNext := false

	for i := start; i < len(text); i++ {
		ch := text[i]

		if escapeNext {
			escapeNext = false
			continue
		}
		if ch == '\\' {
			escapeNext = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch ch {
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return collapseWhitespace(text[start : i+1])
			}
		}
	}

	// Truncated model output: return a bounded best-effort prefix.
	return collapseWhitespace(truncateChars(text[start:], fallbackSpanChars))
}

// collapseWhitespace replaces every run of whitespace (newlines included) with
// a single space. String literal contents are collapsed too, matching the
// reference output.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateChars(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
