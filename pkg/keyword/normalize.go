package keyword

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxKeywordLength bounds a candidate's rune count.
const MaxKeywordLength = 30

// Normalize trims a candidate, collapses repeated constituent words
// ("용인시 맛집 맛집" → "용인시 맛집") and truncates to the length bound.
func Normalize(text string) string {
	tokens := strings.Fields(text)
	kept := tokens[:0]
	seen := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		if seen[token] {
			continue
		}
		seen[token] = true
		kept = append(kept, token)
	}

	normalized := strings.Join(kept, " ")
	if utf8.RuneCountInString(normalized) > MaxKeywordLength {
		runes := []rune(normalized)
		normalized = strings.TrimSpace(string(runes[:MaxKeywordLength]))
	}
	return normalized
}

// Valid reports whether a normalized candidate may enter the pipeline:
// non-empty, within the length bound, and containing at least one letter
// or digit.
func Valid(text string) bool {
	if text == "" || utf8.RuneCountInString(text) > MaxKeywordLength {
		return false
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// stripSpaces removes all whitespace; validation matches returned keywords
// against candidates in this compact form.
func stripSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
