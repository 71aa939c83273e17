package dataprocessing

import (
	"math"
	"strconv"
	"strings"
)

// emptyLikeTokens are cell values that mean "no value". Spreadsheet round
// trips through other tools leave these behind as literal text.
var emptyLikeTokens = map[string]struct{}{
	"":     {},
	"nan":  {},
	"none": {},
}

// NormalizeCategory canonicalizes a category cell: trim, collapse
// empty-like tokens to the empty string, title-case.
func NormalizeCategory(raw string) string {
	s := strings.TrimSpace(raw)
	if _, empty := emptyLikeTokens[strings.ToLower(s)]; empty {
		return ""
	}
	return titleCase(s)
}

// NormalizeKeyword trims a keyword cell. Matching against the aggregate
// sentinel and filter values is case-insensitive, so casing is preserved
// for display.
func NormalizeKeyword(raw string) string {
	return strings.TrimSpace(raw)
}

// ParsePercent coerces a percentage-like cell ("45%", "45.5", " 12 % ") to
// its numeric value. Unparseable or non-finite input defaults to 0: a
// missing metric is a default fill, not an error.
func ParsePercent(raw string) float64 {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// titleCase upper-cases the first letter of each word.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// isAggregateSentinel reports whether a keyword cell is the literal "all"
// roll-up row type, which is excluded from per-keyword views entirely.
func isAggregateSentinel(keyword string) bool {
	return strings.EqualFold(strings.TrimSpace(keyword), "all")
}
