package domain

import "strings"

// KeywordType classifies a search keyword ("Brand", "Generic", ...). Unlike
// Platform the domain is open: sources are free to introduce new segment
// labels, so the type canonicalizes text instead of enumerating it.
type KeywordType string

const (
	KeywordTypeBrand   KeywordType = "Brand"
	KeywordTypeGeneric KeywordType = "Generic"
)

// keywordTypeAliases collapses source spellings before title-casing.
var keywordTypeAliases = map[string]string{
	"branded": "brand",
}

// ParseKeywordType canonicalizes a raw keyword-type cell: trim, lowercase,
// alias, title-case. Idempotent on canonical values.
func ParseKeywordType(raw string) KeywordType {
	s := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := keywordTypeAliases[s]; ok {
		s = alias
	}
	if s == "" {
		return ""
	}
	return KeywordType(titleCase(s))
}

func (k KeywordType) String() string {
	return string(k)
}

// titleCase upper-cases the first letter of each space-separated word,
// matching how the source dashboards render segment labels.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
