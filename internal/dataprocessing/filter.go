package dataprocessing

import (
	"brandpulse/pkg/contracts/domain"
)

// Filter is a conjunction of optional per-dimension restrictions over the
// canonical keyword table. A nil or empty slice means "no restriction" for
// that dimension; present slices require the row's value to be in the set.
type Filter struct {
	Regions      []string
	Categories   []string
	Platforms    []domain.Platform
	KeywordTypes []domain.KeywordType
	Keywords     []string
}

// Apply returns the subset of records passing every present restriction.
// It never mutates its input; an empty result is a valid state meaning
// "no matching data", not an error.
func (f Filter) Apply(records []domain.KeywordRecord) []domain.KeywordRecord {
	regions := stringSet(f.Regions)
	categories := stringSet(f.Categories)
	keywords := stringSet(f.Keywords)
	platforms := make(map[domain.Platform]struct{}, len(f.Platforms))
	for _, p := range f.Platforms {
		platforms[p] = struct{}{}
	}
	types := make(map[domain.KeywordType]struct{}, len(f.KeywordTypes))
	for _, kt := range f.KeywordTypes {
		types[kt] = struct{}{}
	}

	out := make([]domain.KeywordRecord, 0, len(records))
	for _, r := range records {
		if len(regions) > 0 {
			if _, ok := regions[r.Region]; !ok {
				continue
			}
		}
		if len(categories) > 0 {
			if _, ok := categories[r.Category]; !ok {
				continue
			}
		}
		if len(platforms) > 0 {
			if _, ok := platforms[r.Platform]; !ok {
				continue
			}
		}
		if len(types) > 0 {
			if _, ok := types[r.KeywordType]; !ok {
				continue
			}
		}
		if len(keywords) > 0 {
			if _, ok := keywords[r.Keyword]; !ok {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// BrandFilter restricts the brand-strength table; it carries only the
// dimensions that table has.
type BrandFilter struct {
	Regions    []string
	Categories []string
	Platforms  []domain.Platform
}

// Apply returns the subset of brand-strength records passing every present
// restriction.
func (f BrandFilter) Apply(records []domain.BrandStrengthRecord) []domain.BrandStrengthRecord {
	regions := stringSet(f.Regions)
	categories := stringSet(f.Categories)
	platforms := make(map[domain.Platform]struct{}, len(f.Platforms))
	for _, p := range f.Platforms {
		platforms[p] = struct{}{}
	}

	out := make([]domain.BrandStrengthRecord, 0, len(records))
	for _, r := range records {
		if len(regions) > 0 {
			if _, ok := regions[r.Region]; !ok {
				continue
			}
		}
		if len(categories) > 0 {
			if _, ok := categories[r.Category]; !ok {
				continue
			}
		}
		if len(platforms) > 0 {
			if _, ok := platforms[r.Platform]; !ok {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

func stringSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
