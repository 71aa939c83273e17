package dataprocessing

import (
	"fmt"
	"strings"

	"brandpulse/pkg/contracts/domain"
)

// Role names a semantic column role the schema resolver can bind a raw
// spreadsheet header to.
type Role string

const (
	RoleMonth       Role = "month"
	RoleRegion      Role = "region"
	RoleCategory    Role = "category"
	RolePlatform    Role = "platform"
	RoleKeywordType Role = "keyword_type"
	RoleKeyword     Role = "keyword"
	RoleStrength    Role = "brand_strength"
)

// MissingColumnError reports that a required role could not be bound to any
// header. Per the error taxonomy this is fatal: the pipeline cannot
// canonicalize a file whose month, platform or keyword column is absent.
type MissingColumnError struct {
	Role Role
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q not found in header row", e.Role)
}

// ColumnMap holds the resolved header index per role for the marketing
// workbook. Unresolved optional roles are -1; callers skip the filters and
// metrics that depend on them instead of aborting.
type ColumnMap struct {
	Month       int
	Region      int
	Category    int
	Platform    int
	KeywordType int
	Keyword     int
	Metrics     map[domain.Metric]int
}

// BrandColumnMap is the resolved schema of the brand-strength workbook.
type BrandColumnMap struct {
	Month    int
	Region   int
	Category int
	Platform int
	Strength int
}

// matcher reports whether a header binds to a role.
type matcher func(header string) bool

func contains(sub string) matcher {
	return func(header string) bool {
		return strings.Contains(strings.ToLower(header), sub)
	}
}

func exact(want string) matcher {
	return func(header string) bool {
		return strings.EqualFold(strings.TrimSpace(header), want)
	}
}

// wordStart matches sub only at the start of a word, so "Ad SOV" binds the
// ad-share role while headers merely containing "ad" inside a word do not.
func wordStart(sub string) matcher {
	return func(header string) bool {
		h := strings.ToLower(header)
		for i := 0; ; i += len(sub) {
			j := strings.Index(h[i:], sub)
			if j < 0 {
				return false
			}
			i += j
			if i == 0 || !isWordChar(h[i-1]) {
				return true
			}
		}
	}
}

// sequence matches headers containing first and then, later, second
// ("Cat. Imp. Share" for "cat" followed by "imp").
func sequence(first, second string) matcher {
	return func(header string) bool {
		h := strings.ToLower(header)
		i := strings.Index(h, first)
		if i < 0 {
			return false
		}
		return strings.Contains(h[i+len(first):], second)
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_'
}

// resolve returns the index of the first header matching m, -1 when none do.
func resolve(headers []string, m matcher) int {
	for i, h := range headers {
		if m(strings.TrimSpace(h)) {
			return i
		}
	}
	return -1
}

// marketingMetricRules is the fixed ordered rule list binding metric columns.
var marketingMetricRules = []struct {
	metric domain.Metric
	match  matcher
}{
	{domain.MetricVolumeShare, contains("volume share")},
	{domain.MetricAdSOV, wordStart("ad")},
	{domain.MetricOrgSOV, contains("org")},
	{domain.MetricOverallSOV, contains("overall")},
	{domain.MetricCatImpShare, sequence("cat", "imp")},
}

// ResolveMarketingColumns binds the marketing workbook's header row to
// semantic roles. Month, platform and keyword are required; everything else
// resolves to -1 silently when absent.
func ResolveMarketingColumns(headers []string) (*ColumnMap, error) {
	cm := &ColumnMap{
		Month:       resolve(headers, contains("month")),
		Region:      resolve(headers, contains("region")),
		Category:    resolve(headers, exact("category")),
		Platform:    resolve(headers, contains("platform")),
		KeywordType: resolve(headers, contains("keyword type")),
		Keyword:     resolve(headers, exact("keyword")),
		Metrics:     make(map[domain.Metric]int, len(marketingMetricRules)),
	}
	for _, rule := range marketingMetricRules {
		if idx := resolve(headers, rule.match); idx >= 0 {
			cm.Metrics[rule.metric] = idx
		}
	}

	switch {
	case cm.Month < 0:
		return nil, &MissingColumnError{Role: RoleMonth}
	case cm.Platform < 0:
		return nil, &MissingColumnError{Role: RolePlatform}
	case cm.Keyword < 0:
		return nil, &MissingColumnError{Role: RoleKeyword}
	}
	return cm, nil
}

// ResolveBrandStrengthColumns binds the brand-strength workbook's header
// row. Month, platform and the strength metric are required.
func ResolveBrandStrengthColumns(headers []string) (*BrandColumnMap, error) {
	cm := &BrandColumnMap{
		Month:    resolve(headers, contains("month")),
		Region:   resolve(headers, contains("region")),
		Category: resolve(headers, contains("category")),
		Platform: resolve(headers, contains("platform")),
		Strength: resolve(headers, sequence("brand", "strength")),
	}

	switch {
	case cm.Month < 0:
		return nil, &MissingColumnError{Role: RoleMonth}
	case cm.Platform < 0:
		return nil, &MissingColumnError{Role: RolePlatform}
	case cm.Strength < 0:
		return nil, &MissingColumnError{Role: RoleStrength}
	}
	return cm, nil
}
