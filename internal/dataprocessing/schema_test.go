package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandpulse/pkg/contracts/domain"
)

func TestResolveMarketingColumns(t *testing.T) {
	headers := []string{
		" Month ", "Region", "Category", "Platform", "Keyword Type", "Keyword",
		"Volume Share %", "Ad SOV", "Org. SOV", "Overall SOV", "Cat. Imp. Share",
	}

	cm, err := ResolveMarketingColumns(headers)
	require.NoError(t, err)

	assert.Equal(t, 0, cm.Month)
	assert.Equal(t, 1, cm.Region)
	assert.Equal(t, 2, cm.Category)
	assert.Equal(t, 3, cm.Platform)
	assert.Equal(t, 4, cm.KeywordType)
	assert.Equal(t, 5, cm.Keyword)
	assert.Equal(t, 6, cm.Metrics[domain.MetricVolumeShare])
	assert.Equal(t, 7, cm.Metrics[domain.MetricAdSOV])
	assert.Equal(t, 8, cm.Metrics[domain.MetricOrgSOV])
	assert.Equal(t, 9, cm.Metrics[domain.MetricOverallSOV])
	assert.Equal(t, 10, cm.Metrics[domain.MetricCatImpShare])
}

func TestResolveMarketingColumnsLooseHeaders(t *testing.T) {
	// Headers are matched case-insensitively and by substring, so renamed
	// exports still resolve.
	headers := []string{
		"report month", "Sales REGION", "category", "Q-Comm Platform",
		"keyword type (segment)", "keyword", "volume share (%)",
	}

	cm, err := ResolveMarketingColumns(headers)
	require.NoError(t, err)
	assert.Equal(t, 0, cm.Month)
	assert.Equal(t, 3, cm.Platform)
	assert.Equal(t, 5, cm.Keyword)
	assert.Equal(t, 6, cm.Metrics[domain.MetricVolumeShare])
}

func TestResolveMarketingColumnsExactRoles(t *testing.T) {
	// "category" and "keyword" bind on exact (trimmed) match only, so a
	// "Subcategory Keywords" header must not claim either role.
	headers := []string{"Month", "Platform", "Subcategory Keywords", "Keyword", " Category "}

	cm, err := ResolveMarketingColumns(headers)
	require.NoError(t, err)
	assert.Equal(t, 3, cm.Keyword)
	assert.Equal(t, 4, cm.Category)
}

func TestResolveMarketingColumnsMissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		role    Role
	}{
		{name: "no month", headers: []string{"Region", "Platform", "Keyword"}, role: RoleMonth},
		{name: "no platform", headers: []string{"Month", "Region", "Keyword"}, role: RolePlatform},
		{name: "no keyword", headers: []string{"Month", "Region", "Platform"}, role: RoleKeyword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveMarketingColumns(tt.headers)
			var missing *MissingColumnError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.role, missing.Role)
		})
	}
}

func TestResolveMarketingColumnsOptionalSilent(t *testing.T) {
	cm, err := ResolveMarketingColumns([]string{"Month", "Platform", "Keyword"})
	require.NoError(t, err)
	assert.Equal(t, -1, cm.Region)
	assert.Equal(t, -1, cm.Category)
	assert.Equal(t, -1, cm.KeywordType)
	assert.Empty(t, cm.Metrics)
}

func TestAdSOVWordBoundary(t *testing.T) {
	// "ad" must match at a word start; "Brand Adoption" has it only inside
	// and directly after a word.
	m := wordStart("ad")
	assert.True(t, m("Ad SOV"))
	assert.True(t, m("paid ad share"))
	assert.True(t, m("Ad%"))
	assert.False(t, m("Brand Headroom"))
	assert.False(t, m("Loaded"))
}

func TestResolveBrandStrengthColumns(t *testing.T) {
	headers := []string{"Region", "Category", "Platform", "Month", "Brand Strength %"}

	cm, err := ResolveBrandStrengthColumns(headers)
	require.NoError(t, err)
	assert.Equal(t, 3, cm.Month)
	assert.Equal(t, 2, cm.Platform)
	assert.Equal(t, 4, cm.Strength)

	_, err = ResolveBrandStrengthColumns([]string{"Region", "Platform", "Month"})
	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, RoleStrength, missing.Role)
}
