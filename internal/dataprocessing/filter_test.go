package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"brandpulse/pkg/contracts/domain"
)

func mkRecord(month int, region, category string, platform domain.Platform, kt domain.KeywordType, keyword string, volumeShare float64) domain.KeywordRecord {
	m, _ := domain.MonthFromOrdinal(month)
	return domain.KeywordRecord{
		Month:       m,
		Region:      region,
		Category:    category,
		Platform:    platform,
		KeywordType: kt,
		Keyword:     keyword,
		Metrics:     map[domain.Metric]float64{domain.MetricVolumeShare: volumeShare},
	}
}

func TestFilterApply(t *testing.T) {
	records := []domain.KeywordRecord{
		mkRecord(4, "North", "Snacks", domain.PlatformBlinkit, domain.KeywordTypeBrand, "maggi", 10),
		mkRecord(4, "South", "Snacks", domain.PlatformZepto, domain.KeywordTypeGeneric, "chips", 20),
		mkRecord(5, "North", "Dairy", domain.PlatformInstamart, domain.KeywordTypeBrand, "amul", 30),
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "no restriction passes everything", filter: Filter{}, want: []string{"maggi", "chips", "amul"}},
		{name: "region", filter: Filter{Regions: []string{"North"}}, want: []string{"maggi", "amul"}},
		{
			name:   "region and category compose with AND",
			filter: Filter{Regions: []string{"North"}, Categories: []string{"Snacks"}},
			want:   []string{"maggi"},
		},
		{name: "platform", filter: Filter{Platforms: []domain.Platform{domain.PlatformZepto}}, want: []string{"chips"}},
		{name: "keyword type", filter: Filter{KeywordTypes: []domain.KeywordType{domain.KeywordTypeBrand}}, want: []string{"maggi", "amul"}},
		{name: "keyword", filter: Filter{Keywords: []string{"amul"}}, want: []string{"amul"}},
		{name: "absent value yields empty not error", filter: Filter{Regions: []string{"East"}}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(records)
			keywords := make([]string, 0, len(got))
			for _, r := range got {
				keywords = append(keywords, r.Keyword)
			}
			assert.Equal(t, tt.want, keywords)
		})
	}
}

func TestFilterApplyDoesNotMutate(t *testing.T) {
	records := []domain.KeywordRecord{
		mkRecord(4, "North", "Snacks", domain.PlatformBlinkit, domain.KeywordTypeBrand, "maggi", 10),
	}

	_ = Filter{Regions: []string{"South"}}.Apply(records)

	assert.Equal(t, "North", records[0].Region)
	assert.Len(t, records, 1)
}

func TestBrandFilterApply(t *testing.T) {
	m4, _ := domain.MonthFromOrdinal(4)
	records := []domain.BrandStrengthRecord{
		{Month: m4, Region: "North", Category: "Snacks", Platform: domain.PlatformBlinkit, Strength: 60},
		{Month: m4, Region: "South", Category: "Snacks", Platform: domain.PlatformZepto, Strength: 55},
	}

	got := BrandFilter{Regions: []string{"South"}}.Apply(records)
	assert.Len(t, got, 1)
	assert.Equal(t, domain.PlatformZepto, got[0].Platform)

	got = BrandFilter{Regions: []string{"West"}}.Apply(records)
	assert.Empty(t, got)
}
