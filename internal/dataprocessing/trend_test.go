package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandpulse/pkg/contracts/domain"
)

func TestBenchmark(t *testing.T) {
	records := []domain.KeywordRecord{
		mkRecord(4, "North", "", domain.PlatformBlinkit, domain.KeywordTypeBrand, "k", 10),
		mkRecord(5, "North", "", domain.PlatformBlinkit, domain.KeywordTypeBrand, "k", 20),
		mkRecord(6, "North", "", domain.PlatformBlinkit, domain.KeywordTypeBrand, "k", 30),
		mkRecord(7, "North", "", domain.PlatformBlinkit, domain.KeywordTypeBrand, "k", 99),
	}

	got := Benchmark(records, domain.MetricVolumeShare)
	assert.Equal(t, 20.0, got, "benchmark covers April-June only")
}

func TestBenchmarkEmptyWindow(t *testing.T) {
	records := []domain.KeywordRecord{
		mkRecord(7, "North", "", domain.PlatformBlinkit, domain.KeywordTypeBrand, "k", 50),
	}
	assert.Equal(t, 0.0, Benchmark(records, domain.MetricVolumeShare))
	assert.Equal(t, 0.0, Benchmark(nil, domain.MetricVolumeShare))
}

func TestSeriesByRegion(t *testing.T) {
	records := []domain.KeywordRecord{
		// Duplicate (month, region) pairs average together.
		mkRecord(5, "North", "", domain.PlatformBlinkit, domain.KeywordTypeBrand, "k1", 10),
		mkRecord(5, "North", "", domain.PlatformZepto, domain.KeywordTypeBrand, "k2", 30),
		mkRecord(4, "North", "", domain.PlatformBlinkit, domain.KeywordTypeBrand, "k1", 15),
		mkRecord(4, "South", "", domain.PlatformBlinkit, domain.KeywordTypeBrand, "k1", 25),
	}

	points := SeriesByRegion(records, domain.MetricVolumeShare)
	require.Len(t, points, 3)

	// Sorted strictly by ascending month ordinal, series key tie-break.
	assert.Equal(t, domain.TrendPoint{MonthLabel: "Apr", MonthOrdinal: 4, SeriesKey: "North", Value: 15}, points[0])
	assert.Equal(t, domain.TrendPoint{MonthLabel: "Apr", MonthOrdinal: 4, SeriesKey: "South", Value: 25}, points[1])
	assert.Equal(t, domain.TrendPoint{MonthLabel: "May", MonthOrdinal: 5, SeriesKey: "North", Value: 20}, points[2])
}

func TestSeriesByKeyword(t *testing.T) {
	records := []domain.KeywordRecord{
		mkRecord(4, "North", "", domain.PlatformBlinkit, domain.KeywordTypeBrand, "b", 10),
		mkRecord(4, "North", "", domain.PlatformBlinkit, domain.KeywordTypeBrand, "a", 20),
	}

	points := SeriesByKeyword(records, domain.MetricVolumeShare)
	require.Len(t, points, 2)
	assert.Equal(t, "a", points[0].SeriesKey)
	assert.Equal(t, "b", points[1].SeriesKey)
}

func TestSeriesDeterminism(t *testing.T) {
	records := []domain.KeywordRecord{
		mkRecord(6, "B", "", domain.PlatformBlinkit, domain.KeywordTypeBrand, "k", 1),
		mkRecord(4, "A", "", domain.PlatformBlinkit, domain.KeywordTypeBrand, "k", 2),
		mkRecord(5, "C", "", domain.PlatformBlinkit, domain.KeywordTypeBrand, "k", 3),
	}

	first := SeriesByRegion(records, domain.MetricVolumeShare)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, SeriesByRegion(records, domain.MetricVolumeShare))
	}
	for i := 1; i < len(first); i++ {
		assert.Less(t, first[i-1].MonthOrdinal, first[i].MonthOrdinal)
	}
}

func TestBrandStrengthSeriesByRegion(t *testing.T) {
	m4, _ := domain.MonthFromOrdinal(4)
	m5, _ := domain.MonthFromOrdinal(5)
	records := []domain.BrandStrengthRecord{
		{Month: m5, Region: "North", Platform: domain.PlatformZepto, Strength: 70},
		{Month: m4, Region: "North", Platform: domain.PlatformZepto, Strength: 60},
		{Month: m4, Region: "North", Platform: domain.PlatformZepto, Strength: 50},
	}

	points := BrandStrengthSeriesByRegion(records)
	require.Len(t, points, 2)
	assert.Equal(t, 55.0, points[0].Value, "duplicate (month, region) rows average")
	assert.Equal(t, 4, points[0].MonthOrdinal)
	assert.Equal(t, 70.0, points[1].Value)
}
