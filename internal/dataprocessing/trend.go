package dataprocessing

import (
	"sort"

	"brandpulse/pkg/contracts/domain"
)

// Benchmark computes the mean of a metric restricted to the fixed
// April-June reference quarter, 0 when no rows fall in that window.
func Benchmark(records []domain.KeywordRecord, metric domain.Metric) float64 {
	var sum float64
	var n int
	for _, r := range records {
		if !BenchmarkWindow.Contains(r.Month.Ordinal) {
			continue
		}
		sum += r.Metric(metric)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// groupKey identifies one (month, series) cell of a trend aggregation.
type groupKey struct {
	ordinal int
	label   string
	series  string
}

type meanAcc struct {
	sum float64
	n   int
}

// SeriesByRegion aggregates a metric into one line per region: per-group
// mean over (month, region), sorted ascending by month ordinal.
func SeriesByRegion(records []domain.KeywordRecord, metric domain.Metric) []domain.TrendPoint {
	return aggregate(records, metric, func(r domain.KeywordRecord) string { return r.Region })
}

// SeriesByPlatform aggregates a metric into one line per platform.
func SeriesByPlatform(records []domain.KeywordRecord, metric domain.Metric) []domain.TrendPoint {
	return aggregate(records, metric, func(r domain.KeywordRecord) string { return r.Platform.String() })
}

// SeriesByKeyword aggregates a metric into one line per keyword.
func SeriesByKeyword(records []domain.KeywordRecord, metric domain.Metric) []domain.TrendPoint {
	return aggregate(records, metric, func(r domain.KeywordRecord) string { return r.Keyword })
}

func aggregate(records []domain.KeywordRecord, metric domain.Metric, seriesOf func(domain.KeywordRecord) string) []domain.TrendPoint {
	groups := make(map[groupKey]*meanAcc)
	for _, r := range records {
		k := groupKey{ordinal: r.Month.Ordinal, label: r.Month.Label, series: seriesOf(r)}
		acc := groups[k]
		if acc == nil {
			acc = &meanAcc{}
			groups[k] = acc
		}
		acc.sum += r.Metric(metric)
		acc.n++
	}
	return sortedPoints(groups)
}

// BrandStrengthSeriesByRegion aggregates brand strength into one line per
// region over the given records.
func BrandStrengthSeriesByRegion(records []domain.BrandStrengthRecord) []domain.TrendPoint {
	groups := make(map[groupKey]*meanAcc)
	for _, r := range records {
		k := groupKey{ordinal: r.Month.Ordinal, label: r.Month.Label, series: r.Region}
		acc := groups[k]
		if acc == nil {
			acc = &meanAcc{}
			groups[k] = acc
		}
		acc.sum += r.Strength
		acc.n++
	}
	return sortedPoints(groups)
}

// sortedPoints flattens the group means into the ordered series contract:
// strictly ascending month ordinal, series key as tie-break so output is
// deterministic.
func sortedPoints(groups map[groupKey]*meanAcc) []domain.TrendPoint {
	points := make([]domain.TrendPoint, 0, len(groups))
	for k, acc := range groups {
		points = append(points, domain.TrendPoint{
			MonthLabel:   k.label,
			MonthOrdinal: k.ordinal,
			SeriesKey:    k.series,
			Value:        acc.sum / float64(acc.n),
		})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].MonthOrdinal != points[j].MonthOrdinal {
			return points[i].MonthOrdinal < points[j].MonthOrdinal
		}
		return points[i].SeriesKey < points[j].SeriesKey
	})
	return points
}
