package exporter

import (
	"sort"
	"strconv"

	"brandpulse/pkg/contracts/domain"
)

// ReportExporter turns canonical records and trend series into CSV
// reports for offline analysis.
type ReportExporter struct {
	writer *CSVWriter
}

// NewReportExporter creates a report exporter on top of a CSV writer.
func NewReportExporter(writer *CSVWriter) *ReportExporter {
	return &ReportExporter{writer: writer}
}

// ExportMarketingTable writes the canonical marketing table, one row per
// record with every resolved metric as a column.
func (e *ReportExporter) ExportMarketingTable(filePath string, records []domain.KeywordRecord) error {
	headers := []string{"Month", "Region", "Category", "Platform", "Keyword Type", "Keyword"}
	metrics := presentMetrics(records)
	for _, m := range metrics {
		headers = append(headers, string(m))
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := []string{
			rec.Month.Label,
			rec.Region,
			rec.Category,
			rec.Platform.String(),
			string(rec.KeywordType),
			rec.Keyword,
		}
		for _, m := range metrics {
			row = append(row, formatValue(rec.Metric(m)))
		}
		rows = append(rows, row)
	}

	return e.writer.WriteSimpleCSV(filePath, headers, rows)
}

// ExportBrandStrengthTable writes the canonical brand-strength table.
func (e *ReportExporter) ExportBrandStrengthTable(filePath string, records []domain.BrandStrengthRecord) error {
	headers := []string{"Month", "Region", "Category", "Platform", "Brand Strength"}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Month.Label,
			rec.Region,
			rec.Category,
			rec.Platform.String(),
			formatValue(rec.Strength),
		})
	}

	return e.writer.WriteSimpleCSV(filePath, headers, rows)
}

// ExportTrendSeries writes an ordered trend series with the series key as
// its own column.
func (e *ReportExporter) ExportTrendSeries(filePath, seriesDimension string, points []domain.TrendPoint) error {
	headers := []string{"Month", seriesDimension, "Value"}

	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			p.MonthLabel,
			p.SeriesKey,
			formatValue(p.Value),
		})
	}

	return e.writer.WriteSimpleCSV(filePath, headers, rows)
}

// presentMetrics returns the metrics that appear in at least one record,
// in the fixed catalogue order.
func presentMetrics(records []domain.KeywordRecord) []domain.Metric {
	seen := make(map[domain.Metric]struct{})
	for _, rec := range records {
		for m := range rec.Metrics {
			seen[m] = struct{}{}
		}
	}

	metrics := make([]domain.Metric, 0, len(seen))
	for _, m := range domain.MarketingMetrics {
		if _, ok := seen[m]; ok {
			metrics = append(metrics, m)
		}
	}
	// Metrics outside the catalogue keep a deterministic tail ordering.
	var extra []domain.Metric
	for m := range seen {
		if !inCatalogue(m) {
			extra = append(extra, m)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(metrics, extra...)
}

func inCatalogue(m domain.Metric) bool {
	for _, known := range domain.MarketingMetrics {
		if known == m {
			return true
		}
	}
	return false
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
