package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandpulse/pkg/contracts/domain"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExportMarketingTable(t *testing.T) {
	dir := t.TempDir()
	exporter := NewReportExporter(NewCSVWriter(dir, nil))

	records := []domain.KeywordRecord{
		{
			Month:       domain.Month{Ordinal: 4, Label: "Apr"},
			Region:      "North",
			Category:    "Snacks",
			Platform:    domain.PlatformBlinkit,
			KeywordType: domain.KeywordTypeBrand,
			Keyword:     "maggi",
			Metrics: map[domain.Metric]float64{
				domain.MetricVolumeShare: 12.5,
				domain.MetricAdSOV:       3,
			},
		},
		{
			Month:       domain.Month{Ordinal: 5, Label: "May"},
			Region:      "South",
			Category:    "Snacks",
			Platform:    domain.PlatformZepto,
			KeywordType: domain.KeywordTypeGeneric,
			Keyword:     "noodles",
			Metrics: map[domain.Metric]float64{
				domain.MetricVolumeShare: 7,
			},
		},
	}

	require.NoError(t, exporter.ExportMarketingTable("marketing.csv", records))

	rows := readCSV(t, filepath.Join(dir, "marketing.csv"))
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Month", "Region", "Category", "Platform", "Keyword Type", "Keyword", "Volume Share", "Ad SOV"}, rows[0])
	assert.Equal(t, []string{"Apr", "North", "Snacks", "Blinkit", "Brand", "maggi", "12.5", "3"}, rows[1])
	// Missing metric columns serialize as zero.
	assert.Equal(t, []string{"May", "South", "Snacks", "Zepto", "Generic", "noodles", "7", "0"}, rows[2])
}

func TestExportBrandStrengthTable(t *testing.T) {
	dir := t.TempDir()
	exporter := NewReportExporter(NewCSVWriter(dir, nil))

	records := []domain.BrandStrengthRecord{
		{
			Month:    domain.Month{Ordinal: 4, Label: "Apr"},
			Region:   "North",
			Category: "Snacks",
			Platform: domain.PlatformBlinkit,
			Strength: 55,
		},
	}

	require.NoError(t, exporter.ExportBrandStrengthTable("brand.csv", records))

	rows := readCSV(t, filepath.Join(dir, "brand.csv"))
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Apr", "North", "Snacks", "Blinkit", "55"}, rows[1])
}

func TestExportTrendSeries(t *testing.T) {
	dir := t.TempDir()
	exporter := NewReportExporter(NewCSVWriter(dir, nil))

	points := []domain.TrendPoint{
		{MonthLabel: "Apr", MonthOrdinal: 4, SeriesKey: "North", Value: 10},
		{MonthLabel: "May", MonthOrdinal: 5, SeriesKey: "North", Value: 20},
	}

	require.NoError(t, exporter.ExportTrendSeries(filepath.Join("trends", "volume_share.csv"), "Region", points))

	rows := readCSV(t, filepath.Join(dir, "trends", "volume_share.csv"))
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Month", "Region", "Value"}, rows[0])
	assert.Equal(t, []string{"May", "North", "20"}, rows[2])
}

func TestWriteCSVAppend(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir, nil)

	require.NoError(t, writer.WriteSimpleCSV("out.csv", []string{"a", "b"}, [][]string{{"1", "2"}}))
	require.NoError(t, writer.WriteCSV("out.csv", WriteOptions{
		Records: [][]string{{"3", "4"}},
		Append:  true,
	}))

	rows := readCSV(t, filepath.Join(dir, "out.csv"))
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"3", "4"}, rows[2])
}
