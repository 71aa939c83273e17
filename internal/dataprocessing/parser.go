package dataprocessing

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"brandpulse/pkg/contracts/domain"
)

// headerScanLimit bounds how many leading rows of a sheet are tried as the
// header row. Exports sometimes carry a title row above the real header.
const headerScanLimit = 5

// ParseMarketingWorkbook reads the marketing keyword workbook and builds
// the canonical keyword table. Rows with unparseable months, months outside
// the observation window, unmapped platforms, or the "all" aggregate
// sentinel keyword are dropped; dropped rows surface only in the aggregate
// counts logged at the end.
func ParseMarketingWorkbook(path string, logger *slog.Logger) ([]domain.KeywordRecord, *ColumnMap, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open marketing workbook: %w", err)
	}
	defer f.Close()

	rows, cm, headerRow, err := findHeader(f, func(headers []string) (any, error) {
		return ResolveMarketingColumns(headers)
	})
	if err != nil {
		return nil, nil, err
	}
	columns := cm.(*ColumnMap)

	var records []domain.KeywordRecord
	var dropped int
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		if rowEmpty(row) {
			continue
		}

		month, ok := ParseMonth(cell(row, columns.Month))
		if !ok || !ObservationWindow.Contains(month.Ordinal) {
			dropped++
			logger.Debug("row dropped: month outside observation window",
				slog.Int("row", i),
				slog.String("month", cell(row, columns.Month)))
			continue
		}

		platform := domain.ParsePlatform(cell(row, columns.Platform))
		if !platform.Known() {
			dropped++
			logger.Debug("row dropped: unmapped platform",
				slog.Int("row", i),
				slog.String("platform", cell(row, columns.Platform)))
			continue
		}

		keyword := NormalizeKeyword(cell(row, columns.Keyword))
		if isAggregateSentinel(keyword) {
			dropped++
			logger.Debug("row dropped: aggregate sentinel keyword", slog.Int("row", i))
			continue
		}

		rec := domain.KeywordRecord{
			Month:    month,
			Platform: platform,
			Keyword:  keyword,
			Metrics:  make(map[domain.Metric]float64, len(columns.Metrics)),
		}
		if columns.Region >= 0 {
			rec.Region = NormalizeKeyword(cell(row, columns.Region))
		}
		if columns.Category >= 0 {
			rec.Category = NormalizeCategory(cell(row, columns.Category))
		}
		if columns.KeywordType >= 0 {
			rec.KeywordType = domain.ParseKeywordType(cell(row, columns.KeywordType))
		}
		for metric, idx := range columns.Metrics {
			rec.Metrics[metric] = ParsePercent(cell(row, idx))
		}
		records = append(records, rec)
	}

	logger.Info("marketing workbook parsed",
		slog.String("path", path),
		slog.Int("rows", len(records)),
		slog.Int("dropped", dropped))

	return records, columns, nil
}

// ParseBrandStrengthWorkbook reads the brand-strength workbook into its
// canonical table. The same month window and platform allow-list apply;
// there is no keyword column, so no sentinel filtering.
func ParseBrandStrengthWorkbook(path string, logger *slog.Logger) ([]domain.BrandStrengthRecord, *BrandColumnMap, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open brand strength workbook: %w", err)
	}
	defer f.Close()

	rows, cm, headerRow, err := findHeader(f, func(headers []string) (any, error) {
		return ResolveBrandStrengthColumns(headers)
	})
	if err != nil {
		return nil, nil, err
	}
	columns := cm.(*BrandColumnMap)

	var records []domain.BrandStrengthRecord
	var dropped int
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		if rowEmpty(row) {
			continue
		}

		month, ok := ParseMonth(cell(row, columns.Month))
		if !ok || !ObservationWindow.Contains(month.Ordinal) {
			dropped++
			continue
		}

		platform := domain.ParsePlatform(cell(row, columns.Platform))
		if !platform.Known() {
			dropped++
			continue
		}

		rec := domain.BrandStrengthRecord{
			Month:    month,
			Platform: platform,
			Strength: ParsePercent(cell(row, columns.Strength)),
		}
		if columns.Region >= 0 {
			rec.Region = NormalizeKeyword(cell(row, columns.Region))
		}
		if columns.Category >= 0 {
			rec.Category = NormalizeCategory(cell(row, columns.Category))
		}
		records = append(records, rec)
	}

	logger.Info("brand strength workbook parsed",
		slog.String("path", path),
		slog.Int("rows", len(records)),
		slog.Int("dropped", dropped))

	return records, columns, nil
}

// findHeader walks the workbook's sheets and returns the first sheet whose
// leading rows contain a header the resolver accepts, along with that
// sheet's rows and the header row index. The last resolver error is
// returned when no sheet qualifies, so the caller sees which required role
// was missing.
func findHeader(f *excelize.File, resolveFn func([]string) (any, error)) ([][]string, any, int, error) {
	var lastErr error
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) == 0 {
			continue
		}
		limit := headerScanLimit
		if limit > len(rows) {
			limit = len(rows)
		}
		for i := 0; i < limit; i++ {
			columns, err := resolveFn(rows[i])
			if err != nil {
				lastErr = err
				continue
			}
			return rows, columns, i, nil
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("workbook has no sheets with data")
	}
	return nil, nil, 0, lastErr
}

// cell returns the cell value at idx, "" past the row's end or for
// unresolved (-1) columns.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func rowEmpty(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
