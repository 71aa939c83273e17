package services

import (
	"context"
	"log/slog"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"brandpulse/internal/dataprocessing"
	"brandpulse/internal/dataset"
	apperrors "brandpulse/internal/errors"
	"brandpulse/internal/infrastructure"
	"brandpulse/pkg/contracts/domain"
)

// Default selections the frontend pre-populates its multiselects with.
const (
	DefaultKeywordType = string(domain.KeywordTypeBrand)
	DefaultMetric      = string(domain.MetricVolumeShare)
)

// DashboardService turns dataset snapshots into the view models the
// dashboard frontend renders.
type DashboardService struct {
	store   *dataset.Store
	logger  *slog.Logger
	metrics *infrastructure.BusinessMetrics
}

// NewDashboardService creates a dashboard service. metrics may be nil.
func NewDashboardService(store *dataset.Store, logger *slog.Logger, metrics *infrastructure.BusinessMetrics) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		store:   store,
		logger:  logger.With(slog.String("component", "dashboard_service")),
		metrics: metrics,
	}
}

// FilterOptionsResponse feeds the sidebar multiselects.
type FilterOptionsResponse struct {
	Regions            []string `json:"regions"`
	Categories         []string `json:"categories"`
	Platforms          []string `json:"platforms"`
	KeywordTypes       []string `json:"keyword_types"`
	Keywords           []string `json:"keywords"`
	Metrics            []string `json:"metrics"`
	DefaultKeywordType string   `json:"default_keyword_type"`
	DefaultMetric      string   `json:"default_metric"`
}

// VolumeShareRequest selects the rows view 1 aggregates.
type VolumeShareRequest struct {
	Regions    []string `json:"regions" validate:"omitempty,dive,required"`
	Categories []string `json:"categories" validate:"omitempty,dive,required"`
	Platforms  []string `json:"platforms" validate:"omitempty,dive,required"`
}

// KeywordColumns is the two-column keyword listing rendered under each
// keyword-type segment. Left holds the ceil half.
type KeywordColumns struct {
	Left  []string `json:"left"`
	Right []string `json:"right"`
}

// VolumeShareSegment is one keyword-type panel of view 1.
type VolumeShareSegment struct {
	KeywordType string              `json:"keyword_type"`
	Series      []domain.TrendPoint `json:"series"`
	Benchmark   float64             `json:"benchmark"`
	Keywords    KeywordColumns      `json:"keywords"`
}

// VolumeShareResponse is the view 1 payload.
type VolumeShareResponse struct {
	Segments []VolumeShareSegment `json:"segments"`
}

// KeywordTrendsRequest selects the rows view 2 aggregates.
type KeywordTrendsRequest struct {
	Regions      []string `json:"regions" validate:"omitempty,dive,required"`
	Categories   []string `json:"categories" validate:"omitempty,dive,required"`
	KeywordTypes []string `json:"keyword_types" validate:"omitempty,dive,required"`
	Keywords     []string `json:"keywords" validate:"omitempty,dive,required"`
	Metrics      []string `json:"metrics" validate:"omitempty,dive,required"`
}

// PlatformMetricTrend is one platform x metric panel of view 2. NoData
// marks the "No data found for <platform>" notice.
type PlatformMetricTrend struct {
	Platform string              `json:"platform"`
	Metric   string              `json:"metric"`
	NoData   bool                `json:"no_data"`
	Series   []domain.TrendPoint `json:"series"`
}

// KeywordTrendsResponse is the view 2 payload.
type KeywordTrendsResponse struct {
	Trends []PlatformMetricTrend `json:"trends"`
}

// BrandStrengthRequest selects the rows view 3 aggregates.
type BrandStrengthRequest struct {
	Regions    []string `json:"regions" validate:"omitempty,dive,required"`
	Categories []string `json:"categories" validate:"omitempty,dive,required"`
}

// BrandStrengthTrend is one platform panel of view 3.
type BrandStrengthTrend struct {
	Platform string              `json:"platform"`
	Series   []domain.TrendPoint `json:"series"`
}

// BrandStrengthResponse is the view 3 payload.
type BrandStrengthResponse struct {
	Trends []BrandStrengthTrend `json:"trends"`
}

// FilterOptions returns the sorted distinct values per dimension plus the
// metric catalogue and default selections.
func (s *DashboardService) FilterOptions(ctx context.Context) (*FilterOptionsResponse, error) {
	snapshot, err := s.store.Marketing(ctx)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to load marketing workbook", err)
	}
	if len(snapshot.Records) == 0 {
		return nil, ErrNoData
	}

	regions := make(map[string]struct{})
	categories := make(map[string]struct{})
	platforms := make(map[domain.Platform]struct{})
	keywordTypes := make(map[string]struct{})
	keywords := make(map[string]struct{})

	for _, rec := range snapshot.Records {
		if rec.Region != "" {
			regions[rec.Region] = struct{}{}
		}
		if rec.Category != "" {
			categories[rec.Category] = struct{}{}
		}
		platforms[rec.Platform] = struct{}{}
		if rec.KeywordType != "" {
			keywordTypes[string(rec.KeywordType)] = struct{}{}
		}
		if rec.Keyword != "" {
			keywords[rec.Keyword] = struct{}{}
		}
	}

	// Platforms keep the fixed dashboard ordering rather than sorting.
	platformNames := make([]string, 0, len(platforms))
	for _, p := range domain.AllPlatforms {
		if _, ok := platforms[p]; ok {
			platformNames = append(platformNames, p.String())
		}
	}

	metricNames := make([]string, 0, len(domain.MarketingMetrics))
	for _, m := range domain.MarketingMetrics {
		metricNames = append(metricNames, string(m))
	}

	return &FilterOptionsResponse{
		Regions:            sortedKeys(regions),
		Categories:         sortedKeys(categories),
		Platforms:          platformNames,
		KeywordTypes:       sortedKeys(keywordTypes),
		Keywords:           sortedKeys(keywords),
		Metrics:            metricNames,
		DefaultKeywordType: DefaultKeywordType,
		DefaultMetric:      DefaultMetric,
	}, nil
}

// VolumeShareTrends builds view 1: per keyword type present in the
// filtered rows, region-keyed Volume Share series with the benchmark
// scalar and the two-column keyword listing.
func (s *DashboardService) VolumeShareTrends(ctx context.Context, req VolumeShareRequest) (*VolumeShareResponse, error) {
	snapshot, err := s.store.Marketing(ctx)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to load marketing workbook", err)
	}
	if len(snapshot.Records) == 0 {
		return nil, ErrNoData
	}

	filter := dataprocessing.Filter{
		Regions:    req.Regions,
		Categories: req.Categories,
		Platforms:  parsePlatforms(req.Platforms),
	}
	filtered := filter.Apply(snapshot.Records)
	if len(filtered) == 0 {
		return nil, ErrNoMatchingRows
	}

	s.recordQuery(ctx, "volume_share")

	byType := make(map[domain.KeywordType][]domain.KeywordRecord)
	for _, rec := range filtered {
		byType[rec.KeywordType] = append(byType[rec.KeywordType], rec)
	}

	types := make([]string, 0, len(byType))
	for kt := range byType {
		types = append(types, string(kt))
	}
	sort.Strings(types)

	resp := &VolumeShareResponse{Segments: make([]VolumeShareSegment, 0, len(types))}
	for _, kt := range types {
		segment := byType[domain.KeywordType(kt)]
		resp.Segments = append(resp.Segments, VolumeShareSegment{
			KeywordType: kt,
			Series:      dataprocessing.SeriesByRegion(segment, domain.MetricVolumeShare),
			Benchmark:   dataprocessing.Benchmark(segment, domain.MetricVolumeShare),
			Keywords:    splitKeywordColumns(distinctKeywords(segment)),
		})
	}
	return resp, nil
}

// KeywordTrends builds view 2: for every platform in fixed order and every
// selected metric, a keyword-keyed series. Platforms without rows come
// back as named empty entries.
func (s *DashboardService) KeywordTrends(ctx context.Context, req KeywordTrendsRequest) (*KeywordTrendsResponse, error) {
	metrics, err := resolveMetrics(req.Metrics)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.store.Marketing(ctx)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to load marketing workbook", err)
	}
	if len(snapshot.Records) == 0 {
		return nil, ErrNoData
	}

	filter := dataprocessing.Filter{
		Regions:      req.Regions,
		Categories:   req.Categories,
		KeywordTypes: parseKeywordTypes(req.KeywordTypes),
		Keywords:     req.Keywords,
	}
	filtered := filter.Apply(snapshot.Records)

	s.recordQuery(ctx, "keyword_trends")

	byPlatform := make(map[domain.Platform][]domain.KeywordRecord)
	for _, rec := range filtered {
		byPlatform[rec.Platform] = append(byPlatform[rec.Platform], rec)
	}

	resp := &KeywordTrendsResponse{Trends: make([]PlatformMetricTrend, 0, len(domain.AllPlatforms)*len(metrics))}
	for _, platform := range domain.AllPlatforms {
		rows := byPlatform[platform]
		for _, m := range metrics {
			trend := PlatformMetricTrend{
				Platform: platform.String(),
				Metric:   string(m),
			}
			if len(rows) == 0 {
				trend.NoData = true
				trend.Series = []domain.TrendPoint{}
			} else {
				trend.Series = dataprocessing.SeriesByKeyword(rows, m)
			}
			resp.Trends = append(resp.Trends, trend)
		}
	}
	return resp, nil
}

// BrandStrengthTrends builds view 3: per platform, region-keyed strength
// series. Platforms without rows are skipped.
func (s *DashboardService) BrandStrengthTrends(ctx context.Context, req BrandStrengthRequest) (*BrandStrengthResponse, error) {
	snapshot, err := s.store.BrandStrength(ctx)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to load brand strength workbook", err)
	}
	if len(snapshot.Records) == 0 {
		return nil, ErrNoData
	}

	filter := dataprocessing.BrandFilter{
		Regions:    req.Regions,
		Categories: req.Categories,
	}
	filtered := filter.Apply(snapshot.Records)
	if len(filtered) == 0 {
		return nil, ErrNoMatchingRows
	}

	s.recordQuery(ctx, "brand_strength")

	byPlatform := make(map[domain.Platform][]domain.BrandStrengthRecord)
	for _, rec := range filtered {
		byPlatform[rec.Platform] = append(byPlatform[rec.Platform], rec)
	}

	resp := &BrandStrengthResponse{Trends: make([]BrandStrengthTrend, 0, len(byPlatform))}
	for _, platform := range domain.AllPlatforms {
		rows := byPlatform[platform]
		if len(rows) == 0 {
			continue
		}
		resp.Trends = append(resp.Trends, BrandStrengthTrend{
			Platform: platform.String(),
			Series:   dataprocessing.BrandStrengthSeriesByRegion(rows),
		})
	}
	return resp, nil
}

func (s *DashboardService) recordQuery(ctx context.Context, view string) {
	if s.metrics == nil {
		return
	}
	s.metrics.TrendQueriesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("view", view)))
}

// resolveMetrics maps metric display names to domain metrics, defaulting
// to Volume Share when none are selected.
func resolveMetrics(names []string) ([]domain.Metric, error) {
	if len(names) == 0 {
		return []domain.Metric{domain.MetricVolumeShare}, nil
	}
	metrics := make([]domain.Metric, 0, len(names))
	for _, name := range names {
		m, ok := domain.ParseMetric(name)
		if !ok {
			return nil, apperrors.NewAppValidationError("unknown metric: " + name)
		}
		metrics = append(metrics, m)
	}
	return metrics, nil
}

func parsePlatforms(names []string) []domain.Platform {
	if len(names) == 0 {
		return nil
	}
	platforms := make([]domain.Platform, 0, len(names))
	for _, name := range names {
		platforms = append(platforms, domain.ParsePlatform(name))
	}
	return platforms
}

func parseKeywordTypes(names []string) []domain.KeywordType {
	if len(names) == 0 {
		return nil
	}
	types := make([]domain.KeywordType, 0, len(names))
	for _, name := range names {
		types = append(types, domain.ParseKeywordType(name))
	}
	return types
}

func distinctKeywords(records []domain.KeywordRecord) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		if rec.Keyword != "" {
			seen[rec.Keyword] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// splitKeywordColumns splits keywords into two columns, ceil half left.
func splitKeywordColumns(keywords []string) KeywordColumns {
	mid := (len(keywords) + 1) / 2
	cols := KeywordColumns{
		Left:  keywords[:mid],
		Right: keywords[mid:],
	}
	if cols.Left == nil {
		cols.Left = []string{}
	}
	if cols.Right == nil {
		cols.Right = []string{}
	}
	return cols
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
