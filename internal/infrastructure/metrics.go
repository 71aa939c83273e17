package infrastructure

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics holds the application-level instruments recorded by the
// HTTP layer and the dashboard services.
type BusinessMetrics struct {
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	DatasetReloadsTotal metric.Int64Counter
	TrendQueriesTotal   metric.Int64Counter
	ExportsTotal        metric.Int64Counter
}

// CreateBusinessMetrics registers the instruments on the given meter.
func CreateBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	m := &BusinessMetrics{}
	var err error

	m.HTTPRequestsTotal, err = meter.Int64Counter("http_requests_total",
		metric.WithDescription("Total HTTP requests processed"))
	if err != nil {
		return nil, fmt.Errorf("http_requests_total: %w", err)
	}

	m.HTTPRequestDuration, err = meter.Float64Histogram("http_request_duration_seconds",
		metric.WithDescription("HTTP request latency in seconds"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("http_request_duration_seconds: %w", err)
	}

	m.HTTPActiveRequests, err = meter.Int64UpDownCounter("http_active_requests",
		metric.WithDescription("In-flight HTTP requests"))
	if err != nil {
		return nil, fmt.Errorf("http_active_requests: %w", err)
	}

	m.DatasetReloadsTotal, err = meter.Int64Counter("dataset_reloads_total",
		metric.WithDescription("Manual dataset reload requests"))
	if err != nil {
		return nil, fmt.Errorf("dataset_reloads_total: %w", err)
	}

	m.TrendQueriesTotal, err = meter.Int64Counter("trend_queries_total",
		metric.WithDescription("Dashboard trend queries served"))
	if err != nil {
		return nil, fmt.Errorf("trend_queries_total: %w", err)
	}

	m.ExportsTotal, err = meter.Int64Counter("exports_total",
		metric.WithDescription("CSV exports produced"))
	if err != nil {
		return nil, fmt.Errorf("exports_total: %w", err)
	}

	return m, nil
}
