// Package dataset owns the lifecycle of the canonical tables: loading the
// source workbooks, memoizing the result keyed by file content, and
// invalidating on demand. Snapshots are immutable once built and safe to
// share across concurrent readers.
package dataset

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/singleflight"

	"brandpulse/internal/dataprocessing"
	"brandpulse/pkg/contracts/domain"
)

// ReloadNotifier receives a notification whenever cached snapshots are
// explicitly invalidated, so open dashboards can refetch.
type ReloadNotifier interface {
	NotifyReload(reason string)
}

// Snapshot is one immutable load of the marketing workbook.
type Snapshot struct {
	ID         string
	SourceHash string
	LoadedAt   time.Time
	Records    []domain.KeywordRecord
	Columns    *dataprocessing.ColumnMap
}

// BrandSnapshot is one immutable load of the brand-strength workbook.
type BrandSnapshot struct {
	ID         string
	SourceHash string
	LoadedAt   time.Time
	Records    []domain.BrandStrengthRecord
	Columns    *dataprocessing.BrandColumnMap
}

// Store memoizes the canonical tables keyed by the content hash of their
// source files. A changed file is picked up on the next read; an unchanged
// file is never re-parsed. Concurrent loads of the same content collapse
// into a single parse via singleflight.
type Store struct {
	marketingPath string
	brandPath     string
	logger        *slog.Logger
	notifier      ReloadNotifier

	mu        sync.RWMutex
	marketing *Snapshot
	brand     *BrandSnapshot

	group singleflight.Group

	loadCounter metric.Int64Counter
	rowGauge    metric.Int64Gauge
}

// NewStore creates a dataset store for the two configured workbook paths.
// notifier may be nil.
func NewStore(marketingPath, brandPath string, logger *slog.Logger, notifier ReloadNotifier) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	meter := otel.Meter("brandpulse/dataset")
	loadCounter, _ := meter.Int64Counter("dataset_loads_total",
		metric.WithDescription("Number of workbook parses performed"))
	rowGauge, _ := meter.Int64Gauge("dataset_rows",
		metric.WithDescription("Rows in the current canonical tables"))

	return &Store{
		marketingPath: marketingPath,
		brandPath:     brandPath,
		logger:        logger.With(slog.String("component", "dataset_store")),
		notifier:      notifier,
		loadCounter:   loadCounter,
		rowGauge:      rowGauge,
	}
}

// Marketing returns the canonical keyword table, re-reading the source file
// only when its content hash differs from the cached snapshot's.
func (s *Store) Marketing(ctx context.Context) (*Snapshot, error) {
	hash, err := hashFile(s.marketingPath)
	if err != nil {
		return nil, fmt.Errorf("hash marketing workbook: %w", err)
	}

	s.mu.RLock()
	cached := s.marketing
	s.mu.RUnlock()
	if cached != nil && cached.SourceHash == hash {
		return cached, nil
	}

	v, err, _ := s.group.Do("marketing:"+hash, func() (interface{}, error) {
		records, columns, err := dataprocessing.ParseMarketingWorkbook(s.marketingPath, s.logger)
		if err != nil {
			return nil, err
		}
		snap := &Snapshot{
			ID:         uuid.NewString(),
			SourceHash: hash,
			LoadedAt:   time.Now(),
			Records:    records,
			Columns:    columns,
		}
		s.mu.Lock()
		s.marketing = snap
		s.mu.Unlock()

		s.loadCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("table", "marketing")))
		s.rowGauge.Record(ctx, int64(len(records)), metric.WithAttributes(attribute.String("table", "marketing")))
		s.logger.InfoContext(ctx, "marketing snapshot built",
			slog.String("snapshot_id", snap.ID),
			slog.String("source_hash", hash[:12]),
			slog.Int("rows", len(records)))
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

// BrandStrength returns the canonical brand-strength table with the same
// memoization semantics as Marketing.
func (s *Store) BrandStrength(ctx context.Context) (*BrandSnapshot, error) {
	hash, err := hashFile(s.brandPath)
	if err != nil {
		return nil, fmt.Errorf("hash brand strength workbook: %w", err)
	}

	s.mu.RLock()
	cached := s.brand
	s.mu.RUnlock()
	if cached != nil && cached.SourceHash == hash {
		return cached, nil
	}

	v, err, _ := s.group.Do("brand:"+hash, func() (interface{}, error) {
		records, columns, err := dataprocessing.ParseBrandStrengthWorkbook(s.brandPath, s.logger)
		if err != nil {
			return nil, err
		}
		snap := &BrandSnapshot{
			ID:         uuid.NewString(),
			SourceHash: hash,
			LoadedAt:   time.Now(),
			Records:    records,
			Columns:    columns,
		}
		s.mu.Lock()
		s.brand = snap
		s.mu.Unlock()

		s.loadCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("table", "brand_strength")))
		s.rowGauge.Record(ctx, int64(len(records)), metric.WithAttributes(attribute.String("table", "brand_strength")))
		s.logger.InfoContext(ctx, "brand strength snapshot built",
			slog.String("snapshot_id", snap.ID),
			slog.String("source_hash", hash[:12]),
			slog.Int("rows", len(records)))
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*BrandSnapshot), nil
}

// Invalidate drops both cached snapshots and notifies listeners. The next
// read re-parses the source files regardless of content hash.
func (s *Store) Invalidate(reason string) {
	s.mu.Lock()
	s.marketing = nil
	s.brand = nil
	s.mu.Unlock()

	s.logger.Info("dataset snapshots invalidated", slog.String("reason", reason))
	if s.notifier != nil {
		s.notifier.NotifyReload(reason)
	}
}

// hashFile returns the hex SHA-256 of the file's content.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
