package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"brandpulse/internal/config"
	"brandpulse/internal/dataprocessing"
	"brandpulse/internal/dataset"
	"brandpulse/internal/exporter"
	"brandpulse/internal/infrastructure"
	"brandpulse/pkg/contracts/domain"
)

func main() {
	marketingFile := flag.String("marketing", "", "marketing workbook path (defaults to configured path)")
	brandFile := flag.String("brand", "", "brand strength workbook path (defaults to configured path)")
	outDir := flag.String("out", "", "output directory for CSV reports (defaults to configured reports dir)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	if *marketingFile == "" {
		*marketingFile = cfg.Paths.MarketingFile
	}
	if *brandFile == "" {
		*brandFile = cfg.Paths.BrandStrengthFile
	}
	if *outDir == "" {
		*outDir = cfg.Paths.ReportsDir
	}

	ctx := context.Background()
	store := dataset.NewStore(*marketingFile, *brandFile, logger, nil)

	marketing, err := store.Marketing(ctx)
	if err != nil {
		logger.Error("Failed to load marketing workbook",
			slog.String("path", *marketingFile),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	brand, err := store.BrandStrength(ctx)
	if err != nil {
		logger.Error("Failed to load brand strength workbook",
			slog.String("path", *brandFile),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Workbooks loaded",
		slog.Int("marketing_rows", len(marketing.Records)),
		slog.Int("brand_strength_rows", len(brand.Records)))

	reports := exporter.NewReportExporter(exporter.NewCSVWriter(*outDir, logger))

	if err := reports.ExportMarketingTable("marketing_canonical.csv", marketing.Records); err != nil {
		logger.Error("Failed to export marketing table", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := reports.ExportBrandStrengthTable("brand_strength_canonical.csv", brand.Records); err != nil {
		logger.Error("Failed to export brand strength table", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Per-view trend series: volume share by region, keyword series per
	// platform, brand strength by region.
	volumeByRegion := dataprocessing.SeriesByRegion(marketing.Records, domain.MetricVolumeShare)
	if err := reports.ExportTrendSeries(filepath.Join("trends", "volume_share_by_region.csv"), "Region", volumeByRegion); err != nil {
		logger.Error("Failed to export volume share trends", slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, platform := range domain.AllPlatforms {
		var rows []domain.KeywordRecord
		for _, rec := range marketing.Records {
			if rec.Platform == platform {
				rows = append(rows, rec)
			}
		}
		if len(rows) == 0 {
			logger.Info("No rows for platform, skipping trend export",
				slog.String("platform", platform.String()))
			continue
		}
		series := dataprocessing.SeriesByKeyword(rows, domain.MetricVolumeShare)
		name := filepath.Join("trends", "keywords_"+string(platform)+".csv")
		if err := reports.ExportTrendSeries(name, "Keyword", series); err != nil {
			logger.Error("Failed to export keyword trends",
				slog.String("platform", platform.String()),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	strengthByRegion := dataprocessing.BrandStrengthSeriesByRegion(brand.Records)
	if err := reports.ExportTrendSeries(filepath.Join("trends", "brand_strength_by_region.csv"), "Region", strengthByRegion); err != nil {
		logger.Error("Failed to export brand strength trends", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Export complete", slog.String("out_dir", *outDir))
}
