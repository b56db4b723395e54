// Command processor converts raw battery cycle-tester exports into cleaned
// per-cell records ready for capacity-fade analysis.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"battcli/internal/config"
	"battcli/internal/dataprocessing"
	apperrors "battcli/internal/errors"
	"battcli/internal/exporter"
	"battcli/internal/files"
	"battcli/internal/infrastructure"
	"battcli/internal/parser"
	"battcli/pkg/contracts/domain"
)

func main() {
	inDir := flag.String("in", "", "input directory for cycle-tester exports (defaults to configured paths.input_dir)")
	outDir := flag.String("out", "", "output directory for cleaned cell records (defaults to configured paths.output_dir)")
	workers := flag.Int("workers", 0, "number of cells processed concurrently (0 = configured value)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
		cfg = &config.Config{
			Logging: config.LoggingConfig{
				Level:  "info",
				Format: "json",
				Output: "console",
			},
			Paths:    config.PathsConfig{InputDir: "data/raw", OutputDir: "data/processed"},
			Pipeline: config.PipelineConfig{MedianWindow: 21, ShortWindow: 5, DeviationFactor: 3, DischargeFloorAh: 0.1, EstimatorCycles: 5, Workers: 4},
			Cell:     config.CellConfig{FormFactor: "unknown", AnodeMaterial: "unknown", CathodeMaterial: "unknown", MaxVoltageLimitV: 4.2, MinVoltageLimitV: 2.7, SOCIntervalLow: 0, SOCIntervalHigh: 1},
		}
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	summary, err := runBatch(context.Background(), logger, cfg, *inDir, *outDir, *workers)
	if err != nil {
		logger.Error("batch failed", "error", err)
		os.Exit(1)
	}

	logger.Info("batch complete",
		"run_id", summary.RunID,
		"processed", summary.Processed,
		"skipped", summary.Skipped,
	)
}

// runBatch discovers exports, groups samples by battery identifier, runs the
// per-cell pipelines concurrently and writes outputs plus a summary table.
// One cell's failure never aborts the batch.
func runBatch(ctx context.Context, logger *slog.Logger, cfg *config.Config, inDir, outDir string, workers int) (domain.BatchSummary, error) {
	if inDir == "" {
		inDir = cfg.Paths.InputDir
	}
	if outDir == "" {
		outDir = cfg.Paths.OutputDir
	}
	if workers <= 0 {
		workers = cfg.Pipeline.Workers
	}
	if workers <= 0 {
		workers = 1
	}

	runID := uuid.NewString()
	logger = logger.With("run_id", runID)
	summary := domain.BatchSummary{RunID: runID}

	discovery := files.NewDiscovery(".")
	inputs, err := discovery.FindInputFiles(inDir)
	if err != nil {
		return summary, fmt.Errorf("discover input files: %w", err)
	}
	if len(inputs) == 0 {
		logger.Warn("no input files found", "dir", inDir)
		return summary, nil
	}
	logger.Info("found input files", "count", len(inputs), "dir", inDir)

	p := parser.NewParser(logger)
	var samples []domain.RawSample
	for _, file := range inputs {
		fileSamples, err := p.ParseFile(file.Path)
		if err != nil {
			logger.Warn("skipping unreadable file", "file", file.Name, "error", err)
			continue
		}
		samples = append(samples, fileSamples...)
	}

	groups := parser.GroupByBattery(samples)
	ids := parser.BatteryIDs(groups)
	logger.Info("grouped samples by battery", "cells", len(ids), "samples", len(samples))

	pipe := dataprocessing.NewPipeline(logger, pipelineConfig(cfg))
	writer := exporter.NewWriter(outDir, logger)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, id := range ids {
		cellID := id
		cellSamples := groups[cellID]
		g.Go(func() error {
			outcome := processCell(gctx, logger, pipe, writer, cellID, cellSamples)
			mu.Lock()
			summary.Outcomes = append(summary.Outcomes, outcome)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary, err
	}

	sort.Slice(summary.Outcomes, func(i, j int) bool {
		return summary.Outcomes[i].CellID < summary.Outcomes[j].CellID
	})
	for _, outcome := range summary.Outcomes {
		if outcome.Status == domain.CellStatusProcessed {
			summary.Processed++
		} else {
			summary.Skipped++
		}
	}

	if _, err := writer.WriteSummary(summary); err != nil {
		return summary, fmt.Errorf("write batch summary: %w", err)
	}
	return summary, nil
}

// processCell runs one cell's pipeline and serialization. All failures,
// including panics on corrupt data, are contained here and reported as a
// skipped outcome.
func processCell(ctx context.Context, logger *slog.Logger, pipe *dataprocessing.Pipeline, writer *exporter.Writer, cellID string, samples []domain.RawSample) (outcome domain.CellOutcome) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("cell processing panicked", "cell_id", cellID, "panic", fmt.Sprint(r))
			outcome = domain.CellOutcome{
				CellID:     cellID,
				Status:     domain.CellStatusSkipped,
				SkipReason: string(apperrors.SkipReasonProcessingFailed),
			}
		}
	}()

	cell, err := pipe.ProcessCell(ctx, cellID, samples)
	if err != nil {
		if skip, ok := apperrors.AsSkip(err); ok {
			logger.Warn("cell skipped", "cell_id", cellID, "reason", skip.Reason)
			return domain.CellOutcome{
				CellID:     cellID,
				Status:     domain.CellStatusSkipped,
				SkipReason: string(skip.Reason),
			}
		}
		logger.Error("cell processing failed", "cell_id", cellID, "error", err)
		return domain.CellOutcome{
			CellID:     cellID,
			Status:     domain.CellStatusSkipped,
			SkipReason: string(apperrors.SkipReasonProcessingFailed),
		}
	}

	path, err := writer.WriteCell(cell)
	if err != nil {
		logger.Error("failed to write cell record", "cell_id", cellID, "error", err)
		return domain.CellOutcome{
			CellID:     cellID,
			Status:     domain.CellStatusSkipped,
			SkipReason: string(apperrors.SkipReasonProcessingFailed),
		}
	}

	return domain.CellOutcome{
		CellID:            cellID,
		Status:            domain.CellStatusProcessed,
		CyclesKept:        len(cell.Cycles),
		NominalCapacityAh: cell.NominalCapacityAh,
		OutputPath:        path,
	}
}

// pipelineConfig maps the application configuration onto the pipeline's own
// config type.
func pipelineConfig(cfg *config.Config) dataprocessing.Config {
	return dataprocessing.Config{
		Filter: dataprocessing.FilterConfig{
			MedianWindow:     cfg.Pipeline.MedianWindow,
			ShortWindow:      cfg.Pipeline.ShortWindow,
			DeviationFactor:  cfg.Pipeline.DeviationFactor,
			DischargeFloorAh: cfg.Pipeline.DischargeFloorAh,
		},
		EstimatorCycles: cfg.Pipeline.EstimatorCycles,
		Metadata: domain.CellMetadata{
			FormFactor:       cfg.Cell.FormFactor,
			AnodeMaterial:    cfg.Cell.AnodeMaterial,
			CathodeMaterial:  cfg.Cell.CathodeMaterial,
			MaxVoltageLimitV: cfg.Cell.MaxVoltageLimitV,
			MinVoltageLimitV: cfg.Cell.MinVoltageLimitV,
			SOCIntervalLow:   cfg.Cell.SOCIntervalLow,
			SOCIntervalHigh:  cfg.Cell.SOCIntervalHigh,
		},
	}
}
