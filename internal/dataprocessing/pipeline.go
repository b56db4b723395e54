package dataprocessing

import (
	"context"
	"log/slog"

	apperrors "battcli/internal/errors"
	"battcli/pkg/contracts/domain"
)

// Config holds the pipeline tuning parameters and the fixed cell metadata
// attached to every output record.
type Config struct {
	Filter          FilterConfig
	EstimatorCycles int
	Metadata        domain.CellMetadata
}

// DefaultConfig returns the standard pipeline configuration with the default
// cell metadata (unknown chemistry, 4.2/2.7 V limits, full SOC interval).
func DefaultConfig() Config {
	return Config{
		Filter:          DefaultFilterConfig(),
		EstimatorCycles: 5,
		Metadata: domain.CellMetadata{
			FormFactor:       "unknown",
			AnodeMaterial:    "unknown",
			CathodeMaterial:  "unknown",
			MaxVoltageLimitV: 4.2,
			MinVoltageLimitV: 2.7,
			SOCIntervalLow:   0,
			SOCIntervalHigh:  1,
		},
	}
}

// Pipeline runs the full cycle reconstruction and cleaning sequence for one
// cell at a time. It holds no mutable state between calls, so a single
// Pipeline is safe for concurrent use across cells.
type Pipeline struct {
	logger *slog.Logger
	cfg    Config
}

// NewPipeline creates a pipeline with the given logger and configuration.
// A nil logger falls back to slog.Default().
func NewPipeline(logger *slog.Logger, cfg Config) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.EstimatorCycles <= 0 {
		cfg.EstimatorCycles = 5
	}
	return &Pipeline{logger: logger, cfg: cfg}
}

// ProcessCell converts one battery's time-sorted raw samples into a cleaned
// CellRecord. It returns a *apperrors.SkipError for the two expected
// non-fatal outcomes: no input samples, and no cycles surviving the outlier
// filter. Re-running on the same input yields an identical record.
func (p *Pipeline) ProcessCell(ctx context.Context, cellID string, samples []domain.RawSample) (*domain.CellRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(samples) == 0 {
		return nil, apperrors.NewSkip(cellID, apperrors.SkipReasonEmptyInput, "no raw samples")
	}

	candidates := AssembleCycles(samples)
	p.logger.DebugContext(ctx, "assembled candidate cycles",
		"cell_id", cellID,
		"samples", len(samples),
		"cycles", len(candidates),
	)

	clean := FilterOutliers(candidates, p.cfg.Filter)
	if len(clean) == 0 {
		return nil, apperrors.NewSkip(cellID, apperrors.SkipReasonAllCyclesFiltered, "outlier filter rejected every cycle")
	}

	nominal := EstimateNominalCapacity(clean, p.cfg.EstimatorCycles)

	p.logger.InfoContext(ctx, "cell processed",
		"cell_id", cellID,
		"cycles_candidate", len(candidates),
		"cycles_kept", len(clean),
		"nominal_capacity_ah", nominal,
	)

	meta := p.cfg.Metadata
	return &domain.CellRecord{
		CellID:            cellID,
		FormFactor:        meta.FormFactor,
		AnodeMaterial:     meta.AnodeMaterial,
		CathodeMaterial:   meta.CathodeMaterial,
		Cycles:            clean,
		NominalCapacityAh: nominal,
		MaxVoltageLimitV:  meta.MaxVoltageLimitV,
		MinVoltageLimitV:  meta.MinVoltageLimitV,
		SOCInterval:       []float64{meta.SOCIntervalLow, meta.SOCIntervalHigh},
	}, nil
}
