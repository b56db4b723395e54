// Package dataprocessing implements the cycle reconstruction and cleaning
// pipeline for raw battery cycle-tester measurements.
//
// # Architecture
//
// The pipeline runs five stages per cell, in order:
//
// 1. Renumber: relabel instrument cycle indices into a dense monotonic scheme
// 2. Assemble: partition time-sorted samples by dense index into cycle records
// 3. Integrate: derive charge/discharge capacity from current and time
// 4. Filter: drop outlier cycles via a windowed median filter plus a capacity floor
// 5. Estimate: derive a nominal capacity from the earliest clean cycles
//
// # Usage
//
//	pipeline := dataprocessing.NewPipeline(logger, dataprocessing.DefaultConfig())
//	cell, err := pipeline.ProcessCell(ctx, "Battery_17", samples)
//	if skip, ok := apperrors.AsSkip(err); ok {
//	    // non-fatal: the cell is reported as skipped
//	}
//
// # Data Flow
//
//	RawSamples → Renumber → Assemble (+Integrate) → Filter → Estimate → CellRecord
//
// Samples must already be sorted by test time; the parser package takes care
// of that. A cell whose cycles are all rejected by the filter yields a
// SkipError rather than an empty record.
package dataprocessing
