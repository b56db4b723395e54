package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"battcli/pkg/contracts/domain"
)

// summaryHeaders are the columns of the batch summary CSV.
var summaryHeaders = []string{
	"CellID", "Status", "SkipReason", "CyclesKept", "NominalCapacityAh", "OutputPath",
}

// WriteSummary writes the per-cell outcome table for one batch run to
// <outDir>/summary.csv.
func (w *Writer) WriteSummary(summary domain.BatchSummary) (string, error) {
	if err := os.MkdirAll(w.outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(w.outDir, "summary.csv")
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(summaryHeaders); err != nil {
		return "", fmt.Errorf("failed to write headers: %w", err)
	}

	for i, outcome := range summary.Outcomes {
		capacity := ""
		if outcome.Status == domain.CellStatusProcessed {
			capacity = strconv.FormatFloat(outcome.NominalCapacityAh, 'f', 6, 64)
		}
		record := []string{
			outcome.CellID,
			string(outcome.Status),
			outcome.SkipReason,
			strconv.Itoa(outcome.CyclesKept),
			capacity,
			outcome.OutputPath,
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	w.logger.Info("batch summary written",
		"path", path,
		"processed", summary.Processed,
		"skipped", summary.Skipped,
	)
	return path, nil
}
