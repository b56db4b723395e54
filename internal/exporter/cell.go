// Package exporter serializes cleaned cell records and batch summaries.
package exporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"battcli/pkg/contracts/domain"
)

// Writer persists pipeline output under a single output directory.
type Writer struct {
	outDir string
	logger *slog.Logger
}

// NewWriter creates a writer rooted at outDir. A nil logger falls back to
// slog.Default().
func NewWriter(outDir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{outDir: outDir, logger: logger}
}

// WriteCell serializes one CellRecord as indented JSON to
// <outDir>/<cell_id>.json and returns the written path. The cell id is
// sanitized so it is always usable as a file name.
func (w *Writer) WriteCell(cell *domain.CellRecord) (string, error) {
	if err := os.MkdirAll(w.outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(w.outDir, sanitizeFileName(cell.CellID)+".json")

	data, err := json.MarshalIndent(cell, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal cell record: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write cell record: %w", err)
	}

	w.logger.Info("cell record written",
		"cell_id", cell.CellID,
		"path", path,
		"cycles", len(cell.Cycles),
	)
	return path, nil
}

// sanitizeFileName replaces path separators and other characters that are
// unsafe in file names.
func sanitizeFileName(name string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "_",
	)
	out := replacer.Replace(name)
	if out == "" {
		out = "cell"
	}
	return out
}
