package errors

import (
	"errors"
	"fmt"
)

// SkipReason classifies why a cell produced no output record.
type SkipReason string

const (
	// SkipReasonEmptyInput means the battery identifier had zero raw samples.
	SkipReasonEmptyInput SkipReason = "EMPTY_INPUT"
	// SkipReasonAllCyclesFiltered means the outlier filter rejected every
	// candidate cycle. Expected for very smooth capacity trajectories.
	SkipReasonAllCyclesFiltered SkipReason = "ALL_CYCLES_FILTERED"
	// SkipReasonProcessingFailed means an unexpected failure was recovered
	// at the per-cell boundary.
	SkipReasonProcessingFailed SkipReason = "PROCESSING_FAILED"
)

// SkipError reports a non-fatal per-cell outcome: the cell is counted as
// skipped and the batch continues.
type SkipError struct {
	CellID  string
	Reason  SkipReason
	Message string
}

// Error implements the error interface
func (e *SkipError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("cell %s skipped: %s", e.CellID, e.Reason)
	}
	return fmt.Sprintf("cell %s skipped: %s: %s", e.CellID, e.Reason, e.Message)
}

// NewSkip creates a SkipError for the given cell
func NewSkip(cellID string, reason SkipReason, message string) *SkipError {
	return &SkipError{CellID: cellID, Reason: reason, Message: message}
}

// AsSkip extracts a SkipError from an error chain
func AsSkip(err error) (*SkipError, bool) {
	var skip *SkipError
	if errors.As(err, &skip) {
		return skip, true
	}
	return nil, false
}

// RowError reports a malformed raw sample row. The offending row is dropped
// and the rest of the cell continues.
type RowError struct {
	File  string
	Line  int
	Field string
	Err   error
}

// Error implements the error interface
func (e *RowError) Error() string {
	return fmt.Sprintf("%s line %d: bad %s: %v", e.File, e.Line, e.Field, e.Err)
}

// Unwrap returns the underlying cause
func (e *RowError) Unwrap() error {
	return e.Err
}

// NewRowError creates a RowError for a single malformed row
func NewRowError(file string, line int, field string, err error) *RowError {
	return &RowError{File: file, Line: line, Field: field, Err: err}
}

// Predefined errors for common collaborator failures
var (
	// ErrMissingColumn is returned when a required instrument column cannot
	// be located in the export header.
	ErrMissingColumn = errors.New("required column not found")
	// ErrNoInputFiles is returned when the input directory holds no exports.
	ErrNoInputFiles = errors.New("no input files found")
	// ErrEmptyFile is returned for exports with a header but no data rows.
	ErrEmptyFile = errors.New("file contains no data rows")
)
