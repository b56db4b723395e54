package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkipError(t *testing.T) {
	err := NewSkip("BAT01", SkipReasonAllCyclesFiltered, "outlier filter rejected every cycle")

	assert.Contains(t, err.Error(), "BAT01")
	assert.Contains(t, err.Error(), string(SkipReasonAllCyclesFiltered))
}

func TestAsSkip(t *testing.T) {
	skip := NewSkip("BAT02", SkipReasonEmptyInput, "")
	wrapped := fmt.Errorf("process cell: %w", skip)

	got, ok := AsSkip(wrapped)
	require.True(t, ok)
	assert.Equal(t, "BAT02", got.CellID)
	assert.Equal(t, SkipReasonEmptyInput, got.Reason)

	_, ok = AsSkip(stderrors.New("unrelated"))
	assert.False(t, ok)

	_, ok = AsSkip(nil)
	assert.False(t, ok)
}

func TestRowError(t *testing.T) {
	cause := stderrors.New("empty current")
	err := NewRowError("export.csv", 17, "current", cause)

	assert.Contains(t, err.Error(), "export.csv")
	assert.Contains(t, err.Error(), "line 17")
	assert.ErrorIs(t, err, cause)
}
