package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "battcli/internal/errors"
	"battcli/pkg/contracts/domain"
)

// cellSamples builds a per-cell sample sequence with one charge step and one
// discharge step per cycle; dischargeA are the (positive) discharge current
// magnitudes, so with a one-hour step each cycle's peak discharge capacity
// equals its entry.
func cellSamples(dischargeA []float64) []domain.RawSample {
	var samples []domain.RawSample
	t := 0.0
	for i, amp := range dischargeA {
		label := float64(i + 1)
		samples = append(samples,
			domain.RawSample{BatteryID: "B1", TestTimeS: t, CycleIndex: label, CurrentA: 1, VoltageV: 3.6},
			domain.RawSample{BatteryID: "B1", TestTimeS: t + 3600, CycleIndex: label, CurrentA: -amp, VoltageV: 3.4},
		)
		t += 7200
	}
	return samples
}

func TestProcessCell(t *testing.T) {
	ctx := context.Background()
	pipe := NewPipeline(nil, DefaultConfig())

	samples := cellSamples([]float64{2.0, 1.0, 2.1, 1.9, 2.05})

	cell, err := pipe.ProcessCell(ctx, "Battery_7", samples)
	require.NoError(t, err)
	require.NotNil(t, cell)

	assert.Equal(t, "Battery_7", cell.CellID)
	assert.Equal(t, "unknown", cell.FormFactor)
	assert.Equal(t, 4.2, cell.MaxVoltageLimitV)
	assert.Equal(t, 2.7, cell.MinVoltageLimitV)
	assert.Equal(t, []float64{0, 1}, cell.SOCInterval)

	// The deviation threshold rejects the two early swings and keeps the
	// last three cycles under their original indices.
	require.Len(t, cell.Cycles, 3)
	assert.Equal(t, []int{3, 4, 5}, keptIndices(cell.Cycles))
	assert.InDelta(t, (2.1+1.9+2.05)/3, cell.NominalCapacityAh, 1e-9)
}

func TestProcessCellEmptyInput(t *testing.T) {
	pipe := NewPipeline(nil, DefaultConfig())

	cell, err := pipe.ProcessCell(context.Background(), "Battery_0", nil)

	assert.Nil(t, cell)
	skip, ok := apperrors.AsSkip(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.SkipReasonEmptyInput, skip.Reason)
	assert.Equal(t, "Battery_0", skip.CellID)
}

func TestProcessCellAllCyclesFiltered(t *testing.T) {
	pipe := NewPipeline(nil, DefaultConfig())

	// Identical cycles produce a zero deviation threshold, so every cycle
	// is rejected even though the data is genuine.
	samples := cellSamples([]float64{2.0, 2.0, 2.0})

	cell, err := pipe.ProcessCell(context.Background(), "Battery_1", samples)

	assert.Nil(t, cell)
	skip, ok := apperrors.AsSkip(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.SkipReasonAllCyclesFiltered, skip.Reason)
}

func TestProcessCellIdempotent(t *testing.T) {
	ctx := context.Background()
	pipe := NewPipeline(nil, DefaultConfig())
	samples := cellSamples([]float64{2.0, 1.0, 2.1, 1.9, 2.05})

	first, err := pipe.ProcessCell(ctx, "Battery_2", samples)
	require.NoError(t, err)
	second, err := pipe.ProcessCell(ctx, "Battery_2", samples)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestProcessCellCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pipe := NewPipeline(nil, DefaultConfig())

	_, err := pipe.ProcessCell(ctx, "Battery_3", cellSamples([]float64{2.0}))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessCellCapacityInvariants(t *testing.T) {
	pipe := NewPipeline(nil, DefaultConfig())

	cell, err := pipe.ProcessCell(context.Background(), "Battery_4", cellSamples([]float64{2.0, 1.0, 2.1, 1.9, 2.05}))
	require.NoError(t, err)

	for _, cycle := range cell.Cycles {
		n := len(cycle.TimeS)
		require.Equal(t, n, len(cycle.CurrentA))
		require.Equal(t, n, len(cycle.VoltageV))
		require.Equal(t, n, len(cycle.ChargeCapacityAh))
		require.Equal(t, n, len(cycle.DischargeCapacityAh))

		assert.Zero(t, cycle.ChargeCapacityAh[0])
		assert.Zero(t, cycle.DischargeCapacityAh[0])
		for i := 1; i < n; i++ {
			assert.GreaterOrEqual(t, cycle.ChargeCapacityAh[i], cycle.ChargeCapacityAh[i-1])
			assert.GreaterOrEqual(t, cycle.DischargeCapacityAh[i], cycle.DischargeCapacityAh[i-1])
		}
		assert.Greater(t, PeakDischarge(cycle), 0.1)
	}
}
