package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrateCapacity(t *testing.T) {
	tests := []struct {
		name          string
		timeS         []float64
		currentA      []float64
		wantCharge    []float64
		wantDischarge []float64
	}{
		{
			name:          "charge then discharge",
			timeS:         []float64{0, 1, 2},
			currentA:      []float64{0, 2, -3},
			wantCharge:    []float64{0, 2.0 / 3600, 2.0 / 3600},
			wantDischarge: []float64{0, 0, 3.0 / 3600},
		},
		{
			name:          "zero current carries forward",
			timeS:         []float64{0, 10, 20},
			currentA:      []float64{1, 0, 0},
			wantCharge:    []float64{0, 0, 0},
			wantDischarge: []float64{0, 0, 0},
		},
		{
			name:          "single sample",
			timeS:         []float64{42},
			currentA:      []float64{5},
			wantCharge:    []float64{0},
			wantDischarge: []float64{0},
		},
		{
			name:          "empty",
			timeS:         nil,
			currentA:      nil,
			wantCharge:    []float64{},
			wantDischarge: []float64{},
		},
		{
			name:          "negative time step clamped to zero",
			timeS:         []float64{0, 10, 5},
			currentA:      []float64{0, 1, 1},
			wantCharge:    []float64{0, 10.0 / 3600, 10.0 / 3600},
			wantDischarge: []float64{0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			charge, discharge := IntegrateCapacity(tt.timeS, tt.currentA)

			assert.Equal(t, tt.wantCharge, charge)
			assert.Equal(t, tt.wantDischarge, discharge)
		})
	}
}

func TestIntegrateCapacityMonotonic(t *testing.T) {
	timeS := []float64{0, 30, 60, 90, 120, 150, 180, 210}
	currentA := []float64{0, 1.5, 2.0, 0, -1.2, -2.5, 0, -0.8}

	charge, discharge := IntegrateCapacity(timeS, currentA)

	require.Len(t, charge, len(timeS))
	require.Len(t, discharge, len(timeS))
	assert.Zero(t, charge[0])
	assert.Zero(t, discharge[0])

	for i := 1; i < len(timeS); i++ {
		assert.GreaterOrEqual(t, charge[i], charge[i-1], "charge must be non-decreasing at %d", i)
		assert.GreaterOrEqual(t, discharge[i], discharge[i-1], "discharge must be non-decreasing at %d", i)
	}
}
