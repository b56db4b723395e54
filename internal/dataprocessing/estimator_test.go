package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateNominalCapacity(t *testing.T) {
	tests := []struct {
		name          string
		peaks         []float64
		initialCycles int
		want          float64
	}{
		{
			name:          "averages first five of a long lifetime",
			peaks:         []float64{2.0, 2.1, 1.9, 2.0, 2.0, 0.5, 0.4},
			initialCycles: 5,
			want:          2.0,
		},
		{
			name:          "fewer cycles than requested",
			peaks:         []float64{1.0, 3.0},
			initialCycles: 5,
			want:          2.0,
		},
		{
			name:          "single cycle",
			peaks:         []float64{1.7},
			initialCycles: 5,
			want:          1.7,
		},
		{
			name:          "empty sequence",
			peaks:         nil,
			initialCycles: 5,
			want:          0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateNominalCapacity(cyclesWithPeaks(tt.peaks), tt.initialCycles)

			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}
