package dataprocessing

import (
	"battcli/pkg/contracts/domain"
)

// EstimateNominalCapacity derives a nominal capacity (Ah) for a cell by
// averaging the peak discharge capacity of its first min(initialCycles, len)
// cleaned cycles. The caller guarantees a non-empty sequence; an empty one
// returns 0.
func EstimateNominalCapacity(cycles []domain.CycleRecord, initialCycles int) float64 {
	n := initialCycles
	if len(cycles) < n {
		n = len(cycles)
	}
	if n <= 0 {
		return 0
	}

	sum := 0.0
	for _, c := range cycles[:n] {
		sum += PeakDischarge(c)
	}
	return sum / float64(n)
}
