package dataprocessing

import (
	"math"
	"sort"

	"battcli/pkg/contracts/domain"
)

// FilterConfig holds the outlier filter tuning parameters.
type FilterConfig struct {
	// MedianWindow is the median filter window used when a cell has at
	// least MedianWindow cycles.
	MedianWindow int
	// ShortWindow caps the window for cells with fewer cycles; the
	// effective window is min(cycles, ShortWindow), rounded down to odd.
	ShortWindow int
	// DeviationFactor scales the median absolute deviation into the
	// rejection threshold.
	DeviationFactor float64
	// DischargeFloorAh drops cycles whose peak discharge capacity does not
	// exceed this floor.
	DischargeFloorAh float64
}

// DefaultFilterConfig returns the standard filter parameters.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MedianWindow:     21,
		ShortWindow:      5,
		DeviationFactor:  3,
		DischargeFloorAh: 0.1,
	}
}

// FilterOutliers returns the subsequence of candidate cycles surviving the
// windowed-median outlier rejection and the discharge-capacity floor.
// Surviving cycles keep their original cycle indices.
//
// The rejection threshold is a single global scalar per cell:
// DeviationFactor times the median absolute deviation of the peak discharge
// series from its median-filtered reference. A cycle survives iff its
// deviation is strictly below the threshold and its peak discharge capacity
// exceeds the floor. When the capacity trajectory is extremely smooth the
// threshold collapses toward zero and the filter can reject every cycle,
// including genuine ones; callers must treat an empty result as an expected
// outcome, not an error.
func FilterOutliers(cycles []domain.CycleRecord, cfg FilterConfig) []domain.CycleRecord {
	if len(cycles) == 0 {
		return nil
	}

	qd := make([]float64, len(cycles))
	for i, c := range cycles {
		qd[i] = PeakDischarge(c)
	}

	window := cfg.MedianWindow
	if len(qd) < cfg.MedianWindow {
		window = len(qd)
		if window > cfg.ShortWindow {
			window = cfg.ShortWindow
		}
	}
	window = roundDownToOdd(window)

	qdMed := medianFilter(qd, window)

	dev := make([]float64, len(qd))
	for i := range qd {
		dev[i] = math.Abs(qd[i] - qdMed[i])
	}
	threshold := cfg.DeviationFactor * median(dev)

	var kept []domain.CycleRecord
	for i, c := range cycles {
		if dev[i] < threshold && qd[i] > cfg.DischargeFloorAh {
			kept = append(kept, c)
		}
	}
	return kept
}

// PeakDischarge returns the maximum discharge capacity observed within one
// cycle, or 0 for an empty sequence.
func PeakDischarge(c domain.CycleRecord) float64 {
	peak := 0.0
	for _, v := range c.DischargeCapacityAh {
		if v > peak {
			peak = v
		}
	}
	return peak
}

// medianFilter applies a centered running median of the given odd window,
// treating values beyond either boundary as zero. The zero padding matters:
// it pulls the reference down near the edges of a cell's lifetime, and the
// cleaned output is only reproducible if that behavior is preserved.
// A window of 1 returns the input unchanged, which effectively disables
// filtering for extremely short lifetimes.
func medianFilter(x []float64, window int) []float64 {
	out := make([]float64, len(x))
	if window <= 1 {
		copy(out, x)
		return out
	}

	half := window / 2
	buf := make([]float64, window)
	for i := range x {
		buf = buf[:0]
		for j := i - half; j <= i+half; j++ {
			if j < 0 || j >= len(x) {
				buf = append(buf, 0)
			} else {
				buf = append(buf, x[j])
			}
		}
		sort.Float64s(buf)
		out[i] = buf[half]
	}
	return out
}

// median returns the median of x, averaging the two middle elements for
// even-length input. Returns 0 for empty input.
func median(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	s := make([]float64, len(x))
	copy(s, x)
	sort.Float64s(s)

	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}

// roundDownToOdd clamps n to the nearest odd value not above it, with a
// minimum of 1.
func roundDownToOdd(n int) int {
	if n < 1 {
		return 1
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}
