package dataprocessing

// RenumberCycles relabels raw instrument cycle indices into a dense, strictly
// increasing scheme starting at 1. The raw label is treated purely as a
// change detector: any change between consecutive time-sorted samples starts
// a new cycle, which tolerates counter resets, non-monotonic numbering and
// gaps. A constant (or single-valued) label column yields one cycle holding
// every sample.
func RenumberCycles(raw []float64) []int {
	if len(raw) == 0 {
		return nil
	}

	dense := make([]int, len(raw))
	current := 1
	prev := raw[0]
	dense[0] = current

	for i := 1; i < len(raw); i++ {
		if raw[i] != prev {
			current++
			prev = raw[i]
		}
		dense[i] = current
	}
	return dense
}
