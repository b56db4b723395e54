package dataprocessing

// secondsPerHour converts ampere-seconds to ampere-hours.
const secondsPerHour = 3600.0

// IntegrateCapacity derives cumulative charge and discharge capacity (Ah)
// from one cycle's current (A) and time (s) samples. Positive current
// accumulates into the charge sequence, negative current into the discharge
// sequence; the other sequence carries its previous value forward. Both
// sequences start at zero, so capacity accumulation resets at every cycle
// boundary.
//
// Out-of-order timestamps within a cycle are clamped to a zero time step
// rather than producing a negative capacity increment. A single-sample cycle
// yields all-zero sequences.
func IntegrateCapacity(timeS, currentA []float64) (charge, discharge []float64) {
	n := len(timeS)
	if len(currentA) < n {
		n = len(currentA)
	}
	charge = make([]float64, n)
	discharge = make([]float64, n)

	for i := 1; i < n; i++ {
		dt := timeS[i] - timeS[i-1]
		if dt < 0 {
			dt = 0
		}
		switch {
		case currentA[i] > 0:
			charge[i] = charge[i-1] + currentA[i]*dt/secondsPerHour
			discharge[i] = discharge[i-1]
		case currentA[i] < 0:
			charge[i] = charge[i-1]
			discharge[i] = discharge[i-1] - currentA[i]*dt/secondsPerHour
		default:
			charge[i] = charge[i-1]
			discharge[i] = discharge[i-1]
		}
	}
	return charge, discharge
}
