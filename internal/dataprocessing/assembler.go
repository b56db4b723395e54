package dataprocessing

import (
	"battcli/pkg/contracts/domain"
)

// AssembleCycles partitions a time-sorted per-cell sample sequence into one
// CycleRecord per dense cycle index, invoking the capacity integrator on each
// group. Every dense index is produced by at least one sample, so empty
// groups cannot occur; single-sample groups are still emitted (with zero
// capacity sequences) and left for the outlier filter's capacity floor to
// reject.
func AssembleCycles(samples []domain.RawSample) []domain.CycleRecord {
	if len(samples) == 0 {
		return nil
	}

	raw := make([]float64, len(samples))
	for i, s := range samples {
		raw[i] = s.CycleIndex
	}
	dense := RenumberCycles(raw)

	records := make([]domain.CycleRecord, 0, dense[len(dense)-1])
	start := 0
	for end := 1; end <= len(samples); end++ {
		if end < len(samples) && dense[end] == dense[start] {
			continue
		}
		group := samples[start:end]

		t := make([]float64, len(group))
		current := make([]float64, len(group))
		voltage := make([]float64, len(group))
		for i, s := range group {
			t[i] = s.TestTimeS
			current[i] = s.CurrentA
			voltage[i] = s.VoltageV
		}
		charge, discharge := IntegrateCapacity(t, current)

		records = append(records, domain.CycleRecord{
			CycleIndex:          dense[start],
			TimeS:               t,
			CurrentA:            current,
			VoltageV:            voltage,
			ChargeCapacityAh:    charge,
			DischargeCapacityAh: discharge,
		})
		start = end
	}
	return records
}
