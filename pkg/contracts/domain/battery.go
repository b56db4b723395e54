package domain

// RawSample is one sampled timestep from a cycle-tester export. Only the
// fields the preprocessing core consumes are carried; reported capacity,
// energy, resistance and temperature columns are stripped by the parser so
// the core can never depend on them.
type RawSample struct {
	BatteryID  string  `json:"battery_id"`
	TestTimeS  float64 `json:"test_time_s"`
	CycleIndex float64 `json:"cycle_index"`
	CurrentA   float64 `json:"current_a"`
	VoltageV   float64 `json:"voltage_v"`
}

// CycleRecord holds one reconstructed charge/discharge cycle. All five
// sequences have equal length; both capacity sequences start at zero at the
// first sample of the cycle.
type CycleRecord struct {
	CycleIndex          int       `json:"cycle_number"`
	TimeS               []float64 `json:"time_in_s"`
	CurrentA            []float64 `json:"current_in_A"`
	VoltageV            []float64 `json:"voltage_in_V"`
	ChargeCapacityAh    []float64 `json:"charge_capacity_in_Ah"`
	DischargeCapacityAh []float64 `json:"discharge_capacity_in_Ah"`
}

// CellMetadata holds the fixed cell parameters attached to every output
// record. These are configuration, not derived data.
type CellMetadata struct {
	FormFactor       string  `json:"form_factor"`
	AnodeMaterial    string  `json:"anode_material"`
	CathodeMaterial  string  `json:"cathode_material"`
	MaxVoltageLimitV float64 `json:"max_voltage_limit_in_V"`
	MinVoltageLimitV float64 `json:"min_voltage_limit_in_V"`
	SOCIntervalLow   float64 `json:"soc_interval_low"`
	SOCIntervalHigh  float64 `json:"soc_interval_high"`
}

// CellRecord is the canonical per-battery output container: the cleaned
// cycle sequence plus the estimated nominal capacity and fixed metadata.
// Immutable once built.
type CellRecord struct {
	CellID            string        `json:"cell_id"`
	FormFactor        string        `json:"form_factor"`
	AnodeMaterial     string        `json:"anode_material"`
	CathodeMaterial   string        `json:"cathode_material"`
	Cycles            []CycleRecord `json:"cycle_data"`
	NominalCapacityAh float64       `json:"nominal_capacity_in_Ah"`
	MaxVoltageLimitV  float64       `json:"max_voltage_limit_in_V"`
	MinVoltageLimitV  float64       `json:"min_voltage_limit_in_V"`
	SOCInterval       []float64     `json:"SOC_interval"`
}

// CellStatus reports the outcome of one cell's pipeline run.
type CellStatus string

const (
	CellStatusProcessed CellStatus = "processed"
	CellStatusSkipped   CellStatus = "skipped"
)

// CellOutcome is one row of the batch summary.
type CellOutcome struct {
	CellID            string     `json:"cell_id"`
	Status            CellStatus `json:"status"`
	SkipReason        string     `json:"skip_reason,omitempty"`
	CyclesKept        int        `json:"cycles_kept"`
	NominalCapacityAh float64    `json:"nominal_capacity_in_Ah,omitempty"`
	OutputPath        string     `json:"output_path,omitempty"`
}

// BatchSummary aggregates the outcome of a full preprocessing run.
type BatchSummary struct {
	RunID     string        `json:"run_id"`
	Processed int           `json:"processed"`
	Skipped   int           `json:"skipped"`
	Outcomes  []CellOutcome `json:"outcomes"`
}
