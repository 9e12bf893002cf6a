package domain

// MicrostructureConfig holds the entry-filter parameters.
// Supplied at strategy construction and never mutated afterward.
type MicrostructureConfig struct {
	// MinVolumePctAvg is the minimum bar volume as a fraction of the 20-bar
	// volume average (0.3 means trade only when volume >= 30% of average).
	MinVolumePctAvg float64

	// MaxSpreadPct is the maximum acceptable per-bar spread estimate.
	// Nil means unbounded.
	MaxSpreadPct *float64

	// MinHoldingPeriod is the minimum number of bars between closing one
	// position and opening the next.
	MinHoldingPeriod int
}

// DefaultMicrostructureConfig matches the parameters used for the MES runs.
var DefaultMicrostructureConfig = MicrostructureConfig{
	MinVolumePctAvg:  0.3,
	MaxSpreadPct:     nil,
	MinHoldingPeriod: 1,
}
