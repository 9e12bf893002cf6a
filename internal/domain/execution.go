package domain

// ExecutionParams holds friction parameters calibrated from the high/low
// spread proxy. Calibrated once per run from the full price history and
// applied uniformly to every fill; never recalibrated per bar.
type ExecutionParams struct {
	MeanSpreadPct float64 // mean percentage spread across valid bars
	HalfSpreadPct float64 // mean spread / 2 (symmetric bid/ask assumption)
	SlippagePct   float64 // half spread * slippage multiplier
	CommissionPct float64 // percentage commission per trade side
}
