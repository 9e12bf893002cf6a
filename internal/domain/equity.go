package domain

// EquityPoint is one sample of a run's portfolio value, taken after each
// processed bar.
type EquityPoint struct {
	RunID       string
	TimestampMs int64
	Equity      float64 // cash + marked-to-market position value
	Position    int     // signed contracts held after this bar
}
