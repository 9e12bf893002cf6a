package domain

// SizerConfig holds volatility-target sizing parameters.
// Supplied at construction and never mutated afterward.
type SizerConfig struct {
	TargetVol     float64 // annual volatility target (0.10 = 10% a year)
	Lookback      int     // volatility estimation window in bars
	Annualization float64 // annualization factor (252 for daily bars)
	MaxLeverage   float64 // maximum notional exposure / equity ratio
	ContractSize  float64 // contract multiplier (5 for MES)
	MinSize       int     // minimum order size in contracts
}

// DefaultSizerConfig matches the parameters used for the MES runs.
var DefaultSizerConfig = SizerConfig{
	TargetVol:     0.10,
	Lookback:      20,
	Annualization: 252,
	MaxLeverage:   2.0,
	ContractSize:  5.0,
	MinSize:       1,
}
