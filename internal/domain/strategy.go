package domain

// Strategy type constants.
const (
	StrategyTypeSMACross         = "SMA_CROSS"
	StrategyTypeSMACrossFiltered = "SMA_CROSS_FILTERED"
)

// StrategyConfig holds parameters for constructing a strategy.
type StrategyConfig struct {
	StrategyType string // "SMA_CROSS" or "SMA_CROSS_FILTERED"
	FastPeriod   int    // fast SMA window in bars
	SlowPeriod   int    // slow SMA window in bars

	// Micro applies only to SMA_CROSS_FILTERED. Nil means defaults.
	Micro *MicrostructureConfig
}

// Trade direction constants.
const (
	DirectionLong  = "LONG"
	DirectionShort = "SHORT"
)

// Exit reason codes.
const (
	ExitReasonReversal  = "REVERSAL"    // opposite crossover closed the position
	ExitReasonEndOfData = "END_OF_DATA" // position force-closed on the last bar
)

// Outcome class constants.
const (
	OutcomeClassWin  = "WIN"
	OutcomeClassLoss = "LOSS"
)
