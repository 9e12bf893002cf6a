package domain

// TradeRecord represents one completed round-trip trade from a backtest run.
type TradeRecord struct {
	TradeID    string // deterministic hash
	RunID      string // owning backtest run
	Symbol     string // instrument
	StrategyID string // strategy identifier (includes parameters)
	Direction  string // "LONG" or "SHORT"

	// Entry
	EntryTimeMs      int64   // bar timestamp of the entry fill
	EntrySignalPrice float64 // close price that produced the signal
	EntryFillPrice   float64 // after slippage applied
	Size             int     // contracts

	// Exit
	ExitTimeMs      int64   // bar timestamp of the exit fill
	ExitSignalPrice float64 // close price at the exit signal
	ExitFillPrice   float64 // after slippage applied
	ExitReason      string  // reason code

	// Costs
	CommissionCost float64 // commission paid across both sides
	SlippageCost   float64 // total fill-price degradation vs signal prices

	// Outcome
	GrossPnL     float64 // before costs
	NetPnL       float64 // after costs
	OutcomeClass string  // "WIN" | "LOSS"

	HoldBars int // bars between entry and exit fills
}
