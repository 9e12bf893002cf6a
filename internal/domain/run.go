package domain

// BacktestRun summarizes one completed backtest.
type BacktestRun struct {
	RunID        string // deterministic hash
	Symbol       string
	StrategyID   string
	StartTimeMs  int64 // first bar timestamp
	EndTimeMs    int64 // last bar timestamp
	StartingCash float64
	FinalEquity  float64
	BarCount     int
	TradeCount   int

	// Execution holds the friction constants the run was simulated with.
	Execution ExecutionParams
}

// RunMetrics holds performance statistics computed from a run's equity curve
// and trade list.
type RunMetrics struct {
	RunID            string
	Sharpe           float64 // annualized, risk-free rate 0
	Sortino          float64 // annualized, downside deviation denominator
	MaxDrawdown      float64 // worst peak-to-trough equity decline, as a fraction
	AnnualizedReturn float64 // mean daily return * 252
	TotalReturn      float64 // (final - starting) / starting
	TotalTrades      int
	Wins             int
	Losses           int
	WinRate          float64
}
