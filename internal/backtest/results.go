package backtest

import "futures-risk-lab/internal/domain"

// Results holds the complete output of one engine run.
type Results struct {
	Run         *domain.BacktestRun
	Trades      []*domain.TradeRecord
	EquityCurve []*domain.EquityPoint

	// ZeroSizeSkips counts signals that passed the strategy but sized to
	// zero contracts.
	ZeroSizeSkips int
}

func newResults(runID string, cfg Config, strategyID string, bars []*domain.Bar, exec *domain.ExecutionParams) *Results {
	return &Results{
		Run: &domain.BacktestRun{
			RunID:        runID,
			Symbol:       cfg.Symbol,
			StrategyID:   strategyID,
			StartTimeMs:  bars[0].TimestampMs,
			EndTimeMs:    bars[len(bars)-1].TimestampMs,
			StartingCash: cfg.StartingCash,
			BarCount:     len(bars),
			Execution:    *exec,
		},
		Trades:      make([]*domain.TradeRecord, 0),
		EquityCurve: make([]*domain.EquityPoint, 0, len(bars)),
	}
}

// finalize fills the run fields that are only known after the bar loop.
func (r *Results) finalize(finalCash float64) {
	r.Run.FinalEquity = finalCash
	r.Run.TradeCount = len(r.Trades)
}
