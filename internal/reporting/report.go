// Package reporting renders backtest runs as CSV and Markdown artifacts.
package reporting

import (
	"time"

	"futures-risk-lab/internal/domain"
)

// Report collects everything rendered for a set of runs.
type Report struct {
	GeneratedAt time.Time
	Runs        []RunReport
}

// RunReport joins one run with its metrics and trades.
type RunReport struct {
	Run     *domain.BacktestRun
	Metrics *domain.RunMetrics
	Trades  []*domain.TradeRecord
}
