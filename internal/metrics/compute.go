// Package metrics derives per-run performance statistics from the equity
// curve and the trade list.
package metrics

import (
	"math"

	"futures-risk-lab/internal/domain"
)

// tradingDaysPerYear annualizes daily statistics.
const tradingDaysPerYear = 252

// Compute calculates all run metrics. The equity points must be in
// chronological order. Ratios that would divide by zero degrade to 0, never
// to Inf or NaN.
func Compute(runID string, equity []*domain.EquityPoint, trades []*domain.TradeRecord) *domain.RunMetrics {
	m := &domain.RunMetrics{RunID: runID}

	returns := dailyReturns(equity)
	mean := computeMean(returns)

	m.Sharpe = annualizedRatio(mean, computeStddev(returns, mean))
	m.Sortino = annualizedRatio(mean, downsideStddev(returns))
	m.MaxDrawdown = computeMaxDrawdown(equity)
	m.AnnualizedReturn = mean * tradingDaysPerYear

	if len(equity) > 0 && equity[0].Equity != 0 {
		m.TotalReturn = equity[len(equity)-1].Equity/equity[0].Equity - 1
	}

	m.TotalTrades = len(trades)
	for _, t := range trades {
		if t.OutcomeClass == domain.OutcomeClassWin {
			m.Wins++
		} else {
			m.Losses++
		}
	}
	if m.TotalTrades > 0 {
		m.WinRate = float64(m.Wins) / float64(m.TotalTrades)
	}

	return m
}

// dailyReturns converts the equity curve into simple bar-over-bar returns.
// A zero equity value makes the following return undefined; it is skipped.
func dailyReturns(equity []*domain.EquityPoint) []float64 {
	if len(equity) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		prev := equity[i-1].Equity
		if prev == 0 {
			continue
		}
		returns = append(returns, equity[i].Equity/prev-1)
	}
	return returns
}

// annualizedRatio scales mean/std by sqrt(252), guarding the denominator.
func annualizedRatio(mean, std float64) float64 {
	if std == 0 {
		return 0
	}
	return mean / std * math.Sqrt(tradingDaysPerYear)
}

// computeMean calculates arithmetic mean.
func computeMean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// computeStddev calculates sample standard deviation (n-1 denominator).
func computeStddev(xs []float64, mean float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}
	sumSq := 0.0
	for _, x := range xs {
		diff := x - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(n-1))
}

// downsideStddev is the sample standard deviation of the negative returns
// only, for the Sortino denominator.
func downsideStddev(returns []float64) float64 {
	var downside []float64
	for _, r := range returns {
		if r < 0 {
			downside = append(downside, r)
		}
	}
	return computeStddev(downside, computeMean(downside))
}

// computeMaxDrawdown calculates the worst fractional peak-to-trough decline
// of the equity curve. Points must be in chronological order.
func computeMaxDrawdown(equity []*domain.EquityPoint) float64 {
	if len(equity) == 0 {
		return 0
	}

	peak := equity[0].Equity
	maxDrawdown := 0.0
	for _, p := range equity {
		if p.Equity > peak {
			peak = p.Equity
		}
		if peak <= 0 {
			continue
		}
		drawdown := (peak - p.Equity) / peak
		if drawdown > maxDrawdown {
			maxDrawdown = drawdown
		}
	}
	return maxDrawdown
}
