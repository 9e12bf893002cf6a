// Package execution estimates trading frictions from daily bar ranges and
// reduces them to the slippage/commission constants a backtest run applies to
// every fill.
package execution

import "futures-risk-lab/internal/domain"

// EstimateSpread returns the percentage spread proxy for a single bar:
//
//	spread = (high - low) / ((high + low) / 2)
//
// The high-low range stands in for the bid/ask spread when no quote data is
// available. Returns ok=false when high+low == 0 (average price zero), in
// which case the value is undefined and must be excluded from aggregation.
func EstimateSpread(high, low float64) (float64, bool) {
	avg := (high + low) / 2
	if avg == 0 {
		return 0, false
	}
	return (high - low) / avg, true
}

// SpreadSeries computes the per-bar spread proxy over a bar sequence.
// The result is aligned with the input: one entry per bar, nil at positions
// where the spread is undefined.
func SpreadSeries(bars []*domain.Bar) []*float64 {
	series := make([]*float64, len(bars))
	for i, b := range bars {
		if s, ok := EstimateSpread(b.High, b.Low); ok {
			v := s
			series[i] = &v
		}
	}
	return series
}
