// Package risk sizes positions so that expected portfolio volatility stays
// near a fixed annual target, scaling exposure inversely with the measured
// close-to-close volatility.
package risk

import "math"

// AnnualizedVol estimates annualized volatility from the trailing closes.
//
// It needs lookback+1 prices (yielding lookback simple returns); the daily
// volatility is the sample standard deviation of those returns (Bessel's
// correction, n-1 denominator), annualized by sqrt(annualization).
//
// Returns ok=false when history is insufficient, when fewer than two returns
// are available, or when the daily volatility comes out zero, negative, or
// NaN. Callers must treat that as "no trade", not as an error.
func AnnualizedVol(closes []float64, lookback int, annualization float64) (float64, bool) {
	if lookback < 2 || len(closes) < lookback+1 {
		return 0, false
	}

	// Use the most recent lookback+1 closes.
	window := closes[len(closes)-lookback-1:]

	rets := make([]float64, 0, lookback)
	for i := 1; i < len(window); i++ {
		prev := window[i-1]
		if prev == 0 {
			return 0, false
		}
		rets = append(rets, (window[i]-prev)/prev)
	}
	if len(rets) < 2 {
		return 0, false
	}

	mean := 0.0
	for _, r := range rets {
		mean += r
	}
	mean /= float64(len(rets))

	sumSq := 0.0
	for _, r := range rets {
		d := r - mean
		sumSq += d * d
	}
	dailyVol := math.Sqrt(sumSq / float64(len(rets)-1))

	if dailyVol <= 0 || math.IsNaN(dailyVol) {
		return 0, false
	}

	return dailyVol * math.Sqrt(annualization), true
}
