package execution

import (
	"errors"

	"futures-risk-lab/internal/domain"
)

// ErrInsufficientData is returned when calibration finds no bar with a
// defined spread estimate. Execution parameters cannot be derived and the
// run must abort.
var ErrInsufficientData = errors.New("no valid spread samples for calibration")

// CalibrateOptions control the spread-to-friction reduction.
type CalibrateOptions struct {
	// CommissionPct is passed through to the resulting params unchanged.
	CommissionPct float64

	// SlippageMultiplier scales the half-spread into a slippage estimate
	// (0.5 means half of the half-spread; 1.0 is more conservative).
	SlippageMultiplier float64
}

// DefaultCalibrateOptions matches the parameters used for the MES runs.
var DefaultCalibrateOptions = CalibrateOptions{
	CommissionPct:      0,
	SlippageMultiplier: 0.5,
}

// Calibrate reduces the spread series over all bars to a single set of
// execution parameters:
//
//	mean_spread = mean(defined spread values)
//	half_spread = mean_spread / 2
//	slippage    = half_spread * SlippageMultiplier
//
// The parameters are computed once from the full history before simulation
// starts. This leaks future spread information into early-bar fills; it is
// accepted only because the result is a single global friction constant, not
// a per-bar decision.
//
// A series where every bar has high == low calibrates to zero frictions,
// which is valid. Returns ErrInsufficientData only when no bar has a defined
// spread at all.
func Calibrate(bars []*domain.Bar, opts CalibrateOptions) (*domain.ExecutionParams, error) {
	sum := 0.0
	n := 0
	for _, s := range SpreadSeries(bars) {
		if s == nil {
			continue
		}
		sum += *s
		n++
	}
	if n == 0 {
		return nil, ErrInsufficientData
	}

	mean := sum / float64(n)
	half := mean / 2

	return &domain.ExecutionParams{
		MeanSpreadPct: mean,
		HalfSpreadPct: half,
		SlippagePct:   half * opts.SlippageMultiplier,
		CommissionPct: opts.CommissionPct,
	}, nil
}
