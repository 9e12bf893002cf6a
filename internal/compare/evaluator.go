package compare

import (
	"errors"
	"fmt"
)

// ErrMismatchedRuns is returned when the two runs do not cover the same
// symbol and bar range.
var ErrMismatchedRuns = errors.New("runs cover different symbols or bar ranges")

// Evaluator compares run pairs.
type Evaluator struct{}

// NewEvaluator creates a new comparison evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate produces the side-by-side checklist and the verdict.
// IMPROVED when the enhanced run has a higher Sharpe without a deeper
// drawdown. DEGRADED when both Sharpe and drawdown are worse. Anything in
// between is MIXED.
func (e *Evaluator) Evaluate(input Input) (*Result, error) {
	if input.BaselineRun.Symbol != input.EnhancedRun.Symbol ||
		input.BaselineRun.StartTimeMs != input.EnhancedRun.StartTimeMs ||
		input.BaselineRun.EndTimeMs != input.EnhancedRun.EndTimeMs {
		return nil, ErrMismatchedRuns
	}

	base := input.BaselineMetrics
	enh := input.EnhancedMetrics

	criteria := []CriterionResult{
		{
			Name:     "Sharpe ratio",
			Baseline: fmt.Sprintf("%.4f", base.Sharpe),
			Enhanced: fmt.Sprintf("%.4f", enh.Sharpe),
			Improved: enh.Sharpe > base.Sharpe,
		},
		{
			Name:     "Max drawdown",
			Baseline: fmt.Sprintf("%.2f%%", base.MaxDrawdown*100),
			Enhanced: fmt.Sprintf("%.2f%%", enh.MaxDrawdown*100),
			Improved: enh.MaxDrawdown <= base.MaxDrawdown,
		},
		{
			Name:     "Sortino ratio",
			Baseline: fmt.Sprintf("%.4f", base.Sortino),
			Enhanced: fmt.Sprintf("%.4f", enh.Sortino),
			Improved: enh.Sortino > base.Sortino,
		},
		{
			Name:     "Win rate",
			Baseline: fmt.Sprintf("%.2f%%", base.WinRate*100),
			Enhanced: fmt.Sprintf("%.2f%%", enh.WinRate*100),
			Improved: enh.WinRate > base.WinRate,
		},
		{
			Name:     "Final equity",
			Baseline: fmt.Sprintf("%.2f", input.BaselineRun.FinalEquity),
			Enhanced: fmt.Sprintf("%.2f", input.EnhancedRun.FinalEquity),
			Improved: input.EnhancedRun.FinalEquity > input.BaselineRun.FinalEquity,
		},
	}

	sharpeBetter := enh.Sharpe > base.Sharpe
	drawdownNotWorse := enh.MaxDrawdown <= base.MaxDrawdown

	verdict := VerdictMixed
	switch {
	case sharpeBetter && drawdownNotWorse:
		verdict = VerdictImproved
	case !sharpeBetter && !drawdownNotWorse:
		verdict = VerdictDegraded
	}

	return &Result{
		Verdict:          verdict,
		Criteria:         criteria,
		FinalEquityDelta: input.EnhancedRun.FinalEquity - input.BaselineRun.FinalEquity,
		TradeCountDelta:  enh.TotalTrades - base.TotalTrades,
	}, nil
}
