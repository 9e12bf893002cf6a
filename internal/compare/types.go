// Package compare evaluates a microstructure-filtered run against its
// unfiltered baseline and renders the verdict.
package compare

import "futures-risk-lab/internal/domain"

// Verdict summarizes whether the filters earned their keep.
type Verdict string

const (
	VerdictImproved Verdict = "IMPROVED"
	VerdictMixed    Verdict = "MIXED"
	VerdictDegraded Verdict = "DEGRADED"
)

// Input pairs the two runs under comparison. Both runs must cover the same
// symbol and bar range for the comparison to mean anything.
type Input struct {
	BaselineRun *domain.BacktestRun
	EnhancedRun *domain.BacktestRun

	BaselineMetrics *domain.RunMetrics
	EnhancedMetrics *domain.RunMetrics
}

// CriterionResult records one side-by-side measurement.
type CriterionResult struct {
	Name     string
	Baseline string
	Enhanced string
	Improved bool
}

// Result contains the verdict with the per-criterion checklist.
type Result struct {
	Verdict  Verdict
	Criteria []CriterionResult

	// FinalEquityDelta is enhanced minus baseline final equity.
	FinalEquityDelta float64

	// TradeCountDelta is enhanced minus baseline trade count; filters are
	// expected to push this negative.
	TradeCountDelta int
}
