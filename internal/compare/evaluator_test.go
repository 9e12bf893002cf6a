package compare

import (
	"errors"
	"strings"
	"testing"

	"futures-risk-lab/internal/domain"
)

func testInput() Input {
	return Input{
		BaselineRun: &domain.BacktestRun{
			RunID: "base", Symbol: "MES", StartTimeMs: 0, EndTimeMs: 1000,
			FinalEquity: 101000,
		},
		EnhancedRun: &domain.BacktestRun{
			RunID: "enh", Symbol: "MES", StartTimeMs: 0, EndTimeMs: 1000,
			FinalEquity: 103000,
		},
		BaselineMetrics: &domain.RunMetrics{
			RunID: "base", Sharpe: 0.5, Sortino: 0.6, MaxDrawdown: 0.20,
			WinRate: 0.40, TotalTrades: 30,
		},
		EnhancedMetrics: &domain.RunMetrics{
			RunID: "enh", Sharpe: 0.8, Sortino: 1.0, MaxDrawdown: 0.15,
			WinRate: 0.50, TotalTrades: 18,
		},
	}
}

func TestEvaluate_Improved(t *testing.T) {
	result, err := NewEvaluator().Evaluate(testInput())
	if err != nil {
		t.Fatal(err)
	}

	if result.Verdict != VerdictImproved {
		t.Errorf("verdict = %s, want IMPROVED", result.Verdict)
	}
	if result.FinalEquityDelta != 2000 {
		t.Errorf("equity delta = %v, want 2000", result.FinalEquityDelta)
	}
	if result.TradeCountDelta != -12 {
		t.Errorf("trade delta = %d, want -12", result.TradeCountDelta)
	}
	if len(result.Criteria) != 5 {
		t.Errorf("got %d criteria, want 5", len(result.Criteria))
	}
}

func TestEvaluate_Degraded(t *testing.T) {
	input := testInput()
	input.EnhancedMetrics.Sharpe = 0.2
	input.EnhancedMetrics.MaxDrawdown = 0.30

	result, err := NewEvaluator().Evaluate(input)
	if err != nil {
		t.Fatal(err)
	}
	if result.Verdict != VerdictDegraded {
		t.Errorf("verdict = %s, want DEGRADED", result.Verdict)
	}
}

func TestEvaluate_Mixed(t *testing.T) {
	// Better Sharpe but a deeper drawdown.
	input := testInput()
	input.EnhancedMetrics.MaxDrawdown = 0.30

	result, err := NewEvaluator().Evaluate(input)
	if err != nil {
		t.Fatal(err)
	}
	if result.Verdict != VerdictMixed {
		t.Errorf("verdict = %s, want MIXED", result.Verdict)
	}
}

func TestEvaluate_MismatchedRuns(t *testing.T) {
	input := testInput()
	input.EnhancedRun.EndTimeMs = 2000

	_, err := NewEvaluator().Evaluate(input)
	if !errors.Is(err, ErrMismatchedRuns) {
		t.Errorf("err = %v, want ErrMismatchedRuns", err)
	}
}

func TestRenderMarkdown(t *testing.T) {
	result, err := NewEvaluator().Evaluate(testInput())
	if err != nil {
		t.Fatal(err)
	}

	md := RenderMarkdown(result)
	for _, want := range []string{
		"## Verdict: IMPROVED",
		"| Sharpe ratio | 0.5000 | 0.8000 | yes |",
		"Final equity delta: +2000.00",
		"Trade count delta: -12",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}
