package metrics

import (
	"math"
	"testing"

	"futures-risk-lab/internal/domain"
)

func equityCurve(values ...float64) []*domain.EquityPoint {
	points := make([]*domain.EquityPoint, len(values))
	for i, v := range values {
		points[i] = &domain.EquityPoint{
			RunID:       "run",
			TimestampMs: int64(i) * 86400000,
			Equity:      v,
		}
	}
	return points
}

func TestCompute_Empty(t *testing.T) {
	m := Compute("run", nil, nil)

	if m.RunID != "run" {
		t.Errorf("run id = %s", m.RunID)
	}
	if m.Sharpe != 0 || m.Sortino != 0 || m.MaxDrawdown != 0 {
		t.Errorf("empty input must produce zero ratios: %+v", m)
	}
	if m.TotalTrades != 0 || m.WinRate != 0 {
		t.Errorf("empty input must produce zero trade stats: %+v", m)
	}
}

func TestCompute_FlatEquityHasZeroSharpe(t *testing.T) {
	// Constant equity: zero-variance returns must not divide by zero.
	m := Compute("run", equityCurve(100000, 100000, 100000, 100000), nil)

	if m.Sharpe != 0 {
		t.Errorf("sharpe = %v, want 0", m.Sharpe)
	}
	if m.TotalReturn != 0 {
		t.Errorf("total return = %v, want 0", m.TotalReturn)
	}
}

func TestCompute_Sharpe(t *testing.T) {
	// Returns: +1%, -1%, +1%, -1%. Mean 0, so Sharpe is 0 despite variance.
	m := Compute("run", equityCurve(100, 101, 99.99, 100.9899, 99.979901), nil)
	if math.Abs(m.Sharpe) > 1e-9 {
		t.Errorf("sharpe = %v, want ~0", m.Sharpe)
	}

	// Strictly rising curve: positive mean, positive std.
	m = Compute("run", equityCurve(100, 102, 103, 105), nil)
	if m.Sharpe <= 0 {
		t.Errorf("sharpe = %v, want > 0", m.Sharpe)
	}
}

func TestCompute_SortinoNoDownside(t *testing.T) {
	// Monotone rising equity has no negative returns; Sortino degrades to 0
	// instead of +Inf.
	m := Compute("run", equityCurve(100, 101, 102, 103), nil)

	if math.IsInf(m.Sortino, 0) || math.IsNaN(m.Sortino) {
		t.Fatalf("sortino = %v, must be finite", m.Sortino)
	}
	if m.Sortino != 0 {
		t.Errorf("sortino = %v, want 0 without downside", m.Sortino)
	}
}

func TestCompute_MaxDrawdown(t *testing.T) {
	// Peak 120, trough 90: drawdown 25%. The later recovery to 130 and the
	// smaller dip to 117 must not extend it.
	m := Compute("run", equityCurve(100, 120, 90, 130, 117), nil)

	if math.Abs(m.MaxDrawdown-0.25) > 1e-12 {
		t.Errorf("max drawdown = %v, want 0.25", m.MaxDrawdown)
	}
}

func TestCompute_AnnualizedReturn(t *testing.T) {
	// Single +1% daily return annualizes to 2.52.
	m := Compute("run", equityCurve(100, 101), nil)

	if math.Abs(m.AnnualizedReturn-0.01*252) > 1e-12 {
		t.Errorf("annualized return = %v, want %v", m.AnnualizedReturn, 0.01*252)
	}
}

func TestCompute_TotalReturn(t *testing.T) {
	m := Compute("run", equityCurve(100000, 90000, 112000), nil)

	if math.Abs(m.TotalReturn-0.12) > 1e-12 {
		t.Errorf("total return = %v, want 0.12", m.TotalReturn)
	}
}

func TestCompute_TradeStats(t *testing.T) {
	trades := []*domain.TradeRecord{
		{OutcomeClass: domain.OutcomeClassWin},
		{OutcomeClass: domain.OutcomeClassWin},
		{OutcomeClass: domain.OutcomeClassLoss},
		{OutcomeClass: domain.OutcomeClassWin},
	}
	m := Compute("run", nil, trades)

	if m.TotalTrades != 4 || m.Wins != 3 || m.Losses != 1 {
		t.Errorf("trade counts = %d/%d/%d, want 4/3/1", m.TotalTrades, m.Wins, m.Losses)
	}
	if m.WinRate != 0.75 {
		t.Errorf("win rate = %v, want 0.75", m.WinRate)
	}
}
