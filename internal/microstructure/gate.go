// Package microstructure filters entry and exit decisions on simple
// liquidity and churn criteria: bar volume relative to its trailing average,
// a minimum holding period between position changes, and an optional ceiling
// on the estimated spread.
package microstructure

import "futures-risk-lab/internal/domain"

// Gate is the stateful microstructure filter consulted before acting on any
// directional signal. A strategy owns exactly one Gate and drives it through
// two callbacks: OnBarAdvance once per processed bar, and OnPositionClosed
// when a closing trade settles. The query methods are pure.
type Gate struct {
	cfg domain.MicrostructureConfig

	// barsSinceLastExit starts at 0 with no prior trade. A strategy may
	// therefore trade on the very first bars even with a positive holding
	// period once enough bars have advanced; the counter is not seeded.
	barsSinceLastExit int
}

// NewGate creates a gate with the given configuration.
func NewGate(cfg domain.MicrostructureConfig) *Gate {
	return &Gate{cfg: cfg}
}

// Config returns the gate's immutable configuration.
func (g *Gate) Config() domain.MicrostructureConfig {
	return g.cfg
}

// BarsSinceLastExit returns the current counter value.
func (g *Gate) BarsSinceLastExit() int {
	return g.barsSinceLastExit
}

// OnBarAdvance increments the holding-period counter.
// Must be called exactly once per processed bar, unconditionally.
func (g *Gate) OnBarAdvance() {
	g.barsSinceLastExit++
}

// OnPositionClosed resets the holding-period counter.
// Must be called when a position-closing trade settles.
func (g *Gate) OnPositionClosed() {
	g.barsSinceLastExit = 0
}

// LiquidityOK reports whether the bar's volume is acceptable relative to the
// trailing average. A zero average blocks trading.
func (g *Gate) LiquidityOK(currentVolume, avgVolume float64) bool {
	if avgVolume == 0 {
		return false
	}
	return currentVolume/avgVolume >= g.cfg.MinVolumePctAvg
}

// HoldingPeriodOK reports whether enough bars have passed since the last
// position change.
func (g *Gate) HoldingPeriodOK() bool {
	return g.barsSinceLastExit >= g.cfg.MinHoldingPeriod
}

// SpreadOK reports whether the current spread estimate is acceptable.
// True when no ceiling is configured or no estimate is available for the bar.
func (g *Gate) SpreadOK(currentSpread *float64) bool {
	if g.cfg.MaxSpreadPct == nil {
		return true
	}
	if currentSpread == nil {
		return true
	}
	return *currentSpread <= *g.cfg.MaxSpreadPct
}

// TradingAllowed is the single gate consulted before acting on a crossover
// signal: the AND of the liquidity, holding-period and spread checks.
func (g *Gate) TradingAllowed(currentVolume, avgVolume float64, currentSpread *float64) bool {
	return g.LiquidityOK(currentVolume, avgVolume) &&
		g.HoldingPeriodOK() &&
		g.SpreadOK(currentSpread)
}
