package strategy

import (
	"context"
	"fmt"

	"futures-risk-lab/internal/domain"
	"futures-risk-lab/internal/indicator"
	"futures-risk-lab/internal/microstructure"
	"futures-risk-lab/internal/observability"
)

// volumeAvgPeriod is the window for the trailing volume average the
// liquidity filter compares against.
const volumeAvgPeriod = 20

// FilteredSMACrossStrategy is the crossover baseline with a microstructure
// gate in front of it: crossover signals are suppressed on thin volume,
// inside the minimum holding period, or when the spread estimate exceeds
// the configured ceiling. Suppressed signals are dropped, never deferred.
type FilteredSMACrossStrategy struct {
	base      *SMACrossStrategy
	gate      *microstructure.Gate
	volumeAvg *indicator.SMA
}

// NewFilteredSMACrossStrategy creates a gated crossover strategy.
func NewFilteredSMACrossStrategy(fastPeriod, slowPeriod int, micro domain.MicrostructureConfig) *FilteredSMACrossStrategy {
	return &FilteredSMACrossStrategy{
		base:      NewSMACrossStrategy(fastPeriod, slowPeriod),
		gate:      microstructure.NewGate(micro),
		volumeAvg: indicator.NewSMA(volumeAvgPeriod),
	}
}

// ID returns the strategy identifier including parameters.
func (s *FilteredSMACrossStrategy) ID() string {
	cfg := s.gate.Config()
	id := fmt.Sprintf("SMA_CROSS_FILTERED_f%d_s%d_vol%.0f_hold%d",
		s.base.FastPeriod,
		s.base.SlowPeriod,
		cfg.MinVolumePctAvg*100,
		cfg.MinHoldingPeriod)
	if cfg.MaxSpreadPct != nil {
		id += fmt.Sprintf("_spread%.4f", *cfg.MaxSpreadPct)
	}
	return id
}

// Gate exposes the microstructure gate, mainly for inspection in tests and
// reporting.
func (s *FilteredSMACrossStrategy) Gate() *microstructure.Gate {
	return s.gate
}

// OnBar advances the gate, updates the crossover state, and emits the
// signal only when the gate allows trading on this bar. The volume average
// includes the current bar.
func (s *FilteredSMACrossStrategy) OnBar(_ context.Context, bar *BarContext) (*Signal, error) {
	s.gate.OnBarAdvance()
	s.volumeAvg.Push(bar.Bar.Volume)

	sig := s.base.update(bar.Bar.Close)
	if sig == nil {
		return nil, nil
	}

	avg, ok := s.volumeAvg.Value()
	if !ok {
		avg = 0 // unfilled window blocks via the liquidity check
	}
	if !s.gate.TradingAllowed(bar.Bar.Volume, avg, bar.Spread) {
		switch {
		case !s.gate.LiquidityOK(bar.Bar.Volume, avg):
			observability.RecordGateBlock("liquidity")
		case !s.gate.HoldingPeriodOK():
			observability.RecordGateBlock("holding_period")
		default:
			observability.RecordGateBlock("spread")
		}
		return nil, nil
	}
	return sig, nil
}

// OnTradeClosed resets the holding-period counter.
func (s *FilteredSMACrossStrategy) OnTradeClosed(_ *domain.TradeRecord) {
	s.gate.OnPositionClosed()
}

// Ensure FilteredSMACrossStrategy implements Strategy
var _ Strategy = (*FilteredSMACrossStrategy)(nil)
