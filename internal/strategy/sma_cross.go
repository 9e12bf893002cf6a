package strategy

import (
	"context"
	"fmt"

	"futures-risk-lab/internal/domain"
	"futures-risk-lab/internal/indicator"
)

// SMACrossStrategy is the unfiltered baseline: long when the fast moving
// average crosses above the slow one, short on the opposite cross. Always
// acts on every crossover.
type SMACrossStrategy struct {
	FastPeriod int
	SlowPeriod int

	fast  *indicator.SMA
	slow  *indicator.SMA
	cross *indicator.Crossover
}

// NewSMACrossStrategy creates a baseline crossover strategy.
func NewSMACrossStrategy(fastPeriod, slowPeriod int) *SMACrossStrategy {
	return &SMACrossStrategy{
		FastPeriod: fastPeriod,
		SlowPeriod: slowPeriod,
		fast:       indicator.NewSMA(fastPeriod),
		slow:       indicator.NewSMA(slowPeriod),
		cross:      indicator.NewCrossover(),
	}
}

// ID returns the strategy identifier including parameters.
func (s *SMACrossStrategy) ID() string {
	return fmt.Sprintf("SMA_CROSS_f%d_s%d", s.FastPeriod, s.SlowPeriod)
}

// OnBar feeds the close into both averages and signals on a crossover.
// No signal is emitted until the slow window has filled.
func (s *SMACrossStrategy) OnBar(_ context.Context, bar *BarContext) (*Signal, error) {
	return s.update(bar.Bar.Close), nil
}

// OnTradeClosed is a no-op; the baseline keeps no per-position state.
func (s *SMACrossStrategy) OnTradeClosed(_ *domain.TradeRecord) {}

func (s *SMACrossStrategy) update(close float64) *Signal {
	s.fast.Push(close)
	s.slow.Push(close)

	fastV, okFast := s.fast.Value()
	slowV, okSlow := s.slow.Value()
	if !okFast || !okSlow {
		return nil
	}

	switch s.cross.Update(fastV, slowV) {
	case 1:
		return &Signal{Direction: domain.DirectionLong}
	case -1:
		return &Signal{Direction: domain.DirectionShort}
	default:
		return nil
	}
}

// Ensure SMACrossStrategy implements Strategy
var _ Strategy = (*SMACrossStrategy)(nil)
