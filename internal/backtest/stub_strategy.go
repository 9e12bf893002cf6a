package backtest

import (
	"context"

	"futures-risk-lab/internal/domain"
	"futures-risk-lab/internal/strategy"
)

// ScriptedStrategy emits a fixed direction on chosen bar indexes.
// Used in tests to drive the engine without indicator warmup.
type ScriptedStrategy struct {
	script map[int]string // bar index -> direction
	barIdx int

	closed []*domain.TradeRecord
}

// NewScriptedStrategy creates a strategy that signals per the script.
func NewScriptedStrategy(script map[int]string) *ScriptedStrategy {
	return &ScriptedStrategy{
		script: script,
		closed: make([]*domain.TradeRecord, 0),
	}
}

// OnBar returns the scripted signal for the current bar index, if any.
func (s *ScriptedStrategy) OnBar(_ context.Context, _ *strategy.BarContext) (*strategy.Signal, error) {
	idx := s.barIdx
	s.barIdx++

	dir, ok := s.script[idx]
	if !ok {
		return nil, nil
	}
	return &strategy.Signal{Direction: dir}, nil
}

// OnTradeClosed collects closed trades for test verification.
func (s *ScriptedStrategy) OnTradeClosed(trade *domain.TradeRecord) {
	s.closed = append(s.closed, trade)
}

// ID returns the strategy identifier.
func (s *ScriptedStrategy) ID() string {
	return "SCRIPTED"
}

// Closed returns the trades the engine reported back.
func (s *ScriptedStrategy) Closed() []*domain.TradeRecord {
	return s.closed
}

// Ensure ScriptedStrategy implements strategy.Strategy
var _ strategy.Strategy = (*ScriptedStrategy)(nil)
