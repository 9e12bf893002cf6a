// Package backtest runs a strategy over a daily bar series with calibrated
// frictions and volatility-targeted sizing, producing deterministic trade
// records and an equity curve.
package backtest

import (
	"context"
	"errors"
	"fmt"
	"math"

	"futures-risk-lab/internal/domain"
	"futures-risk-lab/internal/execution"
	"futures-risk-lab/internal/idhash"
	"futures-risk-lab/internal/risk"
	"futures-risk-lab/internal/strategy"
)

// ErrNoBars is returned when the engine is given an empty bar series.
var ErrNoBars = errors.New("no bars to backtest")

// Config holds engine parameters for one run.
type Config struct {
	Symbol       string
	StartingCash float64
	Sizer        domain.SizerConfig
	Calibrate    execution.CalibrateOptions
}

// position is the engine's open-position state between bars.
type position struct {
	direction       string
	size            int
	entryBarIdx     int
	entryTimeMs     int64
	entrySignal     float64
	entryFill       float64
	entryCommission float64
	entrySlippage   float64
}

// Engine executes one strategy over one bar series. Fills happen at the
// signal bar's close, degraded by the calibrated slippage: buys fill above
// the close, sells below it. Sizing uses post-close cash, so a reversal
// closes the old position before the new one is sized.
type Engine struct {
	cfg   Config
	strat strategy.Strategy
	sizer *risk.VolatilityTargetSizer
}

// NewEngine creates an engine for the given strategy.
func NewEngine(cfg Config, strat strategy.Strategy) *Engine {
	return &Engine{
		cfg:   cfg,
		strat: strat,
		sizer: risk.NewVolatilityTargetSizer(cfg.Sizer),
	}
}

// Run processes the bar series in order and returns the completed results.
// Execution frictions are calibrated once from the full series before the
// bar loop starts. An open position on the last bar is force-closed at that
// bar's close.
func (e *Engine) Run(ctx context.Context, bars []*domain.Bar) (*Results, error) {
	if len(bars) == 0 {
		return nil, ErrNoBars
	}

	execParams, err := execution.Calibrate(bars, e.cfg.Calibrate)
	if err != nil {
		return nil, fmt.Errorf("calibrate execution: %w", err)
	}
	spreads := execution.SpreadSeries(bars)

	runID := idhash.ComputeRunID(
		e.cfg.Symbol,
		e.strat.ID(),
		bars[0].TimestampMs,
		bars[len(bars)-1].TimestampMs,
		e.cfg.StartingCash,
	)

	st := &runState{
		engine:  e,
		runID:   runID,
		exec:    execParams,
		cash:    e.cfg.StartingCash,
		closes:  make([]float64, 0, len(bars)),
		results: newResults(runID, e.cfg, e.strat.ID(), bars, execParams),
	}

	for i, b := range bars {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		st.closes = append(st.closes, b.Close)

		sig, err := e.strat.OnBar(ctx, &strategy.BarContext{Bar: b, Spread: spreads[i]})
		if err != nil {
			return nil, fmt.Errorf("strategy %s on bar %d: %w", e.strat.ID(), i, err)
		}
		if sig != nil {
			st.applySignal(i, b, sig)
		}

		st.markToMarket(b)
	}

	// Force-close whatever is still open at the final close.
	last := len(bars) - 1
	st.closePosition(last, bars[last], domain.ExitReasonEndOfData)

	st.results.finalize(st.cash)
	return st.results, nil
}

// runState carries the mutable per-run state through the bar loop.
type runState struct {
	engine *Engine
	runID  string
	exec   *domain.ExecutionParams

	cash   float64
	pos    *position
	closes []float64

	results *Results
}

// applySignal closes an opposite position and opens a new one in the signal
// direction. A same-direction signal while holding is ignored.
func (s *runState) applySignal(barIdx int, b *domain.Bar, sig *strategy.Signal) {
	if s.pos != nil {
		if s.pos.direction == sig.Direction {
			return
		}
		s.closePosition(barIdx, b, domain.ExitReasonReversal)
	}
	s.openPosition(barIdx, b, sig.Direction)
}

// openPosition sizes and fills an entry at the bar close. A zero size means
// the entry is skipped, not an error.
func (s *runState) openPosition(barIdx int, b *domain.Bar, direction string) {
	size := s.engine.sizer.Size(b.Close, s.cash, s.closes)
	if size == 0 {
		s.results.ZeroSizeSkips++
		return
	}

	fill := s.fillPrice(b.Close, direction == domain.DirectionLong)
	commission := s.exec.CommissionPct * fill * float64(size) * s.engine.cfg.Sizer.ContractSize
	s.cash -= commission

	s.pos = &position{
		direction:       direction,
		size:            size,
		entryBarIdx:     barIdx,
		entryTimeMs:     b.TimestampMs,
		entrySignal:     b.Close,
		entryFill:       fill,
		entryCommission: commission,
		entrySlippage:   math.Abs(fill-b.Close) * float64(size) * s.engine.cfg.Sizer.ContractSize,
	}
}

// closePosition fills an exit at the bar close, realizes the PnL into cash,
// records the trade and notifies the strategy. No-op when flat.
func (s *runState) closePosition(barIdx int, b *domain.Bar, reason string) {
	if s.pos == nil {
		return
	}
	pos := s.pos
	s.pos = nil

	contract := s.engine.cfg.Sizer.ContractSize
	notionalUnits := float64(pos.size) * contract

	// Exit side is the opposite of the entry side.
	exitFill := s.fillPrice(b.Close, pos.direction == domain.DirectionShort)
	exitCommission := s.exec.CommissionPct * exitFill * notionalUnits
	exitSlippage := math.Abs(exitFill-b.Close) * notionalUnits

	sign := 1.0
	if pos.direction == domain.DirectionShort {
		sign = -1.0
	}
	grossPnL := sign * (b.Close - pos.entrySignal) * notionalUnits
	fillPnL := sign * (exitFill - pos.entryFill) * notionalUnits

	s.cash += fillPnL - exitCommission

	commission := pos.entryCommission + exitCommission
	slippage := pos.entrySlippage + exitSlippage
	netPnL := fillPnL - commission

	outcome := domain.OutcomeClassLoss
	if netPnL > 0 {
		outcome = domain.OutcomeClassWin
	}

	trade := &domain.TradeRecord{
		TradeID: idhash.ComputeTradeID(
			s.runID, s.engine.cfg.Symbol, s.engine.strat.ID(),
			pos.direction, pos.entryTimeMs,
		),
		RunID:            s.runID,
		Symbol:           s.engine.cfg.Symbol,
		StrategyID:       s.engine.strat.ID(),
		Direction:        pos.direction,
		EntryTimeMs:      pos.entryTimeMs,
		EntrySignalPrice: pos.entrySignal,
		EntryFillPrice:   pos.entryFill,
		Size:             pos.size,
		ExitTimeMs:       b.TimestampMs,
		ExitSignalPrice:  b.Close,
		ExitFillPrice:    exitFill,
		ExitReason:       reason,
		CommissionCost:   commission,
		SlippageCost:     slippage,
		GrossPnL:         grossPnL,
		NetPnL:           netPnL,
		OutcomeClass:     outcome,
		HoldBars:         barIdx - pos.entryBarIdx,
	}
	s.results.Trades = append(s.results.Trades, trade)
	s.engine.strat.OnTradeClosed(trade)
}

// fillPrice degrades the signal close by the calibrated slippage. Buys fill
// above the close, sells below it.
func (s *runState) fillPrice(close float64, buy bool) float64 {
	if buy {
		return close * (1 + s.exec.SlippagePct)
	}
	return close * (1 - s.exec.SlippagePct)
}

// markToMarket appends the equity point for the bar close.
func (s *runState) markToMarket(b *domain.Bar) {
	equity := s.cash
	positionSize := 0
	if s.pos != nil {
		sign := 1.0
		if s.pos.direction == domain.DirectionShort {
			sign = -1.0
			positionSize = -s.pos.size
		} else {
			positionSize = s.pos.size
		}
		equity += sign * (b.Close - s.pos.entryFill) * float64(s.pos.size) * s.engine.cfg.Sizer.ContractSize
	}

	s.results.EquityCurve = append(s.results.EquityCurve, &domain.EquityPoint{
		RunID:       s.runID,
		TimestampMs: b.TimestampMs,
		Equity:      equity,
		Position:    positionSize,
	})
}
