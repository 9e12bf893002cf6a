package storage

import (
	"context"

	"futures-risk-lab/internal/domain"
)

// BarStore provides access to daily OHLCV bar storage.
type BarStore interface {
	// InsertBulk adds multiple bars. Fails entire batch on duplicate (symbol, timestamp_ms).
	InsertBulk(ctx context.Context, bars []*domain.Bar) error

	// GetBySymbol retrieves all bars for a symbol, ordered by timestamp ASC.
	GetBySymbol(ctx context.Context, symbol string) ([]*domain.Bar, error)

	// GetByTimeRange retrieves bars for a symbol within [start, end] (inclusive), ordered by timestamp ASC.
	GetByTimeRange(ctx context.Context, symbol string, start, end int64) ([]*domain.Bar, error)
}

// RunStore provides access to backtest_runs storage.
type RunStore interface {
	// Insert adds a new run. Returns ErrDuplicateKey if run_id exists.
	Insert(ctx context.Context, r *domain.BacktestRun) error

	// GetByID retrieves a run by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, runID string) (*domain.BacktestRun, error)

	// GetBySymbol retrieves all runs for a symbol.
	GetBySymbol(ctx context.Context, symbol string) ([]*domain.BacktestRun, error)
}

// TradeRecordStore provides access to trade_records storage.
type TradeRecordStore interface {
	// Insert adds a new trade. Returns ErrDuplicateKey if trade_id exists.
	Insert(ctx context.Context, t *domain.TradeRecord) error

	// InsertBulk adds multiple trades atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, trades []*domain.TradeRecord) error

	// GetByID retrieves a trade by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, tradeID string) (*domain.TradeRecord, error)

	// GetByRunID retrieves all trades for a run, ordered by entry time ASC.
	GetByRunID(ctx context.Context, runID string) ([]*domain.TradeRecord, error)
}

// EquityCurveStore provides access to equity_curve storage.
type EquityCurveStore interface {
	// InsertBulk adds multiple points. Fails entire batch on duplicate (run_id, timestamp_ms).
	InsertBulk(ctx context.Context, points []*domain.EquityPoint) error

	// GetByRunID retrieves all points for a run, ordered by timestamp ASC.
	GetByRunID(ctx context.Context, runID string) ([]*domain.EquityPoint, error)
}

// RunMetricsStore provides access to run_metrics storage.
type RunMetricsStore interface {
	// Insert adds metrics for a run. Returns ErrDuplicateKey if run_id exists.
	Insert(ctx context.Context, m *domain.RunMetrics) error

	// GetByRunID retrieves metrics by run ID. Returns ErrNotFound if not exists.
	GetByRunID(ctx context.Context, runID string) (*domain.RunMetrics, error)
}
