package backtest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"futures-risk-lab/internal/domain"
	"futures-risk-lab/internal/metrics"
	"futures-risk-lab/internal/observability"
	"futures-risk-lab/internal/storage"
	"futures-risk-lab/internal/strategy"
)

// Stores groups the persistence targets for a run. Nil fields are skipped,
// so a memory-only run can pass the zero value.
type Stores struct {
	Runs    storage.RunStore
	Trades  storage.TradeRecordStore
	Equity  storage.EquityCurveStore
	Metrics storage.RunMetricsStore
}

// Runner executes a backtest end to end: engine run, metric computation,
// persistence.
type Runner struct {
	stores Stores
	logger *log.Logger
}

// NewRunner creates a runner writing to the given stores.
func NewRunner(stores Stores, logger *log.Logger) *Runner {
	return &Runner{
		stores: stores,
		logger: logger,
	}
}

// Run executes the strategy over the bars and persists the outcome.
// Run IDs are deterministic, so re-running an identical configuration hits
// ErrDuplicateKey on the run insert; the rerun is logged and nothing is
// re-persisted.
func (r *Runner) Run(ctx context.Context, cfg Config, strat strategy.Strategy, bars []*domain.Bar) (*Results, *domain.RunMetrics, error) {
	obs := observability.DefaultMetrics
	started := time.Now()

	results, err := NewEngine(cfg, strat).Run(ctx, bars)
	if err != nil {
		obs.BacktestRunsTotal.WithLabelValues(strat.ID(), "error").Inc()
		return nil, nil, err
	}

	obs.BacktestDuration.WithLabelValues(strat.ID()).Observe(time.Since(started).Seconds())
	obs.BarsProcessed.Add(float64(results.Run.BarCount))
	obs.TradesSimulated.Add(float64(len(results.Trades)))
	obs.ZeroSizeSkips.Add(float64(results.ZeroSizeSkips))

	runMetrics := metrics.Compute(results.Run.RunID, results.EquityCurve, results.Trades)

	if err := r.persist(ctx, results, runMetrics); err != nil {
		obs.BacktestRunsTotal.WithLabelValues(strat.ID(), "error").Inc()
		return nil, nil, err
	}

	obs.BacktestRunsTotal.WithLabelValues(strat.ID(), "ok").Inc()
	obs.LastSuccessfulRun.SetToCurrentTime()
	return results, runMetrics, nil
}

func (r *Runner) persist(ctx context.Context, results *Results, runMetrics *domain.RunMetrics) error {
	if r.stores.Runs != nil {
		err := r.timed("insert_run", func() error {
			return r.stores.Runs.Insert(ctx, results.Run)
		})
		if errors.Is(err, storage.ErrDuplicateKey) {
			r.logger.Printf("run %s already recorded, skipping persistence", results.Run.RunID)
			return nil
		}
		if err != nil {
			return fmt.Errorf("insert run: %w", err)
		}
	}

	if r.stores.Trades != nil && len(results.Trades) > 0 {
		err := r.timed("insert_trades", func() error {
			return r.stores.Trades.InsertBulk(ctx, results.Trades)
		})
		if err != nil {
			return fmt.Errorf("insert trades: %w", err)
		}
	}

	if r.stores.Equity != nil && len(results.EquityCurve) > 0 {
		err := r.timed("insert_equity_curve", func() error {
			return r.stores.Equity.InsertBulk(ctx, results.EquityCurve)
		})
		if err != nil {
			return fmt.Errorf("insert equity curve: %w", err)
		}
	}

	if r.stores.Metrics != nil {
		err := r.timed("insert_metrics", func() error {
			return r.stores.Metrics.Insert(ctx, runMetrics)
		})
		if err != nil {
			return fmt.Errorf("insert metrics: %w", err)
		}
	}

	return nil
}

// timed runs one store operation and records its duration and outcome.
// Duplicate-key hits on reruns are expected, not query errors.
func (r *Runner) timed(operation string, fn func() error) error {
	started := time.Now()
	err := fn()
	observability.DefaultMetrics.DBQueryDuration.
		WithLabelValues("stores", operation).
		Observe(time.Since(started).Seconds())
	if err != nil && !errors.Is(err, storage.ErrDuplicateKey) {
		observability.DefaultMetrics.DBQueryErrors.WithLabelValues("stores", operation).Inc()
	}
	return err
}
