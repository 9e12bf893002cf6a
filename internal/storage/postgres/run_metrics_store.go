package postgres

import (
	"context"
	"fmt"

	"futures-risk-lab/internal/domain"
	"futures-risk-lab/internal/storage"
)

// RunMetricsStore implements storage.RunMetricsStore using PostgreSQL.
type RunMetricsStore struct {
	pool *Pool
}

// NewRunMetricsStore creates a new RunMetricsStore.
func NewRunMetricsStore(pool *Pool) *RunMetricsStore {
	return &RunMetricsStore{pool: pool}
}

// Compile-time interface check.
var _ storage.RunMetricsStore = (*RunMetricsStore)(nil)

// Insert adds metrics for a run. Returns ErrDuplicateKey if run_id exists.
func (s *RunMetricsStore) Insert(ctx context.Context, m *domain.RunMetrics) error {
	query := `
		INSERT INTO run_metrics (
			run_id, sharpe, sortino, max_drawdown, annualized_return,
			total_return, total_trades, wins, losses, win_rate
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.pool.Exec(ctx, query,
		m.RunID, m.Sharpe, m.Sortino, m.MaxDrawdown, m.AnnualizedReturn,
		m.TotalReturn, m.TotalTrades, m.Wins, m.Losses, m.WinRate,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert run metrics: %w", err)
	}
	return nil
}

// GetByRunID retrieves metrics by run ID. Returns ErrNotFound if not exists.
func (s *RunMetricsStore) GetByRunID(ctx context.Context, runID string) (*domain.RunMetrics, error) {
	query := `
		SELECT run_id, sharpe, sortino, max_drawdown, annualized_return,
		       total_return, total_trades, wins, losses, win_rate
		FROM run_metrics
		WHERE run_id = $1
	`

	var m domain.RunMetrics
	err := s.pool.QueryRow(ctx, query, runID).Scan(
		&m.RunID, &m.Sharpe, &m.Sortino, &m.MaxDrawdown, &m.AnnualizedReturn,
		&m.TotalReturn, &m.TotalTrades, &m.Wins, &m.Losses, &m.WinRate,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get run metrics by run id: %w", err)
	}
	return &m, nil
}
