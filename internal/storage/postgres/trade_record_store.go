package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"futures-risk-lab/internal/domain"
	"futures-risk-lab/internal/storage"
)

// TradeRecordStore implements storage.TradeRecordStore using PostgreSQL.
type TradeRecordStore struct {
	pool *Pool
}

// NewTradeRecordStore creates a new TradeRecordStore.
func NewTradeRecordStore(pool *Pool) *TradeRecordStore {
	return &TradeRecordStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TradeRecordStore = (*TradeRecordStore)(nil)

const tradeColumns = `
	trade_id, run_id, symbol, strategy_id, direction,
	entry_time_ms, entry_signal_price, entry_fill_price, size,
	exit_time_ms, exit_signal_price, exit_fill_price, exit_reason,
	commission_cost, slippage_cost, gross_pnl, net_pnl, outcome_class, hold_bars
`

const insertTradeQuery = `
	INSERT INTO trade_records (` + tradeColumns + `)
	VALUES (
		$1, $2, $3, $4, $5,
		$6, $7, $8, $9,
		$10, $11, $12, $13,
		$14, $15, $16, $17, $18, $19
	)
`

func tradeArgs(t *domain.TradeRecord) []any {
	return []any{
		t.TradeID, t.RunID, t.Symbol, t.StrategyID, t.Direction,
		t.EntryTimeMs, t.EntrySignalPrice, t.EntryFillPrice, t.Size,
		t.ExitTimeMs, t.ExitSignalPrice, t.ExitFillPrice, t.ExitReason,
		t.CommissionCost, t.SlippageCost, t.GrossPnL, t.NetPnL, t.OutcomeClass, t.HoldBars,
	}
}

// Insert adds a new trade. Returns ErrDuplicateKey if trade_id exists.
func (s *TradeRecordStore) Insert(ctx context.Context, t *domain.TradeRecord) error {
	_, err := s.pool.Exec(ctx, insertTradeQuery, tradeArgs(t)...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert trade record: %w", err)
	}
	return nil
}

// InsertBulk adds multiple trades atomically. Fails entire batch on any duplicate.
func (s *TradeRecordStore) InsertBulk(ctx context.Context, trades []*domain.TradeRecord) error {
	if len(trades) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, t := range trades {
		if _, err := tx.Exec(ctx, insertTradeQuery, tradeArgs(t)...); err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert trade record in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetByID retrieves a trade by its ID. Returns ErrNotFound if not exists.
func (s *TradeRecordStore) GetByID(ctx context.Context, tradeID string) (*domain.TradeRecord, error) {
	query := `SELECT ` + tradeColumns + ` FROM trade_records WHERE trade_id = $1`

	row := s.pool.QueryRow(ctx, query, tradeID)
	t, err := scanTradeRecord(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get trade record by id: %w", err)
	}
	return t, nil
}

// GetByRunID retrieves all trades for a run, ordered by entry time ASC.
func (s *TradeRecordStore) GetByRunID(ctx context.Context, runID string) ([]*domain.TradeRecord, error) {
	query := `
		SELECT ` + tradeColumns + `
		FROM trade_records
		WHERE run_id = $1
		ORDER BY entry_time_ms ASC, trade_id ASC
	`

	rows, err := s.pool.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("get trade records by run id: %w", err)
	}
	defer rows.Close()

	var trades []*domain.TradeRecord
	for rows.Next() {
		t, err := scanTradeRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trade record row: %w", err)
		}
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trade record rows: %w", err)
	}

	return trades, nil
}

// scanTradeRecord scans one row into a TradeRecord.
func scanTradeRecord(row pgx.Row) (*domain.TradeRecord, error) {
	var t domain.TradeRecord
	err := row.Scan(
		&t.TradeID, &t.RunID, &t.Symbol, &t.StrategyID, &t.Direction,
		&t.EntryTimeMs, &t.EntrySignalPrice, &t.EntryFillPrice, &t.Size,
		&t.ExitTimeMs, &t.ExitSignalPrice, &t.ExitFillPrice, &t.ExitReason,
		&t.CommissionCost, &t.SlippageCost, &t.GrossPnL, &t.NetPnL, &t.OutcomeClass, &t.HoldBars,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
