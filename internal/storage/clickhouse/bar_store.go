package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"futures-risk-lab/internal/domain"
	"futures-risk-lab/internal/storage"
)

// BarStore implements storage.BarStore using ClickHouse.
//
// MergeTree does not enforce uniqueness, so duplicates are detected with
// explicit existence checks before each batch insert.
type BarStore struct {
	conn *Conn
}

// NewBarStore creates a new BarStore.
func NewBarStore(conn *Conn) *BarStore {
	return &BarStore{conn: conn}
}

// Compile-time interface check.
var _ storage.BarStore = (*BarStore)(nil)

// InsertBulk adds multiple bars. Fails entire batch on duplicate (symbol, timestamp_ms).
func (s *BarStore) InsertBulk(ctx context.Context, bars []*domain.Bar) error {
	if len(bars) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	type key struct {
		symbol      string
		timestampMs int64
	}
	seen := make(map[key]struct{})
	for _, b := range bars {
		k := key{b.Symbol, b.TimestampMs}
		if _, exists := seen[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	// Check for duplicates against existing DB rows
	for _, b := range bars {
		exists, err := s.exists(ctx, b.Symbol, b.TimestampMs)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO bars (
			symbol, timestamp_ms, open, high, low, close, volume
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, b := range bars {
		err = batch.Append(
			b.Symbol, uint64(b.TimestampMs),
			b.Open, b.High, b.Low, b.Close, b.Volume,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetBySymbol retrieves all bars for a symbol, ordered by timestamp ASC.
func (s *BarStore) GetBySymbol(ctx context.Context, symbol string) ([]*domain.Bar, error) {
	query := `
		SELECT symbol, timestamp_ms, open, high, low, close, volume
		FROM bars
		WHERE symbol = ?
		ORDER BY timestamp_ms ASC
	`

	rows, err := s.conn.Query(ctx, query, symbol)
	if err != nil {
		return nil, fmt.Errorf("query by symbol: %w", err)
	}
	defer rows.Close()

	return scanBars(rows)
}

// GetByTimeRange retrieves bars for a symbol within [start, end] (inclusive).
func (s *BarStore) GetByTimeRange(ctx context.Context, symbol string, start, end int64) ([]*domain.Bar, error) {
	query := `
		SELECT symbol, timestamp_ms, open, high, low, close, volume
		FROM bars
		WHERE symbol = ? AND timestamp_ms >= ? AND timestamp_ms <= ?
		ORDER BY timestamp_ms ASC
	`

	rows, err := s.conn.Query(ctx, query, symbol, uint64(start), uint64(end))
	if err != nil {
		return nil, fmt.Errorf("query by time range: %w", err)
	}
	defer rows.Close()

	return scanBars(rows)
}

// exists checks if a bar with the given key exists.
func (s *BarStore) exists(ctx context.Context, symbol string, timestampMs int64) (bool, error) {
	query := `
		SELECT count(*) FROM bars
		WHERE symbol = ? AND timestamp_ms = ?
	`

	var count uint64
	if err := s.conn.QueryRow(ctx, query, symbol, uint64(timestampMs)).Scan(&count); err != nil {
		return false, fmt.Errorf("query count: %w", err)
	}
	return count > 0, nil
}

// scanBars scans rows into Bar structs.
func scanBars(rows driver.Rows) ([]*domain.Bar, error) {
	var bars []*domain.Bar
	for rows.Next() {
		var (
			b  domain.Bar
			ts uint64
		)
		if err := rows.Scan(&b.Symbol, &ts, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("scan bar row: %w", err)
		}
		b.TimestampMs = int64(ts)
		bars = append(bars, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bar rows: %w", err)
	}
	return bars, nil
}
