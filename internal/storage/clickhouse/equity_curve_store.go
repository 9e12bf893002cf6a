package clickhouse

import (
	"context"
	"fmt"

	"futures-risk-lab/internal/domain"
	"futures-risk-lab/internal/storage"
)

// EquityCurveStore implements storage.EquityCurveStore using ClickHouse.
type EquityCurveStore struct {
	conn *Conn
}

// NewEquityCurveStore creates a new EquityCurveStore.
func NewEquityCurveStore(conn *Conn) *EquityCurveStore {
	return &EquityCurveStore{conn: conn}
}

// Compile-time interface check.
var _ storage.EquityCurveStore = (*EquityCurveStore)(nil)

// InsertBulk adds multiple points. Fails entire batch on duplicate (run_id, timestamp_ms).
func (s *EquityCurveStore) InsertBulk(ctx context.Context, points []*domain.EquityPoint) error {
	if len(points) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	type key struct {
		runID       string
		timestampMs int64
	}
	seen := make(map[key]struct{})
	for _, p := range points {
		k := key{p.RunID, p.TimestampMs}
		if _, exists := seen[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	// Check for duplicates against existing DB rows
	for _, p := range points {
		exists, err := s.exists(ctx, p.RunID, p.TimestampMs)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO equity_curve (
			run_id, timestamp_ms, equity, position
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, p := range points {
		err = batch.Append(
			p.RunID, uint64(p.TimestampMs), p.Equity, int32(p.Position),
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

// GetByRunID retrieves all points for a run, ordered by timestamp ASC.
func (s *EquityCurveStore) GetByRunID(ctx context.Context, runID string) ([]*domain.EquityPoint, error) {
	query := `
		SELECT run_id, timestamp_ms, equity, position
		FROM equity_curve
		WHERE run_id = ?
		ORDER BY timestamp_ms ASC
	`

	rows, err := s.conn.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query by run id: %w", err)
	}
	defer rows.Close()

	var points []*domain.EquityPoint
	for rows.Next() {
		var (
			p   domain.EquityPoint
			ts  uint64
			pos int32
		)
		if err := rows.Scan(&p.RunID, &ts, &p.Equity, &pos); err != nil {
			return nil, fmt.Errorf("scan equity point row: %w", err)
		}
		p.TimestampMs = int64(ts)
		p.Position = int(pos)
		points = append(points, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate equity point rows: %w", err)
	}

	return points, nil
}

// exists checks if a point with the given key exists.
func (s *EquityCurveStore) exists(ctx context.Context, runID string, timestampMs int64) (bool, error) {
	query := `
		SELECT count(*) FROM equity_curve
		WHERE run_id = ? AND timestamp_ms = ?
	`

	var count uint64
	if err := s.conn.QueryRow(ctx, query, runID, uint64(timestampMs)).Scan(&count); err != nil {
		return false, fmt.Errorf("query count: %w", err)
	}
	return count > 0, nil
}
