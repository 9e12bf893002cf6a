package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"futures-risk-lab/internal/domain"
	"futures-risk-lab/internal/storage"
)

func createTestTrade(tradeID, runID string, entryMs int64) *domain.TradeRecord {
	return &domain.TradeRecord{
		TradeID:          tradeID,
		RunID:            runID,
		Symbol:           "MES",
		StrategyID:       "SMA_CROSS_f10_s30",
		Direction:        domain.DirectionLong,
		EntryTimeMs:      entryMs,
		EntrySignalPrice: 4760.75,
		EntryFillPrice:   4761.23,
		Size:             3,
		ExitTimeMs:       entryMs + 5*86400000,
		ExitSignalPrice:  4790.00,
		ExitFillPrice:    4789.52,
		ExitReason:       domain.ExitReasonReversal,
		CommissionCost:   9.55,
		SlippageCost:     2.88,
		GrossPnL:         438.75,
		NetPnL:           426.32,
		OutcomeClass:     domain.OutcomeClassWin,
		HoldBars:         5,
	}
}

func insertParentRun(t *testing.T, ctx context.Context, pool *Pool, runID string) {
	t.Helper()
	require.NoError(t, NewRunStore(pool).Insert(ctx, createTestRun(runID)))
}

func TestTradeRecordStore_InsertAndGetByID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	insertParentRun(t, ctx, pool, "run-001")
	store := NewTradeRecordStore(pool)

	trade := createTestTrade("trade-001", "run-001", 1704153600000)
	require.NoError(t, store.Insert(ctx, trade))

	got, err := store.GetByID(ctx, "trade-001")
	require.NoError(t, err)
	assert.Equal(t, trade.Direction, got.Direction)
	assert.Equal(t, trade.Size, got.Size)
	assert.InDelta(t, trade.NetPnL, got.NetPnL, 1e-9)
	assert.Equal(t, trade.HoldBars, got.HoldBars)

	assert.ErrorIs(t, store.Insert(ctx, trade), storage.ErrDuplicateKey)

	_, err = store.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestTradeRecordStore_InsertBulkAtomic(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	insertParentRun(t, ctx, pool, "run-001")
	store := NewTradeRecordStore(pool)

	require.NoError(t, store.Insert(ctx, createTestTrade("trade-001", "run-001", 1000)))

	// Second element collides; the first must roll back with it.
	err := store.InsertBulk(ctx, []*domain.TradeRecord{
		createTestTrade("trade-002", "run-001", 2000),
		createTestTrade("trade-001", "run-001", 1000),
	})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	_, err = store.GetByID(ctx, "trade-002")
	assert.ErrorIs(t, err, storage.ErrNotFound, "failed batch partially applied")
}

func TestTradeRecordStore_GetByRunID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	insertParentRun(t, ctx, pool, "run-001")
	insertParentRun(t, ctx, pool, "run-002")
	store := NewTradeRecordStore(pool)

	require.NoError(t, store.InsertBulk(ctx, []*domain.TradeRecord{
		createTestTrade("trade-b", "run-001", 2000),
		createTestTrade("trade-a", "run-001", 1000),
		createTestTrade("trade-c", "run-002", 1500),
	}))

	trades, err := store.GetByRunID(ctx, "run-001")
	require.NoError(t, err)
	require.Len(t, trades, 2)
	assert.Equal(t, "trade-a", trades[0].TradeID, "ordered by entry time")
}
