package clickhouse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"futures-risk-lab/internal/domain"
	"futures-risk-lab/internal/storage"
)

func testBar(symbol string, ts int64, close float64) *domain.Bar {
	return &domain.Bar{
		Symbol:      symbol,
		TimestampMs: ts,
		Open:        close - 1,
		High:        close + 2,
		Low:         close - 2,
		Close:       close,
		Volume:      1200,
	}
}

func TestBarStore_InsertBulkAndGetBySymbol(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	store := NewBarStore(conn)

	require.NoError(t, store.InsertBulk(ctx, []*domain.Bar{
		testBar("MES", 2000, 4761.25),
		testBar("MES", 1000, 4755.50),
		testBar("ES", 1000, 4756.00),
	}))

	bars, err := store.GetBySymbol(ctx, "MES")
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, int64(1000), bars[0].TimestampMs, "ordered by timestamp")
	assert.Equal(t, 4755.50, bars[0].Close)
	assert.Equal(t, 1200.0, bars[0].Volume)
}

func TestBarStore_GetByTimeRangeInclusive(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	store := NewBarStore(conn)
	require.NoError(t, store.InsertBulk(ctx, []*domain.Bar{
		testBar("MES", 1000, 1),
		testBar("MES", 2000, 2),
		testBar("MES", 3000, 3),
		testBar("MES", 4000, 4),
	}))

	bars, err := store.GetByTimeRange(ctx, "MES", 2000, 3000)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, int64(2000), bars[0].TimestampMs)
	assert.Equal(t, int64(3000), bars[1].TimestampMs)
}

func TestBarStore_DuplicateDetection(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	store := NewBarStore(conn)

	// Intra-batch duplicate
	err := store.InsertBulk(ctx, []*domain.Bar{
		testBar("MES", 1000, 1),
		testBar("MES", 1000, 2),
	})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	// Duplicate against an existing row
	require.NoError(t, store.InsertBulk(ctx, []*domain.Bar{testBar("MES", 1000, 1)}))
	err = store.InsertBulk(ctx, []*domain.Bar{testBar("MES", 1000, 1)})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestBarStore_EmptyBatchIsNoop(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewBarStore(conn)
	require.NoError(t, store.InsertBulk(context.Background(), nil))
}
