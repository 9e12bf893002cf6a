package memory

import (
	"context"
	"errors"
	"testing"

	"futures-risk-lab/internal/domain"
	"futures-risk-lab/internal/storage"
)

func testTrade(tradeID, runID string, entryMs int64) *domain.TradeRecord {
	return &domain.TradeRecord{
		TradeID:     tradeID,
		RunID:       runID,
		Symbol:      "MES",
		StrategyID:  "SMA_CROSS_f10_s30",
		Direction:   domain.DirectionLong,
		EntryTimeMs: entryMs,
		Size:        3,
	}
}

func TestTradeRecordStore_InsertAndGet(t *testing.T) {
	s := NewTradeRecordStore()
	ctx := context.Background()

	if err := s.Insert(ctx, testTrade("t1", "r1", 100)); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := s.GetByID(ctx, "t1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.RunID != "r1" || got.Size != 3 {
		t.Errorf("unexpected trade: %+v", got)
	}

	if _, err := s.GetByID(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestTradeRecordStore_DuplicateInsert(t *testing.T) {
	s := NewTradeRecordStore()
	ctx := context.Background()

	if err := s.Insert(ctx, testTrade("t1", "r1", 100)); err != nil {
		t.Fatal(err)
	}
	if err := s.Insert(ctx, testTrade("t1", "r1", 100)); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("err = %v, want ErrDuplicateKey", err)
	}
}

func TestTradeRecordStore_GetByRunID(t *testing.T) {
	s := NewTradeRecordStore()
	ctx := context.Background()

	err := s.InsertBulk(ctx, []*domain.TradeRecord{
		testTrade("t2", "r1", 300),
		testTrade("t1", "r1", 100),
		testTrade("t3", "r2", 200),
	})
	if err != nil {
		t.Fatal(err)
	}

	trades, err := s.GetByRunID(ctx, "r1")
	if err != nil {
		t.Fatal(err)
	}
	if len(trades) != 2 {
		t.Fatalf("got %d trades, want 2", len(trades))
	}
	if trades[0].TradeID != "t1" || trades[1].TradeID != "t2" {
		t.Error("trades not ordered by entry time")
	}
}

func TestTradeRecordStore_BulkIntraBatchDuplicate(t *testing.T) {
	s := NewTradeRecordStore()

	err := s.InsertBulk(context.Background(), []*domain.TradeRecord{
		testTrade("t1", "r1", 100),
		testTrade("t1", "r1", 200),
	})
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("err = %v, want ErrDuplicateKey", err)
	}

	// Failed batch must leave the store empty.
	if _, err := s.GetByID(context.Background(), "t1"); !errors.Is(err, storage.ErrNotFound) {
		t.Error("failed batch partially applied")
	}
}
