package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"futures-risk-lab/internal/domain"
	"futures-risk-lab/internal/marketdata"
	"futures-risk-lab/internal/observability"
	"futures-risk-lab/internal/storage"
	chstore "futures-risk-lab/internal/storage/clickhouse"
	"futures-risk-lab/internal/storage/memory"
	"futures-risk-lab/internal/storage/migrations"
)

func main() {
	csvPath := flag.String("csv", "", "CSV file with daily OHLCV bars (required)")
	symbol := flag.String("symbol", "MES", "Instrument symbol")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage (dry run)")
	batchSize := flag.Int("batch-size", 500, "Bars per insert batch")

	flag.Parse()

	logger := log.New(os.Stderr, "[ingest] ", log.LstdFlags)

	if *csvPath == "" {
		logger.Fatal("--csv is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		cancel()
	}()

	var barStore storage.BarStore = memory.NewBarStore()
	if !*useMemory {
		if *clickhouseDSN == "" {
			logger.Fatal("--clickhouse-dsn is required when not using --use-memory")
		}
		conn, err := migrations.RunClickhouseMigrations(ctx, *clickhouseDSN)
		if err != nil {
			logger.Fatalf("run clickhouse migrations: %v", err)
		}
		defer conn.Close()
		barStore = chstore.NewBarStore(conn)
	}

	bars, err := marketdata.LoadCSV(*csvPath, *symbol)
	if err != nil {
		logger.Fatalf("load csv: %v", err)
	}
	if err := marketdata.ValidateBars(bars); err != nil {
		observability.DefaultMetrics.BarValidationErrors.WithLabelValues("invalid_series").Inc()
		logger.Fatalf("validate bars: %v", err)
	}

	inserted := 0
	for start := 0; start < len(bars); start += *batchSize {
		end := start + *batchSize
		if end > len(bars) {
			end = len(bars)
		}
		batch := bars[start:end]

		if err := barStore.InsertBulk(ctx, batch); err != nil {
			logger.Fatalf("insert batch at bar %d: %v", start, err)
		}
		inserted += len(batch)
		observability.DefaultMetrics.BarsIngested.Add(float64(len(batch)))
	}

	logger.Printf("Ingested %d bars for %s", inserted, *symbol)
	printRange(logger, bars)
}

func printRange(logger *log.Logger, bars []*domain.Bar) {
	if len(bars) == 0 {
		return
	}
	logger.Printf("Time range: %d .. %d", bars[0].TimestampMs, bars[len(bars)-1].TimestampMs)
}
