package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
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
	wsEndpoint := flag.String("ws-endpoint", "", "WebSocket endpoint streaming settled bars (required)")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage")
	metricsAddr := flag.String("metrics-addr", ":9090", "Prometheus metrics HTTP address (empty to disable)")

	flag.Parse()

	logger := log.New(os.Stdout, "[stream] ", log.LstdFlags)

	if *wsEndpoint == "" {
		logger.Fatal("--ws-endpoint is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", observability.Handler())
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ok"))
			})
			logger.Printf("Starting metrics server on %s", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil && err != http.ErrServerClosed {
				logger.Printf("Metrics server error: %v", err)
			}
		}()
	}

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

	feed, err := marketdata.NewFeed(ctx, *wsEndpoint, nil)
	if err != nil {
		logger.Fatalf("connect feed: %v", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		feed.Close()
		cancel()
	}()

	logger.Printf("Streaming bars from %s", *wsEndpoint)

	// Per-symbol high-water marks keep inserts strictly increasing even when
	// the feed replays bars after a reconnect.
	lastTs := make(map[string]int64)
	stored := 0

	for bar := range feed.Bars() {
		if err := marketdata.ValidateBars([]*domain.Bar{bar}); err != nil {
			observability.DefaultMetrics.BarValidationErrors.WithLabelValues("invalid_bar").Inc()
			logger.Printf("dropping invalid bar for %s at %d: %v", bar.Symbol, bar.TimestampMs, err)
			continue
		}
		if prev, ok := lastTs[bar.Symbol]; ok && bar.TimestampMs <= prev {
			observability.DefaultMetrics.BarValidationErrors.WithLabelValues("stale_timestamp").Inc()
			continue
		}

		err := barStore.InsertBulk(ctx, []*domain.Bar{bar})
		if errors.Is(err, storage.ErrDuplicateKey) {
			lastTs[bar.Symbol] = bar.TimestampMs
			continue
		}
		if err != nil {
			logger.Printf("store bar for %s at %d: %v", bar.Symbol, bar.TimestampMs, err)
			continue
		}

		lastTs[bar.Symbol] = bar.TimestampMs
		stored++
		observability.DefaultMetrics.BarsIngested.Inc()
	}

	logger.Printf("Feed closed: %d bars stored, %d messages dropped", stored, feed.Dropped())
}
