package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"futures-risk-lab/internal/backtest"
	"futures-risk-lab/internal/compare"
	"futures-risk-lab/internal/domain"
	"futures-risk-lab/internal/execution"
	"futures-risk-lab/internal/marketdata"
	"futures-risk-lab/internal/observability"
	"futures-risk-lab/internal/storage"
	chstore "futures-risk-lab/internal/storage/clickhouse"
	"futures-risk-lab/internal/storage/memory"
	"futures-risk-lab/internal/storage/migrations"
	pgstore "futures-risk-lab/internal/storage/postgres"
	"futures-risk-lab/internal/strategy"
)

func main() {
	// Data source
	csvPath := flag.String("csv", "", "CSV file with daily OHLCV bars (reads from ClickHouse when empty)")
	symbol := flag.String("symbol", "MES", "Instrument symbol")

	// Strategy
	strategyType := flag.String("strategy", "", "Strategy: SMA_CROSS, SMA_CROSS_FILTERED (empty runs both and compares)")
	fastPeriod := flag.Int("fast", 10, "Fast SMA period")
	slowPeriod := flag.Int("slow", 30, "Slow SMA period")

	// Sizing
	startingCash := flag.Float64("starting-cash", 100000, "Starting cash")
	targetVol := flag.Float64("target-vol", domain.DefaultSizerConfig.TargetVol, "Annual volatility target")
	lookback := flag.Int("vol-lookback", domain.DefaultSizerConfig.Lookback, "Volatility estimation window in bars")
	maxLeverage := flag.Float64("max-leverage", domain.DefaultSizerConfig.MaxLeverage, "Maximum exposure / equity ratio")
	contractSize := flag.Float64("contract-size", domain.DefaultSizerConfig.ContractSize, "Contract multiplier")
	minSize := flag.Int("min-size", domain.DefaultSizerConfig.MinSize, "Minimum order size in contracts")

	// Execution
	commissionPct := flag.Float64("commission-pct", execution.DefaultCalibrateOptions.CommissionPct, "Commission as fraction of notional per side")
	slippageMult := flag.Float64("slippage-multiplier", execution.DefaultCalibrateOptions.SlippageMultiplier, "Half-spread to slippage multiplier")

	// Microstructure filter
	minVolumePct := flag.Float64("min-volume-pct", domain.DefaultMicrostructureConfig.MinVolumePctAvg, "Minimum volume as fraction of 20-bar average")
	minHolding := flag.Int("min-holding-period", domain.DefaultMicrostructureConfig.MinHoldingPeriod, "Minimum bars between exit and next entry")
	maxSpreadPct := flag.Float64("max-spread-pct", 0, "Maximum per-bar spread estimate (0 disables the check)")

	// Storage
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage")

	// Output
	outputJSON := flag.Bool("json", false, "Output as JSON")
	metricsAddr := flag.String("metrics-addr", "", "Prometheus metrics HTTP address (empty to disable)")

	flag.Parse()

	logger := log.New(os.Stderr, "[backtest] ", log.LstdFlags)

	if *strategyType != "" {
		*strategyType = strings.ToUpper(*strategyType)
		if *strategyType != domain.StrategyTypeSMACross && *strategyType != domain.StrategyTypeSMACrossFiltered {
			logger.Fatalf("Invalid strategy: %s. Must be SMA_CROSS or SMA_CROSS_FILTERED", *strategyType)
		}
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

	if *metricsAddr != "" {
		go serveMetrics(logger, *metricsAddr)
	}

	// Stores
	stores := backtest.Stores{
		Runs:    memory.NewRunStore(),
		Trades:  memory.NewTradeRecordStore(),
		Equity:  memory.NewEquityCurveStore(),
		Metrics: memory.NewRunMetricsStore(),
	}
	var barStore storage.BarStore

	if !*useMemory {
		if *postgresDSN == "" {
			logger.Fatal("--postgres-dsn is required when not using --use-memory (runs, trades, metrics)")
		}
		if *clickhouseDSN == "" {
			logger.Fatal("--clickhouse-dsn is required when not using --use-memory (bars, equity curves)")
		}

		pool, err := pgstore.NewPool(ctx, *postgresDSN)
		if err != nil {
			logger.Fatalf("connect to postgres: %v", err)
		}
		defer pool.Close()
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			logger.Fatalf("run postgres migrations: %v", err)
		}

		conn, err := migrations.RunClickhouseMigrations(ctx, *clickhouseDSN)
		if err != nil {
			logger.Fatalf("run clickhouse migrations: %v", err)
		}
		defer conn.Close()

		stores.Runs = pgstore.NewRunStore(pool)
		stores.Trades = pgstore.NewTradeRecordStore(pool)
		stores.Metrics = pgstore.NewRunMetricsStore(pool)
		stores.Equity = chstore.NewEquityCurveStore(conn)
		barStore = chstore.NewBarStore(conn)
	}

	// Bars
	var bars []*domain.Bar
	var err error
	switch {
	case *csvPath != "":
		bars, err = marketdata.LoadCSV(*csvPath, *symbol)
	case barStore != nil:
		bars, err = barStore.GetBySymbol(ctx, *symbol)
	default:
		logger.Fatal("--csv is required with --use-memory")
	}
	if err != nil {
		logger.Fatalf("load bars: %v", err)
	}
	if err := marketdata.ValidateBars(bars); err != nil {
		logger.Fatalf("validate bars: %v", err)
	}
	logger.Printf("Loaded %d bars for %s", len(bars), *symbol)

	var spreadCeiling *float64
	if *maxSpreadPct > 0 {
		spreadCeiling = maxSpreadPct
	}
	micro := domain.MicrostructureConfig{
		MinVolumePctAvg:  *minVolumePct,
		MaxSpreadPct:     spreadCeiling,
		MinHoldingPeriod: *minHolding,
	}

	cfg := backtest.Config{
		Symbol:       *symbol,
		StartingCash: *startingCash,
		Sizer: domain.SizerConfig{
			TargetVol:     *targetVol,
			Lookback:      *lookback,
			Annualization: domain.DefaultSizerConfig.Annualization,
			MaxLeverage:   *maxLeverage,
			ContractSize:  *contractSize,
			MinSize:       *minSize,
		},
		Calibrate: execution.CalibrateOptions{
			CommissionPct:      *commissionPct,
			SlippageMultiplier: *slippageMult,
		},
	}

	runner := backtest.NewRunner(stores, logger)

	runOne := func(stratType string) (*backtest.Results, *domain.RunMetrics) {
		strat, err := strategy.FromConfig(domain.StrategyConfig{
			StrategyType: stratType,
			FastPeriod:   *fastPeriod,
			SlowPeriod:   *slowPeriod,
			Micro:        &micro,
		})
		if err != nil {
			logger.Fatalf("create strategy: %v", err)
		}

		results, runMetrics, err := runner.Run(ctx, cfg, strat, bars)
		if err != nil {
			logger.Fatalf("run %s: %v", stratType, err)
		}
		logger.Printf("Run %s complete: %d trades, final equity %.2f",
			results.Run.RunID, len(results.Trades), results.Run.FinalEquity)
		return results, runMetrics
	}

	if *strategyType != "" {
		results, runMetrics := runOne(*strategyType)
		printRun(logger, results, runMetrics, *outputJSON)
		return
	}

	// No strategy selected: run baseline and filtered, then compare.
	baseResults, baseMetrics := runOne(domain.StrategyTypeSMACross)
	enhResults, enhMetrics := runOne(domain.StrategyTypeSMACrossFiltered)

	verdict, err := compare.NewEvaluator().Evaluate(compare.Input{
		BaselineRun:     baseResults.Run,
		EnhancedRun:     enhResults.Run,
		BaselineMetrics: baseMetrics,
		EnhancedMetrics: enhMetrics,
	})
	if err != nil {
		logger.Fatalf("compare runs: %v", err)
	}

	if *outputJSON {
		printJSON(logger, map[string]any{
			"baseline": runPayload(baseResults, baseMetrics),
			"enhanced": runPayload(enhResults, enhMetrics),
			"verdict":  verdict,
		})
		return
	}
	fmt.Println(compare.RenderMarkdown(verdict))
}

func printRun(logger *log.Logger, results *backtest.Results, runMetrics *domain.RunMetrics, asJSON bool) {
	if asJSON {
		printJSON(logger, runPayload(results, runMetrics))
		return
	}

	fmt.Printf("Run:          %s\n", results.Run.RunID)
	fmt.Printf("Strategy:     %s\n", results.Run.StrategyID)
	fmt.Printf("Bars:         %d\n", results.Run.BarCount)
	fmt.Printf("Trades:       %d (%d entries skipped at zero size)\n", results.Run.TradeCount, results.ZeroSizeSkips)
	fmt.Printf("Final equity: %.2f (start %.2f)\n", results.Run.FinalEquity, results.Run.StartingCash)
	fmt.Printf("Sharpe:       %.4f\n", runMetrics.Sharpe)
	fmt.Printf("Max drawdown: %.2f%%\n", runMetrics.MaxDrawdown*100)
	fmt.Printf("Win rate:     %.2f%%\n", runMetrics.WinRate*100)
}

func runPayload(results *backtest.Results, runMetrics *domain.RunMetrics) map[string]any {
	return map[string]any{
		"run":             results.Run,
		"metrics":         runMetrics,
		"trades":          results.Trades,
		"zero_size_skips": results.ZeroSizeSkips,
	}
}

func printJSON(logger *log.Logger, v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logger.Fatalf("encode output: %v", err)
	}
}

func serveMetrics(logger *log.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", observability.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	logger.Printf("Starting metrics server on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		logger.Printf("Metrics server error: %v", err)
	}
}
