package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"futures-risk-lab/internal/compare"
	pgstore "futures-risk-lab/internal/storage/postgres"
)

func main() {
	baselineID := flag.String("baseline", "", "Baseline run ID (required)")
	enhancedID := flag.String("enhanced", "", "Enhanced run ID (required)")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string (required)")
	outputJSON := flag.Bool("json", false, "Output as JSON")

	flag.Parse()

	logger := log.New(os.Stderr, "[compare] ", log.LstdFlags)

	if *baselineID == "" || *enhancedID == "" {
		logger.Fatal("--baseline and --enhanced are required")
	}
	if *postgresDSN == "" {
		logger.Fatal("--postgres-dsn is required")
	}

	ctx := context.Background()

	pool, err := pgstore.NewPool(ctx, *postgresDSN)
	if err != nil {
		logger.Fatalf("connect to postgres: %v", err)
	}
	defer pool.Close()

	runStore := pgstore.NewRunStore(pool)
	metricsStore := pgstore.NewRunMetricsStore(pool)

	baseRun, err := runStore.GetByID(ctx, *baselineID)
	if err != nil {
		logger.Fatalf("load baseline run: %v", err)
	}
	enhRun, err := runStore.GetByID(ctx, *enhancedID)
	if err != nil {
		logger.Fatalf("load enhanced run: %v", err)
	}
	baseMetrics, err := metricsStore.GetByRunID(ctx, *baselineID)
	if err != nil {
		logger.Fatalf("load baseline metrics: %v", err)
	}
	enhMetrics, err := metricsStore.GetByRunID(ctx, *enhancedID)
	if err != nil {
		logger.Fatalf("load enhanced metrics: %v", err)
	}

	result, err := compare.NewEvaluator().Evaluate(compare.Input{
		BaselineRun:     baseRun,
		EnhancedRun:     enhRun,
		BaselineMetrics: baseMetrics,
		EnhancedMetrics: enhMetrics,
	})
	if err != nil {
		logger.Fatalf("evaluate: %v", err)
	}

	if *outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			logger.Fatalf("encode output: %v", err)
		}
		return
	}
	fmt.Println(compare.RenderMarkdown(result))
}
