package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"futures-risk-lab/internal/reporting"
	pgstore "futures-risk-lab/internal/storage/postgres"
)

func main() {
	runIDs := flag.String("run-ids", "", "Comma-separated run IDs to include (empty includes all runs for --symbol)")
	symbol := flag.String("symbol", "", "Include all runs for this symbol when --run-ids is empty")
	format := flag.String("format", "markdown", "Output format: markdown, csv")
	output := flag.String("output", "", "Output file (stdout when empty)")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string (required)")

	flag.Parse()

	logger := log.New(os.Stderr, "[report] ", log.LstdFlags)

	if *postgresDSN == "" {
		logger.Fatal("--postgres-dsn is required")
	}
	if *format != "markdown" && *format != "csv" {
		logger.Fatalf("Invalid format: %s. Must be markdown or csv", *format)
	}

	ctx := context.Background()

	pool, err := pgstore.NewPool(ctx, *postgresDSN)
	if err != nil {
		logger.Fatalf("connect to postgres: %v", err)
	}
	defer pool.Close()

	runStore := pgstore.NewRunStore(pool)

	var ids []string
	if *runIDs != "" {
		for _, id := range strings.Split(*runIDs, ",") {
			if trimmed := strings.TrimSpace(id); trimmed != "" {
				ids = append(ids, trimmed)
			}
		}
	} else {
		if *symbol == "" {
			logger.Fatal("either --run-ids or --symbol is required")
		}
		runs, err := runStore.GetBySymbol(ctx, *symbol)
		if err != nil {
			logger.Fatalf("list runs for %s: %v", *symbol, err)
		}
		for _, r := range runs {
			ids = append(ids, r.RunID)
		}
	}
	if len(ids) == 0 {
		logger.Fatal("no runs to report on")
	}

	generator := reporting.NewGenerator(
		runStore,
		pgstore.NewTradeRecordStore(pool),
		pgstore.NewRunMetricsStore(pool),
	)

	report, err := generator.Generate(ctx, ids)
	if err != nil {
		logger.Fatalf("generate report: %v", err)
	}

	var rendered string
	switch *format {
	case "markdown":
		rendered = reporting.RenderMarkdown(report)
	case "csv":
		rendered = reporting.RenderMetricsCSV(report.Runs)
	}

	if *output == "" {
		fmt.Print(rendered)
		return
	}
	if err := os.WriteFile(*output, []byte(rendered), 0o644); err != nil {
		logger.Fatalf("write output: %v", err)
	}
	logger.Printf("Report written to %s (%d runs)", *output, len(report.Runs))
}
