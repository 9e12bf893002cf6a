package reporting

import (
	"context"
	"time"

	"futures-risk-lab/internal/observability"
	"futures-risk-lab/internal/storage"
)

// Generator produces reports from stored runs.
type Generator struct {
	runStore     storage.RunStore
	tradeStore   storage.TradeRecordStore
	metricsStore storage.RunMetricsStore
	now          func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(
	runStore storage.RunStore,
	tradeStore storage.TradeRecordStore,
	metricsStore storage.RunMetricsStore,
) *Generator {
	return &Generator{
		runStore:     runStore,
		tradeStore:   tradeStore,
		metricsStore: metricsStore,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate builds a report covering the given runs.
func (g *Generator) Generate(ctx context.Context, runIDs []string) (*Report, error) {
	report := &Report{
		GeneratedAt: g.now(),
		Runs:        make([]RunReport, 0, len(runIDs)),
	}

	for _, runID := range runIDs {
		run, err := g.runStore.GetByID(ctx, runID)
		if err != nil {
			return nil, err
		}
		metrics, err := g.metricsStore.GetByRunID(ctx, runID)
		if err != nil {
			return nil, err
		}
		trades, err := g.tradeStore.GetByRunID(ctx, runID)
		if err != nil {
			return nil, err
		}

		report.Runs = append(report.Runs, RunReport{
			Run:     run,
			Metrics: metrics,
			Trades:  trades,
		})
	}

	observability.DefaultMetrics.ReportsGenerated.Inc()
	return report, nil
}
