package reporting

import (
	"fmt"
	"strings"
)

// RenderMarkdown renders the report as a Markdown string.
func RenderMarkdown(report *Report) string {
	var sb strings.Builder

	sb.WriteString("# Backtest Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")))

	sb.WriteString("## Runs\n\n")
	sb.WriteString("| Strategy | Symbol | Final Equity | Sharpe | Max DD | Trades | Win Rate |\n")
	sb.WriteString("|----------|--------|--------------|--------|--------|--------|----------|\n")
	for _, r := range report.Runs {
		sb.WriteString(fmt.Sprintf("| %s | %s | %.2f | %.4f | %.2f%% | %d | %.2f%% |\n",
			r.Run.StrategyID,
			r.Run.Symbol,
			r.Run.FinalEquity,
			r.Metrics.Sharpe,
			r.Metrics.MaxDrawdown*100,
			r.Metrics.TotalTrades,
			r.Metrics.WinRate*100,
		))
	}
	sb.WriteString("\n")

	for _, r := range report.Runs {
		sb.WriteString(fmt.Sprintf("## %s\n\n", r.Run.StrategyID))
		sb.WriteString(fmt.Sprintf("- Run ID: `%s`\n", r.Run.RunID))
		sb.WriteString(fmt.Sprintf("- Bars: %d\n", r.Run.BarCount))
		sb.WriteString(fmt.Sprintf("- Mean spread: %.6f (half %.6f, slippage %.6f)\n",
			r.Run.Execution.MeanSpreadPct,
			r.Run.Execution.HalfSpreadPct,
			r.Run.Execution.SlippagePct))
		sb.WriteString(fmt.Sprintf("- Annualized return: %.4f\n", r.Metrics.AnnualizedReturn))
		sb.WriteString(fmt.Sprintf("- Total return: %.4f\n", r.Metrics.TotalReturn))
		sb.WriteString(fmt.Sprintf("- Sortino: %.4f\n", r.Metrics.Sortino))
		sb.WriteString(fmt.Sprintf("- Trades: %d (%d wins / %d losses)\n\n",
			r.Metrics.TotalTrades, r.Metrics.Wins, r.Metrics.Losses))
	}

	return sb.String()
}
