package reporting

import (
	"fmt"
	"strings"

	"futures-risk-lab/internal/domain"
)

// RenderMetricsCSV renders one row per run.
func RenderMetricsCSV(runs []RunReport) string {
	var sb strings.Builder

	sb.WriteString("run_id,symbol,strategy_id,starting_cash,final_equity,")
	sb.WriteString("sharpe,sortino,max_drawdown,annualized_return,total_return,")
	sb.WriteString("total_trades,wins,losses,win_rate\n")

	for _, r := range runs {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%.2f,%.2f,%.6f,%.6f,%.6f,%.6f,%.6f,%d,%d,%d,%.6f\n",
			r.Run.RunID,
			r.Run.Symbol,
			r.Run.StrategyID,
			r.Run.StartingCash,
			r.Run.FinalEquity,
			r.Metrics.Sharpe,
			r.Metrics.Sortino,
			r.Metrics.MaxDrawdown,
			r.Metrics.AnnualizedReturn,
			r.Metrics.TotalReturn,
			r.Metrics.TotalTrades,
			r.Metrics.Wins,
			r.Metrics.Losses,
			r.Metrics.WinRate,
		))
	}

	return sb.String()
}

// RenderTradesCSV renders the trade list for one run.
func RenderTradesCSV(trades []*domain.TradeRecord) string {
	var sb strings.Builder

	sb.WriteString("trade_id,run_id,symbol,strategy_id,direction,")
	sb.WriteString("entry_time_ms,entry_signal_price,entry_fill_price,size,")
	sb.WriteString("exit_time_ms,exit_signal_price,exit_fill_price,exit_reason,")
	sb.WriteString("commission_cost,slippage_cost,gross_pnl,net_pnl,outcome_class,hold_bars\n")

	for _, t := range trades {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%d,%.6f,%.6f,%d,%d,%.6f,%.6f,%s,%.6f,%.6f,%.6f,%.6f,%s,%d\n",
			t.TradeID,
			t.RunID,
			t.Symbol,
			t.StrategyID,
			t.Direction,
			t.EntryTimeMs,
			t.EntrySignalPrice,
			t.EntryFillPrice,
			t.Size,
			t.ExitTimeMs,
			t.ExitSignalPrice,
			t.ExitFillPrice,
			t.ExitReason,
			t.CommissionCost,
			t.SlippageCost,
			t.GrossPnL,
			t.NetPnL,
			t.OutcomeClass,
			t.HoldBars,
		))
	}

	return sb.String()
}

// RenderEquityCSV renders the equity curve for one run.
func RenderEquityCSV(points []*domain.EquityPoint) string {
	var sb strings.Builder

	sb.WriteString("run_id,timestamp_ms,equity,position\n")
	for _, p := range points {
		sb.WriteString(fmt.Sprintf("%s,%d,%.6f,%d\n",
			p.RunID, p.TimestampMs, p.Equity, p.Position))
	}

	return sb.String()
}
