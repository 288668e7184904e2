package backtest

import "github.com/yourusername/stock-sentry/internal/models"

// StrategyLabel identifies the built-in replay strategy in reports.
const StrategyLabel = "dual_ma_dual_slope"

// buildReport aggregates a trade sequence. With no trades it returns
// the neutral zero report, still carrying the strategy label.
func buildReport(trades []models.Trade) models.BacktestReport {
	report := models.BacktestReport{
		TradeCount:    len(trades),
		StrategyLabel: StrategyLabel,
	}
	if len(trades) == 0 {
		return report
	}

	wins := 0
	compounded := 1.0
	for _, t := range trades {
		if t.Return > 0 {
			wins++
		}
		compounded *= 1 + t.Return
	}

	report.WinRatePct = models.Round1(float64(wins) / float64(len(trades)) * 100)
	report.TotalReturnPct = models.Round1((compounded - 1) * 100)
	return report
}
