// Package backtest replays a price history through the dual-MA
// dual-slope entry rule with a bracketed exit, producing trade-level
// and aggregate statistics.
package backtest

import (
	"github.com/sirupsen/logrus"
	"github.com/yourusername/stock-sentry/internal/models"
	"github.com/yourusername/stock-sentry/internal/strategy"
)

// Replay window bounds: scanning starts once MA60 is defined and covers
// at most the latest 250 trading days.
const (
	warmupBars  = 60
	maxScanBars = 250
)

// walkState is the explicit state of the replay walk. Trades can never
// overlap because the walk leaves holding state only by jumping past
// the holding period.
type walkState int

const (
	stateScanning walkState = iota
	stateHolding
)

// Engine runs deterministic single-pass strategy replays.
type Engine struct {
	config Config
	logger *logrus.Logger
}

// NewEngine creates a backtest engine.
func NewEngine(cfg Config, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{config: cfg, logger: logger}
}

// Config returns the replay configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Run replays the series and returns the trade sequence and its
// aggregate report. Replays are synchronous, allocation-light and
// deterministic: the same series always yields the same trades.
func (e *Engine) Run(s *models.PriceSeries) ([]models.Trade, models.BacktestReport) {
	trades := e.replay(s)
	report := buildReport(trades)

	e.logger.WithFields(logrus.Fields{
		"ticker": s.Ticker,
		"bars":   s.Len(),
		"trades": report.TradeCount,
	}).Debug("Backtest replay complete")

	return trades, report
}

func (e *Engine) replay(s *models.PriceSeries) []models.Trade {
	n := s.Len()
	end := n - e.config.HoldingDays
	start := warmupBars
	if n-maxScanBars > start {
		start = n - maxScanBars
	}

	params := strategy.Params{
		VolMultiplier: e.config.VolMultiplier,
		RSILimit:      e.config.RSILimit,
	}

	var trades []models.Trade
	state := stateScanning
	for i := start; i < end; {
		switch state {
		case stateScanning:
			checks, ok := strategy.EvaluateAt(s, i, params)
			if !ok || !checks.Entry() {
				i++
				continue
			}
			state = stateHolding
		case stateHolding:
			trades = append(trades, e.closeTrade(s, i))
			i += e.config.HoldingDays
			state = stateScanning
		}
	}
	return trades
}

// closeTrade simulates the bracketed exit for an entry at index i. The
// stop loss is checked before the take profit on every day, so a bar
// spanning both levels resolves as a loss.
func (e *Engine) closeTrade(s *models.PriceSeries, i int) models.Trade {
	entry := s.Bars[i]
	stopPrice := entry.Close * (1 - e.config.StopLossPct)
	profitPrice := entry.Close * (1 + e.config.TakeProfitPct)

	trade := models.Trade{
		EntryDate:  entry.Date,
		EntryPrice: entry.Close,
	}

	for j := 1; j <= e.config.HoldingDays; j++ {
		day := s.Bars[i+j]
		if day.Low <= stopPrice {
			trade.ExitDate = day.Date
			trade.ExitPrice = stopPrice
			trade.Return = -e.config.StopLossPct
			trade.ExitReason = models.ExitStopLoss
			return trade
		}
		if day.High >= profitPrice {
			trade.ExitDate = day.Date
			trade.ExitPrice = profitPrice
			trade.Return = e.config.TakeProfitPct
			trade.ExitReason = models.ExitTakeProfit
			return trade
		}
	}

	last := s.Bars[i+e.config.HoldingDays]
	trade.ExitDate = last.Date
	trade.ExitPrice = last.Close
	trade.Return = (last.Close - entry.Close) / entry.Close
	trade.ExitReason = models.ExitTimeLimit
	return trade
}
