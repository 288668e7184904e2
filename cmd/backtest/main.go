// Package main provides the entry point for the backtesting CLI tool.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/stock-sentry/internal/backtest"
	"github.com/yourusername/stock-sentry/internal/marketdata"
)

func main() {
	var (
		csvPath    = flag.String("csv", "", "Path to a daily-bar CSV file (date,open,high,low,close,volume)")
		ticker     = flag.String("ticker", "OFFLINE", "Ticker label for the series")
		volMult    = flag.Float64("vol-mult", 1.25, "Entry volume multiplier")
		rsiLimit   = flag.Float64("rsi-limit", 82, "Entry RSI ceiling")
		stopLoss   = flag.Float64("stop", 0.05, "Stop loss fraction")
		takeProfit = flag.Float64("profit", 0.10, "Take profit fraction")
		holding    = flag.Int("days", 5, "Maximum holding days")
		asJSON     = flag.Bool("json", false, "Print the report as JSON")
	)
	flag.Parse()

	logger := newLogger()

	if *csvPath == "" {
		logger.Fatal("-csv is required")
	}

	cfg := backtest.Config{
		VolMultiplier: *volMult,
		RSILimit:      *rsiLimit,
		StopLossPct:   *stopLoss,
		TakeProfitPct: *takeProfit,
		HoldingDays:   *holding,
	}
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid backtest configuration")
	}

	provider := marketdata.NewCSVProvider("")
	series, err := provider.LoadFile(*ticker, *csvPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load CSV history")
	}

	engine := backtest.NewEngine(cfg, logger)
	trades, report := engine.Run(series)

	if *asJSON {
		out := struct {
			Report interface{} `json:"report"`
			Trades interface{} `json:"trades"`
		}{report, trades}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			logger.WithError(err).Fatal("Failed to encode results")
		}
		return
	}

	fmt.Printf("Strategy: %s\n", report.StrategyLabel)
	fmt.Printf("Bars: %d  Trades: %d  Win rate: %.1f%%  Total return: %+.1f%%\n",
		len(series.Bars), report.TradeCount, report.WinRatePct, report.TotalReturnPct)
	for i, t := range trades {
		fmt.Printf("  #%d %s %.2f -> %s %.2f  %+0.2f%% (%s)\n",
			i+1,
			t.EntryDate.Format("2006-01-02"), t.EntryPrice,
			t.ExitDate.Format("2006-01-02"), t.ExitPrice,
			t.Return*100, t.ExitReason)
	}
}

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{})
	return logger
}
