// Package main provides a one-shot analysis CLI.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/stock-sentry/internal/backtest"
	"github.com/yourusername/stock-sentry/internal/chips"
	"github.com/yourusername/stock-sentry/internal/config"
	"github.com/yourusername/stock-sentry/internal/logger"
	"github.com/yourusername/stock-sentry/internal/marketdata"
	"github.com/yourusername/stock-sentry/internal/ml"
	"github.com/yourusername/stock-sentry/internal/notifier"
	"github.com/yourusername/stock-sentry/internal/sentiment"
	"github.com/yourusername/stock-sentry/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	csvDir     string
	asJSON     bool
	offline    bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVar(&csvDir, "csv-dir", "", "Read history from per-ticker CSV files in this directory")
	rootCmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	rootCmd.Flags().BoolVar(&offline, "offline", false, "Skip the flow and sentiment collaborators")
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "analyze TICKER",
	Short: "Run the composite analysis for one ticker",
	Long:  `Fetches daily history, computes the technical snapshot, backtest, live signal and ML probability, and prints the composite result.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(cmd.Context(), args[0])
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("analyze %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runAnalyze(ctx context.Context, ticker string) error {
	cfg, appLog := loadConfigOrDefaults()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	analyzer, cleanup, err := buildAnalyzer(cfg, appLog)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := analyzer.Analyze(ctx, ticker)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Println(notifier.FormatAnalysis(result))
	return nil
}

// loadConfigOrDefaults tries the config file and falls back to the
// published strategy defaults so CSV analysis works with no config.
func loadConfigOrDefaults() (*config.Config, *logrus.Logger) {
	cfg, err := config.Load(configFile)
	if err != nil {
		fallbackLog := logger.NewLogger("info")
		fallbackLog.WithError(err).Warn("Config not loaded, using defaults")
		return &config.Config{
			App:      config.AppConfig{Name: "stock-sentry", Environment: "development", LogLevel: "info"},
			Strategy: config.DefaultStrategyConfig(),
		}, fallbackLog
	}
	return cfg, logger.NewLogger(cfg.App.LogLevel)
}

func buildAnalyzer(cfg *config.Config, appLog *logrus.Logger) (*service.Analyzer, func(), error) {
	var provider marketdata.Provider
	var httpClient *marketdata.RateLimitedHTTPClient

	if csvDir != "" {
		provider = marketdata.NewCSVProvider(csvDir)
	} else {
		if cfg.MarketData.BaseURL == "" {
			return nil, nil, fmt.Errorf("no market data source: set market_data.base_url or use --csv-dir")
		}
		httpClient = marketdata.NewRateLimitedHTTPClient(marketdata.DefaultHTTPClientConfig(), appLog)
		provider = marketdata.NewHTTPProvider(
			cfg.MarketData.BaseURL, cfg.MarketData.APIKey, cfg.MarketData.HistoryDays,
			httpClient, appLog)
	}

	var chipFetcher chips.Fetcher
	var scorer sentiment.Scorer
	if !offline {
		if httpClient == nil {
			httpClient = marketdata.NewRateLimitedHTTPClient(marketdata.DefaultHTTPClientConfig(), appLog)
		}
		if cfg.Chips.URL != "" {
			chipFetcher = chips.NewHTTPFetcher(cfg.Chips.URL, cfg.Chips.APIKey, httpClient, appLog)
		}
		if cfg.Sentiment.URL != "" {
			scorer = sentiment.NewHTTPScorer(cfg.Sentiment.URL, cfg.Sentiment.APIKey, cfg.Sentiment.Model, httpClient, appLog)
		}
	}

	engine := backtest.NewEngine(backtest.Config{
		VolMultiplier: cfg.Strategy.BacktestVolMultiplier,
		RSILimit:      cfg.Strategy.BacktestRSILimit,
		StopLossPct:   cfg.Strategy.StopLossPct,
		TakeProfitPct: cfg.Strategy.TakeProfitPct,
		HoldingDays:   cfg.Strategy.HoldingDays,
	}, appLog)

	analyzer := service.NewAnalyzer(
		provider,
		engine,
		ml.NewPredictor(appLog),
		chipFetcher,
		scorer,
		nil,
		service.NewResultCache(15*time.Minute),
		cfg.Strategy,
		appLog,
	)

	cleanup := func() {
		if httpClient != nil {
			httpClient.Close()
		}
	}
	return analyzer, cleanup, nil
}
