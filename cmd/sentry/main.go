// Package main provides the entry point for the stock-sentry service.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/stock-sentry/internal/backtest"
	"github.com/yourusername/stock-sentry/internal/chips"
	"github.com/yourusername/stock-sentry/internal/config"
	"github.com/yourusername/stock-sentry/internal/database"
	"github.com/yourusername/stock-sentry/internal/health"
	"github.com/yourusername/stock-sentry/internal/logger"
	"github.com/yourusername/stock-sentry/internal/marketdata"
	"github.com/yourusername/stock-sentry/internal/ml"
	"github.com/yourusername/stock-sentry/internal/notifier"
	"github.com/yourusername/stock-sentry/internal/repository"
	"github.com/yourusername/stock-sentry/internal/scheduler"
	"github.com/yourusername/stock-sentry/internal/sentiment"
	"github.com/yourusername/stock-sentry/internal/service"
)

// Set via ldflags at build time.
var (
	version   = "dev"
	gitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set up logging
	appLog := logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"version":     version,
		"commit":      gitCommit,
	}).Info("Stock Sentry starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection
	db, err := database.NewDB(ctx, cfg.GetDatabaseDSN(), cfg.Database.MaxConnections)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := repository.EnsureSchema(ctx, db); err != nil {
		appLog.WithError(err).Fatal("Failed to ensure watchlist schema")
	}
	appLog.Info("Database connection established")

	repos, err := repository.NewRepositories(db)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize repositories")
	}

	// Provider stack
	httpClient := marketdata.NewRateLimitedHTTPClient(httpClientConfig(cfg), appLog)
	defer httpClient.Close()

	provider := marketdata.NewHTTPProvider(
		cfg.MarketData.BaseURL, cfg.MarketData.APIKey, cfg.MarketData.HistoryDays,
		httpClient, appLog)

	var chipFetcher chips.Fetcher
	if cfg.Chips.URL != "" {
		chipFetcher = chips.NewHTTPFetcher(cfg.Chips.URL, cfg.Chips.APIKey, httpClient, appLog)
	}

	var scorer sentiment.Scorer
	if cfg.Sentiment.URL != "" {
		scorer = sentiment.NewHTTPScorer(cfg.Sentiment.URL, cfg.Sentiment.APIKey, cfg.Sentiment.Model, httpClient, appLog)
	}

	engine := backtest.NewEngine(backtest.Config{
		VolMultiplier: cfg.Strategy.BacktestVolMultiplier,
		RSILimit:      cfg.Strategy.BacktestRSILimit,
		StopLossPct:   cfg.Strategy.StopLossPct,
		TakeProfitPct: cfg.Strategy.TakeProfitPct,
		HoldingDays:   cfg.Strategy.HoldingDays,
	}, appLog)

	resultCache := service.NewResultCache(15 * time.Minute)
	analyzer := service.NewAnalyzer(
		provider,
		engine,
		ml.NewPredictor(appLog),
		chipFetcher,
		scorer,
		nil,
		resultCache,
		cfg.Strategy,
		appLog,
	)

	watchlist := service.NewWatchlistService(repos.Watchlist, appLog)

	// Notification channel
	var notify notifier.Notifier
	if cfg.Notifier.Token != "" {
		notify = notifier.NewTelegramNotifier(cfg.Notifier.Token, "", appLog)
		appLog.Info("Telegram notifier initialized")
	} else {
		notify = notifier.NewLogNotifier(appLog)
		appLog.Info("No notifier token configured, logging notifications")
	}

	// Morning report scheduler
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.New(cfg.Scheduler, analyzer, watchlist, notify, appLog)
		if err := sched.ScheduleMorningReport(cfg.Scheduler.CronExpression); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule morning report")
		}
		if err := sched.Start(); err != nil {
			appLog.WithError(err).Fatal("Failed to start scheduler")
		}
		appLog.WithField("next_run", sched.NextRun()).Info("Morning report scheduled")
	}

	// Quote stream (optional)
	var stream *marketdata.QuoteStream
	if cfg.MarketData.StreamURL != "" {
		stream = startQuoteStream(ctx, cfg, watchlist, resultCache, appLog)
	}

	// Health and metrics endpoint
	var healthServer *health.Server
	if cfg.Metrics.Enabled {
		healthServer = health.NewServer(health.Config{
			ServiceName: "stock-sentry",
			Version:     version,
			Commit:      gitCommit,
			Address:     cfg.Metrics.Address,
			Logger:      appLog,
			DB:          db,
		})
		if err := healthServer.Start(ctx); err != nil {
			appLog.WithError(err).Fatal("Failed to start health server")
		}
		healthServer.SetReady(true)
	}

	appLog.WithFields(logrus.Fields{
		"scheduler": cfg.Scheduler.Enabled,
		"metrics":   cfg.Metrics.Enabled,
		"stream":    cfg.MarketData.StreamURL != "",
	}).Info("Stock Sentry running")

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	cancel()

	if sched != nil {
		if err := sched.Stop(); err != nil {
			appLog.WithError(err).Error("Error stopping scheduler")
		}
	}
	if stream != nil {
		if err := stream.Close(); err != nil {
			appLog.WithError(err).Error("Error closing quote stream")
		}
	}
	if healthServer != nil {
		healthServer.SetReady(false)
		if err := healthServer.Shutdown(); err != nil {
			appLog.WithError(err).Error("Error stopping health server")
		}
	}

	appLog.Info("Stock Sentry shut down successfully")
}

func httpClientConfig(cfg *config.Config) marketdata.HTTPClientConfig {
	hc := marketdata.DefaultHTTPClientConfig()
	if cfg.MarketData.TimeoutSeconds > 0 {
		hc.Timeout = time.Duration(cfg.MarketData.TimeoutSeconds) * time.Second
	}
	if cfg.MarketData.RetryAttempts > 0 {
		hc.MaxRetries = cfg.MarketData.RetryAttempts
	}
	if cfg.MarketData.RateLimitPerSec > 0 {
		hc.RateLimit = cfg.MarketData.RateLimitPerSec
	}
	return hc
}

func startQuoteStream(ctx context.Context, cfg *config.Config, watchlist *service.WatchlistService, cache *service.ResultCache, appLog *logrus.Logger) *marketdata.QuoteStream {
	stream := marketdata.NewQuoteStream(cfg.MarketData.StreamURL, cfg.MarketData.APIKey, appLog)
	if err := stream.Connect(ctx); err != nil {
		appLog.WithError(err).Warn("Quote stream unavailable, continuing without it")
		return nil
	}

	// A fresh intraday quote makes the cached analysis stale: drop it so
	// the next lookup re-runs the pipeline against current data.
	stream.AddHandler(func(q marketdata.QuoteTick) error {
		cache.Invalidate(q.Ticker)
		appLog.WithFields(logrus.Fields{
			"ticker": q.Ticker,
			"price":  q.Price,
			"volume": q.Volume,
		}).Debug("Quote tick")
		return nil
	})

	entries, err := watchlist.List(ctx)
	if err != nil {
		appLog.WithError(err).Warn("Could not load watchlist for quote subscription")
		return stream
	}
	tickers := make([]string, 0, len(entries))
	for _, e := range entries {
		tickers = append(tickers, e.Ticker)
	}
	if len(tickers) > 0 {
		if err := stream.Subscribe(ctx, tickers); err != nil {
			appLog.WithError(err).Warn("Quote subscription failed")
		}
	}
	return stream
}

