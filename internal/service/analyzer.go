// Package service orchestrates the full per-ticker analysis: history
// fetch, snapshot, backtest, live signal, ML probability, flow data and
// sentiment, composed into one result.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/stock-sentry/internal/backtest"
	"github.com/yourusername/stock-sentry/internal/chips"
	"github.com/yourusername/stock-sentry/internal/config"
	"github.com/yourusername/stock-sentry/internal/marketdata"
	"github.com/yourusername/stock-sentry/internal/metrics"
	"github.com/yourusername/stock-sentry/internal/ml"
	"github.com/yourusername/stock-sentry/internal/models"
	"github.com/yourusername/stock-sentry/internal/sentiment"
	"github.com/yourusername/stock-sentry/internal/signal"
	"github.com/yourusername/stock-sentry/internal/strategy"
)

// Sentiment score above which a breakout upgrades the verdict.
const strongBuyScoreFloor = 0.3

// NewsSource returns recent headlines for a ticker. Retrieval is a
// black box; an empty slice is always acceptable.
type NewsSource interface {
	RecentHeadlines(ctx context.Context, ticker string) []string
}

// Analyzer runs the composite analysis for one ticker.
type Analyzer struct {
	provider  marketdata.Provider
	engine    *backtest.Engine
	predictor *ml.Predictor
	chips     chips.Fetcher
	scorer    sentiment.Scorer
	news      NewsSource
	cache     *ResultCache
	cfg       config.StrategyConfig
	logger    *logrus.Logger
}

// NewAnalyzer wires the analysis pipeline. chips, scorer and news may
// be nil; the corresponding sections degrade to neutral values.
func NewAnalyzer(
	provider marketdata.Provider,
	engine *backtest.Engine,
	predictor *ml.Predictor,
	chipFetcher chips.Fetcher,
	scorer sentiment.Scorer,
	news NewsSource,
	cache *ResultCache,
	cfg config.StrategyConfig,
	logger *logrus.Logger,
) *Analyzer {
	if logger == nil {
		logger = logrus.New()
	}
	return &Analyzer{
		provider:  provider,
		engine:    engine,
		predictor: predictor,
		chips:     chipFetcher,
		scorer:    scorer,
		news:      news,
		cache:     cache,
		cfg:       cfg,
		logger:    logger,
	}
}

// Analyze produces the composite result for a ticker. The technical
// core is deterministic for a given history; only the flow and
// sentiment sections depend on external collaborators.
func (a *Analyzer) Analyze(ctx context.Context, ticker string) (*models.AnalysisResult, error) {
	start := time.Now()

	series, resolved, err := a.provider.GetDailyHistory(ctx, ticker)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("no_data").Inc()
		return nil, fmt.Errorf("fetch history for %q: %w", ticker, err)
	}
	if series == nil || series.Len() == 0 {
		metrics.AnalysesTotal.WithLabelValues("no_data").Inc()
		return nil, fmt.Errorf("fetch history for %q: %w", ticker, marketdata.ErrEmptyHistory)
	}

	lastDay := series.Bars[series.Len()-1].Date
	if a.cache != nil {
		if cached := a.cache.Get(resolved, lastDay); cached != nil {
			return cached, nil
		}
	}

	isBreakout, snapshot, err := signal.DetectBreakout(series, a.cfg.VolMultiplier)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("snapshot for %q: %w", resolved, err)
	}
	if isBreakout {
		metrics.BreakoutsDetectedTotal.Inc()
	}

	btStart := time.Now()
	_, report := a.engine.Run(series)
	metrics.BacktestDuration.Observe(time.Since(btStart).Seconds())

	live := strategy.CheckBuySignal(series, strategy.Params{
		VolMultiplier: a.cfg.BacktestVolMultiplier,
		RSILimit:      a.cfg.BacktestRSILimit,
	})

	var mlProb *float64
	if a.predictor != nil {
		prob, err := a.predictor.Predict(series)
		if err != nil {
			metrics.PredictionFailuresTotal.Inc()
			if !errors.Is(err, ml.ErrPredictionUnavailable) {
				a.logger.WithError(err).WithField("ticker", resolved).Warn("Prediction failed")
			}
		} else {
			metrics.PredictionsTotal.Inc()
			mlProb = &prob
		}
	}

	chipSummary := chips.Empty()
	if a.chips != nil {
		chipSummary = a.chips.GetInstitutionalSummary(ctx, resolved)
	}

	score := sentiment.Neutral("sentiment disabled")
	if a.scorer != nil {
		var headlines []string
		if a.news != nil {
			headlines = a.news.RecentHeadlines(ctx, resolved)
		}
		score = a.scorer.Score(ctx, sentiment.Input{
			Ticker:     resolved,
			Headlines:  headlines,
			Price:      snapshot.Price,
			RSI:        snapshot.RSI,
			MACDStatus: string(snapshot.Momentum),
			IsBreakout: isBreakout,
			Chips:      chipSummary,
		})
	}

	result := &models.AnalysisResult{
		ID:        uuid.New(),
		Ticker:    resolved,
		Snapshot:  snapshot,
		Backtest:  report,
		Live:      live,
		MLProb:    mlProb,
		Sentiment: score,
		Chips:     chipSummary,
		Advice:    Advice(isBreakout, score.Score),
		CreatedAt: time.Now(),
	}

	if a.cache != nil {
		a.cache.Set(resolved, lastDay, result)
	}

	metrics.AnalysesTotal.WithLabelValues("ok").Inc()
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())

	a.logger.WithFields(logrus.Fields{
		"ticker":   resolved,
		"breakout": isBreakout,
		"advice":   result.Advice,
		"trades":   report.TradeCount,
	}).Info("Analysis complete")

	return result, nil
}

// Advice combines the breakout flag and the sentiment score into the
// composite verdict. Only a breakout confirmed by a clearly positive
// score upgrades to a strong buy.
func Advice(isBreakout bool, sentimentScore float64) string {
	if isBreakout && sentimentScore > strongBuyScoreFloor {
		return models.AdviceStrongBuy
	}
	return models.AdviceHold
}
