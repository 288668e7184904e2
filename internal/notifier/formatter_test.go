package notifier

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/stock-sentry/internal/models"
)

func sampleResult(advice string) *models.AnalysisResult {
	rsi := 58.3
	ratio := 2.1
	prob := 62.5
	change := 1.8
	return &models.AnalysisResult{
		ID:     uuid.New(),
		Ticker: "2330.TW",
		Snapshot: models.TechnicalSnapshot{
			Price:      987.0,
			ChangePct:  &change,
			VolRatio:   &ratio,
			IsBreakout: advice == models.AdviceStrongBuy,
			RSI:        &rsi,
			MACDHist:   1.23,
			Momentum:   models.MomentumBullishStrengthening,
		},
		Backtest: models.BacktestReport{
			TradeCount:     7,
			WinRatePct:     57.1,
			TotalReturnPct: 12.4,
			StrategyLabel:  "dual_ma_dual_slope",
		},
		Live:      models.LiveSignal{IsBuy: true, Reason: "trend confirmed | volume surge | closed up | rsi safe"},
		MLProb:    &prob,
		Sentiment: models.SentimentScore{Score: 0.6, Comment: "constructive setup"},
		Chips: models.ChipSummary{
			ForeignNet: 120.5, TrustNet: 3.2, DealerNet: -1.1,
			StatusText: "foreign net buying",
		},
		Advice:    advice,
		CreatedAt: time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC),
	}
}

func TestFormatAnalysisStrongBuy(t *testing.T) {
	text := FormatAnalysis(sampleResult(models.AdviceStrongBuy))

	for _, want := range []string{
		"2330.TW", "2026-08-28", "987.00", "58.3", "dual_ma_dual_slope",
		"7 trades", "57.1%", "62.5%", "foreign net buying",
		"constructive setup", "strong buy",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("message missing %q:\n%s", want, text)
		}
	}
}

func TestFormatAnalysisHoldWithoutPrediction(t *testing.T) {
	result := sampleResult(models.AdviceHold)
	result.MLProb = nil
	result.Snapshot.RSI = nil
	result.Snapshot.ChangePct = nil
	result.Backtest = models.BacktestReport{StrategyLabel: "dual_ma_dual_slope"}

	text := FormatAnalysis(result)
	if strings.Contains(text, "probability") {
		t.Fatal("missing prediction should be omitted, not rendered")
	}
	if !strings.Contains(text, "RSI: n/a") {
		t.Fatalf("undefined RSI should render as n/a:\n%s", text)
	}
	if !strings.Contains(text, "(n/a)") {
		t.Fatalf("undefined change should render as n/a:\n%s", text)
	}
	if !strings.Contains(text, "no historical signals") {
		t.Fatalf("zero-trade backtest should say so:\n%s", text)
	}
	if !strings.Contains(text, "hold / watch") {
		t.Fatalf("hold verdict missing:\n%s", text)
	}
}

func TestFormatMorningReport(t *testing.T) {
	results := []*models.AnalysisResult{
		sampleResult(models.AdviceStrongBuy),
		sampleResult(models.AdviceHold),
	}
	text := FormatMorningReport(results, []string{"9999.TW"})

	if !strings.Contains(text, "Morning report") {
		t.Fatalf("missing title:\n%s", text)
	}
	if strings.Count(text, "2330.TW") != 2 {
		t.Fatalf("each result should appear once:\n%s", text)
	}
	if !strings.Contains(text, "No data: 9999.TW") {
		t.Fatalf("failures should be listed:\n%s", text)
	}
}

func TestFormatMorningReportEmptyWatchlist(t *testing.T) {
	text := FormatMorningReport(nil, nil)
	if !strings.Contains(text, "Watchlist is empty") {
		t.Fatalf("empty watchlist message missing:\n%s", text)
	}
}

func TestLogNotifierNeverFails(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(&strings.Builder{})

	n := NewLogNotifier(logger)
	if err := n.Send(context.Background(), "user-1", "hello"); err != nil {
		t.Fatalf("log notifier should never fail: %v", err)
	}
}
