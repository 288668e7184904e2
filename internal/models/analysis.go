package models

import (
	"time"

	"github.com/google/uuid"
)

// SentimentScore is the opaque output of the language-model sentiment
// collaborator. Score is in [-1, 1]; the comment wording is never
// interpreted, only displayed.
type SentimentScore struct {
	Score   float64 `json:"score"`
	Comment string  `json:"comment"`
}

// ChipSummary is the opaque output of the institutional-flow
// collaborator: net buy totals over the last five trading days, in
// thousands of shares.
type ChipSummary struct {
	ForeignNet float64 `json:"foreign_total"`
	TrustNet   float64 `json:"trust_total"`
	DealerNet  float64 `json:"dealer_total"`
	StatusText string  `json:"status_text"`
}

// Advice labels for the composite verdict.
const (
	AdviceStrongBuy = "strong_buy"
	AdviceHold      = "hold"
)

// AnalysisResult is the composite produced for one ticker, consumed by
// the web result view and the chat reply formatter.
type AnalysisResult struct {
	ID        uuid.UUID         `json:"id"`
	Ticker    string            `json:"ticker"`
	Snapshot  TechnicalSnapshot `json:"snapshot"`
	Backtest  BacktestReport    `json:"backtest"`
	Live      LiveSignal        `json:"live_signal"`
	MLProb    *float64          `json:"ml_prob,omitempty"`
	Sentiment SentimentScore    `json:"sentiment"`
	Chips     ChipSummary       `json:"chips"`
	Advice    string            `json:"signal"`
	CreatedAt time.Time         `json:"created_at"`
}
