package models

import "time"

// ExitReason records which rule closed a simulated trade.
type ExitReason string

const (
	ExitStopLoss   ExitReason = "stop_loss"
	ExitTakeProfit ExitReason = "take_profit"
	ExitTimeLimit  ExitReason = "time_exit"
)

// Trade is a single simulated round trip produced by the backtest
// engine. Immutable after creation. Return is a fraction, bounded by
// [-stop_loss, +take_profit] unless the exit was time based.
type Trade struct {
	EntryDate  time.Time  `json:"entry_date"`
	EntryPrice float64    `json:"entry_price"`
	ExitDate   time.Time  `json:"exit_date"`
	ExitPrice  float64    `json:"exit_price"`
	Return     float64    `json:"return"`
	ExitReason ExitReason `json:"exit_reason"`
}

// BacktestReport aggregates a trade sequence.
type BacktestReport struct {
	TradeCount     int     `json:"total_trades"`
	WinRatePct     float64 `json:"win_rate"`
	TotalReturnPct float64 `json:"total_return"`
	StrategyLabel  string  `json:"strategy_name"`
}

// LiveSignal is the advisory verdict for the most recent bar.
type LiveSignal struct {
	IsBuy  bool   `json:"is_buy"`
	Reason string `json:"reason"`
}
