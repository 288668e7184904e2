package models

// MACDMomentum is a categorical label for the day-over-day histogram move.
type MACDMomentum string

const (
	MomentumNone                 MACDMomentum = "no_direction"
	MomentumBullishStrengthening MACDMomentum = "bullish_strengthening"
	MomentumBullishWeakening     MACDMomentum = "bullish_weakening"
	MomentumBearishStrengthening MACDMomentum = "bearish_strengthening"
	MomentumBearishWeakening     MACDMomentum = "bearish_weakening"
)

// TechnicalSnapshot is a point-in-time summary of the latest bar.
// Recomputed per request, never persisted. ChangePct, VolRatio and RSI
// are nil when the underlying value is mathematically undefined; nil is
// distinct from a value of exactly zero.
type TechnicalSnapshot struct {
	Price      float64      `json:"price"`
	ChangePct  *float64     `json:"change_pct,omitempty"`
	VolRatio   *float64     `json:"vol_ratio,omitempty"`
	IsBreakout bool         `json:"is_breakout"`
	RSI        *float64     `json:"rsi,omitempty"`
	MACD       float64      `json:"macd"`
	MACDSignal float64      `json:"macd_signal"`
	MACDHist   float64      `json:"macd_hist"`
	Momentum   MACDMomentum `json:"macd_status"`
}
