// Package strategy implements the dual-MA dual-slope entry rule shared
// by the backtest engine and the live signal check.
package strategy

import (
	"math"

	"github.com/yourusername/stock-sentry/internal/models"
)

// Params are the tunable entry-rule thresholds. Values arrive from the
// configuration layer; this package never reads configuration itself.
type Params struct {
	VolMultiplier float64
	RSILimit      float64
}

// DefaultParams returns the thresholds used by the backtest strategy.
func DefaultParams() Params {
	return Params{VolMultiplier: 1.25, RSILimit: 82}
}

// Checks holds the pass/fail outcome of each entry sub-condition.
type Checks struct {
	Trend  bool // close above MA20 and MA60, both rising
	Volume bool // volume above the prior 5-day average times the multiplier
	Candle bool // closed above the open
	RSI    bool // RSI below the overheat limit
}

// Entry reports whether every sub-condition passed.
func (c Checks) Entry() bool {
	return c.Trend && c.Volume && c.Candle && c.RSI
}

// EvaluateAt applies the entry rule at index i of the series. The
// second return value is false when any required input is undefined
// (insufficient history for MA60, slopes, RSI or the volume baseline);
// such positions can never enter.
func EvaluateAt(s *models.PriceSeries, i int, p Params) (Checks, bool) {
	if i < 1 || i >= s.Len() {
		return Checks{}, false
	}

	ma20 := s.MA20()
	ma60 := s.MA60()
	rsi := s.RSI14()
	volMA5 := s.VolMA5()

	ma20Slope := ma20[i] - ma20[i-1]
	ma60Slope := ma60[i] - ma60[i-1]
	if anyNaN(ma20[i], ma20Slope, ma60[i], ma60Slope, rsi[i], volMA5[i]) || volMA5[i] == 0 {
		return Checks{}, false
	}

	bar := s.Bars[i]
	checks := Checks{
		Trend:  bar.Close > ma20[i] && ma20Slope > 0 && bar.Close > ma60[i] && ma60Slope > 0,
		Volume: bar.Volume > volMA5[i]*p.VolMultiplier,
		Candle: bar.Close > bar.Open,
		RSI:    rsi[i] < p.RSILimit,
	}
	return checks, true
}

func anyNaN(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
