// Package signal derives the per-day technical snapshot and breakout
// verdict from a price series.
package signal

import (
	"math"

	"github.com/yourusername/stock-sentry/internal/models"
)

// DefaultVolMultiplier is the volume-spike threshold over the 5-day
// baseline used when no configured value is supplied.
const DefaultVolMultiplier = 1.5

// DetectBreakout inspects the latest bar of the series and returns the
// breakout verdict together with the rounded technical snapshot. A
// breakout requires a volume spike and an up candle on the same day;
// with the volume baseline undefined or zero the verdict is false.
func DetectBreakout(s *models.PriceSeries, volMultiplier float64) (bool, models.TechnicalSnapshot, error) {
	if s == nil || s.Len() == 0 {
		return false, models.TechnicalSnapshot{}, models.ErrEmptySeries
	}
	if volMultiplier <= 0 {
		volMultiplier = DefaultVolMultiplier
	}

	n := s.Len()
	today := s.Last()

	prevClose := today.Open
	if n >= 2 {
		prevClose = s.Bars[n-2].Close
	}

	volMA5 := s.VolMA5()[n-1]
	if math.IsNaN(volMA5) {
		// Not enough prior bars for a baseline: a day cannot spike
		// against itself, so this also suppresses the breakout.
		volMA5 = today.Volume
	}

	isBreakout := false
	var volRatio *float64
	if volMA5 > 0 {
		ratio := models.Round2(today.Volume / volMA5)
		volRatio = &ratio
		isBreakout = today.Volume > volMA5*volMultiplier && today.Close > today.Open
	}

	snapshot := models.TechnicalSnapshot{
		Price:      models.Round2(today.Close),
		VolRatio:   volRatio,
		IsBreakout: isBreakout,
		Momentum:   momentumLabel(s),
	}
	if prevClose != 0 {
		change := models.Round2((today.Close - prevClose) / prevClose * 100)
		snapshot.ChangePct = &change
	}

	if rsi := s.RSI14()[n-1]; !math.IsNaN(rsi) {
		rounded := models.Round1(rsi)
		snapshot.RSI = &rounded
	}

	line, sigLine, hist := s.MACD()
	snapshot.MACD = models.Round2(line[n-1])
	snapshot.MACDSignal = models.Round2(sigLine[n-1])
	snapshot.MACDHist = models.Round2(hist[n-1])

	return isBreakout, snapshot, nil
}

// momentumLabel compares today's MACD histogram with yesterday's.
// Positive histograms map to the bullish labels, negative to the
// bearish ones; whether the bar grew or shrank decides strengthening
// versus weakening.
func momentumLabel(s *models.PriceSeries) models.MACDMomentum {
	n := s.Len()
	if n < 2 {
		return models.MomentumNone
	}
	_, _, hist := s.MACD()
	today, prev := hist[n-1], hist[n-2]
	switch {
	case today > 0 && today > prev:
		return models.MomentumBullishStrengthening
	case today > 0 && today < prev:
		return models.MomentumBullishWeakening
	case today < 0 && today < prev:
		return models.MomentumBearishStrengthening
	case today < 0 && today > prev:
		return models.MomentumBearishWeakening
	default:
		return models.MomentumNone
	}
}
