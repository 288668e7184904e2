package strategy

import (
	"fmt"
	"strings"

	"github.com/yourusername/stock-sentry/internal/models"
)

// minLiveHistory is the shortest series the live check accepts; the
// MA60 slope needs 61 bars but 60 is the advertised contract and the
// undefined-input guard covers the rest.
const minLiveHistory = 60

// CheckBuySignal evaluates the backtest entry rule against the most
// recent bar only, for real-time advisory use. It never simulates
// trades. The reason string enumerates each sub-condition so the
// advisory surface can show why the verdict fell either way.
func CheckBuySignal(s *models.PriceSeries, p Params) models.LiveSignal {
	if s == nil || s.Len() < minLiveHistory {
		have := 0
		if s != nil {
			have = s.Len()
		}
		return models.LiveSignal{
			IsBuy:  false,
			Reason: fmt.Sprintf("insufficient history: need %d bars, have %d", minLiveHistory, have),
		}
	}

	checks, ok := EvaluateAt(s, s.Len()-1, p)
	if !ok {
		return models.LiveSignal{IsBuy: false, Reason: "indicators not yet defined for the latest bar"}
	}

	return models.LiveSignal{IsBuy: checks.Entry(), Reason: describeChecks(checks)}
}

func describeChecks(c Checks) string {
	parts := []string{
		pick(c.Trend, "trend confirmed", "trend unconfirmed"),
		pick(c.Volume, "volume surge", "volume flat"),
		pick(c.Candle, "closed up", "closed down or flat"),
		pick(c.RSI, "rsi safe", "rsi overheated"),
	}
	return strings.Join(parts, " | ")
}

func pick(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
