package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/yourusername/stock-sentry/internal/models"
)

// FormatAnalysis renders one analysis result as a chat message.
func FormatAnalysis(r *models.AnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 <b>%s</b> | %s\n\n", r.Ticker, r.CreatedAt.Format("2006-01-02"))

	fmt.Fprintf(&b, "Price: %.2f (%s)\n", r.Snapshot.Price, changeText(r.Snapshot.ChangePct))
	if r.Snapshot.RSI != nil {
		fmt.Fprintf(&b, "RSI: %.1f\n", *r.Snapshot.RSI)
	} else {
		b.WriteString("RSI: n/a\n")
	}
	fmt.Fprintf(&b, "MACD: %.2f (%s)\n", r.Snapshot.MACDHist, momentumText(r.Snapshot.Momentum))
	if r.Snapshot.IsBreakout {
		b.WriteString("🔥 Volume breakout\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "📈 <b>Backtest</b> (%s)\n", r.Backtest.StrategyLabel)
	if r.Backtest.TradeCount == 0 {
		b.WriteString("  no historical signals\n")
	} else {
		fmt.Fprintf(&b, "  %d trades | win rate %.1f%% | total %+.1f%%\n",
			r.Backtest.TradeCount, r.Backtest.WinRatePct, r.Backtest.TotalReturnPct)
	}

	fmt.Fprintf(&b, "\n🎯 Live signal: %s\n", liveText(r.Live))
	if r.MLProb != nil {
		fmt.Fprintf(&b, "🤖 Up-move probability: %.1f%%\n", *r.MLProb)
	}

	fmt.Fprintf(&b, "\n💰 Flows: %s\n", r.Chips.StatusText)
	fmt.Fprintf(&b, "  foreign %+.1f | trust %+.1f | dealer %+.1f\n",
		r.Chips.ForeignNet, r.Chips.TrustNet, r.Chips.DealerNet)

	fmt.Fprintf(&b, "\n🧐 Sentiment %+.1f: %s\n", r.Sentiment.Score, r.Sentiment.Comment)

	b.WriteString("\n")
	if r.Advice == models.AdviceStrongBuy {
		b.WriteString("✅ <b>Verdict: strong buy</b>")
	} else {
		b.WriteString("⏸ <b>Verdict: hold / watch</b>")
	}

	return b.String()
}

// FormatMorningReport renders the scheduled watchlist digest.
func FormatMorningReport(results []*models.AnalysisResult, failures []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🌅 <b>Morning report</b> | %s\n\n", time.Now().Format("2006-01-02"))

	if len(results) == 0 && len(failures) == 0 {
		b.WriteString("Watchlist is empty. Add tickers to receive signals.")
		return b.String()
	}

	for _, r := range results {
		marker := "⏸"
		if r.Advice == models.AdviceStrongBuy {
			marker = "✅"
		}
		rsi := "n/a"
		if r.Snapshot.RSI != nil {
			rsi = fmt.Sprintf("%.1f", *r.Snapshot.RSI)
		}
		fmt.Fprintf(&b, "%s <b>%s</b> %.2f (%s) RSI %s | %s\n",
			marker, r.Ticker, r.Snapshot.Price, changeText(r.Snapshot.ChangePct), rsi, r.Chips.StatusText)
	}

	if len(failures) > 0 {
		fmt.Fprintf(&b, "\n⚠️ No data: %s\n", strings.Join(failures, ", "))
	}

	return b.String()
}

func momentumText(m models.MACDMomentum) string {
	switch m {
	case models.MomentumBullishStrengthening:
		return "bullish, strengthening"
	case models.MomentumBullishWeakening:
		return "bullish, weakening"
	case models.MomentumBearishStrengthening:
		return "bearish, strengthening"
	case models.MomentumBearishWeakening:
		return "bearish, weakening"
	default:
		return "no clear direction"
	}
}

func changeText(pct *float64) string {
	if pct == nil {
		return "n/a"
	}
	return fmt.Sprintf("%+.1f%%", *pct)
}

func liveText(l models.LiveSignal) string {
	if l.IsBuy {
		return "BUY (" + l.Reason + ")"
	}
	return "wait (" + l.Reason + ")"
}
