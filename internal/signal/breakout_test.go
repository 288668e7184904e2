package signal

import (
	"errors"
	"testing"

	"github.com/yourusername/stock-sentry/internal/models"
	"github.com/yourusername/stock-sentry/test/helpers"
)

func TestDetectBreakoutSpikeDay(t *testing.T) {
	// Last bar spikes to 5x baseline volume and closes up.
	s := helpers.ZigzagSeries(t, "TEST", 130, 129)

	isBreakout, snapshot, err := DetectBreakout(s, DefaultVolMultiplier)
	if err != nil {
		t.Fatal(err)
	}
	if !isBreakout {
		t.Fatal("5x volume on an up candle should be a breakout")
	}
	if !snapshot.IsBreakout {
		t.Fatal("snapshot must carry the breakout flag")
	}
	if snapshot.VolRatio == nil {
		t.Fatal("volume ratio should be defined")
	}
	if *snapshot.VolRatio != 5.0 {
		t.Fatalf("vol ratio = %v, want 5.0", *snapshot.VolRatio)
	}
	if snapshot.RSI == nil {
		t.Fatal("RSI should be defined on a long series")
	}
	if snapshot.Price != models.Round2(s.Last().Close) {
		t.Fatalf("snapshot price = %v, want rounded close %v", snapshot.Price, models.Round2(s.Last().Close))
	}
}

func TestDetectBreakoutRequiresUpCandle(t *testing.T) {
	// Index 128 is an even down day; spike the volume there and end the
	// series on it.
	s := helpers.ZigzagSeries(t, "TEST", 129, 128)

	isBreakout, snapshot, err := DetectBreakout(s, DefaultVolMultiplier)
	if err != nil {
		t.Fatal(err)
	}
	if isBreakout {
		t.Fatal("a volume spike on a down candle must not be a breakout")
	}
	if snapshot.VolRatio == nil || *snapshot.VolRatio != 5.0 {
		t.Fatal("volume ratio should still report the spike")
	}
}

func TestDetectBreakoutFlatSeries(t *testing.T) {
	s := helpers.FlatSeries(t, "FLAT", 120)

	isBreakout, snapshot, err := DetectBreakout(s, DefaultVolMultiplier)
	if err != nil {
		t.Fatal(err)
	}
	if isBreakout {
		t.Fatal("a flat series can never break out")
	}
	if snapshot.RSI == nil || *snapshot.RSI != 50 {
		t.Fatalf("flat series RSI should be exactly neutral, got %v", snapshot.RSI)
	}
	if snapshot.MACD != 0 || snapshot.MACDSignal != 0 || snapshot.MACDHist != 0 {
		t.Fatalf("flat series MACD should be zero, got %v/%v/%v",
			snapshot.MACD, snapshot.MACDSignal, snapshot.MACDHist)
	}
	if snapshot.Momentum != models.MomentumNone {
		t.Fatalf("flat series momentum = %v, want %v", snapshot.Momentum, models.MomentumNone)
	}
	if snapshot.ChangePct == nil || *snapshot.ChangePct != 0 {
		t.Fatalf("flat series change = %v, want defined 0", snapshot.ChangePct)
	}
}

func TestDetectBreakoutUndefinedChange(t *testing.T) {
	// With a zero reference close the percent change has no meaning;
	// the snapshot must report it as absent, not as 0%.
	bars := []models.PriceBar{
		{Date: helpers.SeriesStart, Open: 0, High: 5.1, Low: 0, Close: 5, Volume: 1000},
	}
	s, err := models.NewPriceSeries("NEWLIST", bars)
	if err != nil {
		t.Fatal(err)
	}

	_, snapshot, err := DetectBreakout(s, DefaultVolMultiplier)
	if err != nil {
		t.Fatal(err)
	}
	if snapshot.ChangePct != nil {
		t.Fatalf("change over a zero reference close = %v, want nil", *snapshot.ChangePct)
	}
}

func TestDetectBreakoutEmptySeries(t *testing.T) {
	s := &models.PriceSeries{Ticker: "EMPTY"}
	_, _, err := DetectBreakout(s, DefaultVolMultiplier)
	if !errors.Is(err, models.ErrEmptySeries) {
		t.Fatalf("expected ErrEmptySeries, got %v", err)
	}

	_, _, err = DetectBreakout(nil, DefaultVolMultiplier)
	if !errors.Is(err, models.ErrEmptySeries) {
		t.Fatalf("expected ErrEmptySeries for nil series, got %v", err)
	}
}

func TestMomentumLabels(t *testing.T) {
	// A sustained rise pushes the histogram positive and growing.
	up := helpers.ZigzagSeries(t, "UP", 130)
	_, snapshot, err := DetectBreakout(up, DefaultVolMultiplier)
	if err != nil {
		t.Fatal(err)
	}
	if snapshot.Momentum == models.MomentumNone {
		t.Fatal("a trending series should have a momentum direction")
	}
}
