package strategy

import (
	"strings"
	"testing"

	"github.com/yourusername/stock-sentry/test/helpers"
)

func TestEvaluateAtSpikeDayEnters(t *testing.T) {
	s := helpers.ZigzagSeries(t, "TEST", 130, 81)

	checks, ok := EvaluateAt(s, 81, DefaultParams())
	if !ok {
		t.Fatal("inputs should be defined at index 81")
	}
	if !checks.Trend || !checks.Volume || !checks.Candle || !checks.RSI {
		t.Fatalf("all sub-conditions should pass on the spike day, got %+v", checks)
	}
	if !checks.Entry() {
		t.Fatal("Entry should be true when every sub-condition passes")
	}
}

func TestEvaluateAtQuietDayFailsVolumeOnly(t *testing.T) {
	s := helpers.ZigzagSeries(t, "TEST", 130, 81)

	// Index 83 is an up day in a confirmed uptrend but trades the flat
	// baseline volume.
	checks, ok := EvaluateAt(s, 83, DefaultParams())
	if !ok {
		t.Fatal("inputs should be defined at index 83")
	}
	if checks.Volume {
		t.Fatal("quiet day should fail the volume condition")
	}
	if !checks.Trend || !checks.Candle || !checks.RSI {
		t.Fatalf("only volume should fail, got %+v", checks)
	}
	if checks.Entry() {
		t.Fatal("Entry must be false with a failed sub-condition")
	}
}

func TestEvaluateAtDownDayFailsCandle(t *testing.T) {
	s := helpers.ZigzagSeries(t, "TEST", 130, 82)

	// Index 82 spikes in volume but closes below its open.
	checks, ok := EvaluateAt(s, 82, DefaultParams())
	if !ok {
		t.Fatal("inputs should be defined at index 82")
	}
	if checks.Candle {
		t.Fatal("down day should fail the candle condition")
	}
	if checks.Entry() {
		t.Fatal("Entry must be false on a down candle")
	}
}

func TestEvaluateAtUndefinedInputs(t *testing.T) {
	s := helpers.ZigzagSeries(t, "TEST", 130, 81)

	// MA60 needs 60 bars; index 30 has undefined inputs.
	if _, ok := EvaluateAt(s, 30, DefaultParams()); ok {
		t.Fatal("positions inside the MA60 warm-up must be unevaluable")
	}
	if _, ok := EvaluateAt(s, 0, DefaultParams()); ok {
		t.Fatal("index 0 has no slope and must be unevaluable")
	}
	if _, ok := EvaluateAt(s, s.Len(), DefaultParams()); ok {
		t.Fatal("out-of-range index must be unevaluable")
	}
}

func TestEvaluateAtFlatSeriesFailsTrend(t *testing.T) {
	s := helpers.FlatSeries(t, "FLAT", 120)

	checks, ok := EvaluateAt(s, 100, DefaultParams())
	if !ok {
		t.Fatal("flat series inputs are all defined past warm-up")
	}
	if checks.Trend {
		t.Fatal("zero-slope averages must fail the trend condition")
	}
	if checks.Entry() {
		t.Fatal("flat series must never enter")
	}
}

func TestCheckBuySignalReasons(t *testing.T) {
	s := helpers.ZigzagSeries(t, "TEST", 130, 129)

	// The last bar is an odd-index up day with a volume spike.
	live := CheckBuySignal(s, DefaultParams())
	if !live.IsBuy {
		t.Fatalf("expected buy on a spiking up day, reason: %s", live.Reason)
	}
	for _, want := range []string{"trend confirmed", "volume surge", "closed up", "rsi safe"} {
		if !strings.Contains(live.Reason, want) {
			t.Fatalf("reason %q should contain %q", live.Reason, want)
		}
	}
}

func TestCheckBuySignalQuietDay(t *testing.T) {
	s := helpers.ZigzagSeries(t, "TEST", 129)

	// Last bar (index 128) is an even-index down day on baseline volume.
	live := CheckBuySignal(s, DefaultParams())
	if live.IsBuy {
		t.Fatal("quiet down day must not be a buy")
	}
	for _, want := range []string{"trend", "volume flat", "closed down or flat"} {
		if !strings.Contains(live.Reason, want) {
			t.Fatalf("reason %q should contain %q", live.Reason, want)
		}
	}
}

func TestCheckBuySignalShortHistory(t *testing.T) {
	s := helpers.ZigzagSeries(t, "TEST", 40)

	live := CheckBuySignal(s, DefaultParams())
	if live.IsBuy {
		t.Fatal("short history must not be a buy")
	}
	if !strings.Contains(live.Reason, "insufficient history") {
		t.Fatalf("reason should name insufficient history, got %q", live.Reason)
	}

	live = CheckBuySignal(nil, DefaultParams())
	if live.IsBuy || !strings.Contains(live.Reason, "insufficient history") {
		t.Fatalf("nil series must report insufficient history, got %+v", live)
	}
}
