package indicator

import (
	"math"
	"testing"
)

func TestSMAWarmupAndValues(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	out := SMA(values, 3)

	if len(out) != len(values) {
		t.Fatalf("expected %d outputs, got %d", len(values), len(out))
	}
	for i := 0; i < 2; i++ {
		if !math.IsNaN(out[i]) {
			t.Fatalf("position %d should be NaN during warm-up, got %v", i, out[i])
		}
	}
	want := []float64{2, 3, 4}
	for i, w := range want {
		if got := out[i+2]; math.Abs(got-w) > 1e-12 {
			t.Fatalf("SMA[%d] = %v, want %v", i+2, got, w)
		}
	}
}

func TestSMAConstantSeries(t *testing.T) {
	values := make([]float64, 30)
	for i := range values {
		values[i] = 42
	}
	out := SMA(values, 20)
	for i := 19; i < len(out); i++ {
		if math.Abs(out[i]-42) > 1e-12 {
			t.Fatalf("SMA of constant series should be the constant, got %v at %d", out[i], i)
		}
	}
}

func TestEMASeedAndConvergence(t *testing.T) {
	values := []float64{10, 10, 10, 10, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50}
	out := EMA(values, 5)

	if out[0] != 10 {
		t.Fatalf("EMA should be seeded with the first value, got %v", out[0])
	}
	// Recursive EMA converges toward the new level without overshooting.
	for i := 5; i < len(out); i++ {
		if out[i] < out[i-1] {
			t.Fatalf("EMA should rise monotonically toward the step, fell at %d: %v < %v", i, out[i], out[i-1])
		}
		if out[i] > 50 {
			t.Fatalf("EMA overshot the input level at %d: %v", i, out[i])
		}
	}
	if out[len(out)-1] < 45 {
		t.Fatalf("EMA should converge near 50, got %v", out[len(out)-1])
	}
}

func TestRSIBounds(t *testing.T) {
	// Alternating moves keep both EMAs positive.
	closes := make([]float64, 80)
	closes[0] = 100
	for i := 1; i < len(closes); i++ {
		if i%2 == 1 {
			closes[i] = closes[i-1] + 1.0
		} else {
			closes[i] = closes[i-1] - 0.8
		}
	}
	out := RSI(closes, 14)

	if !math.IsNaN(out[0]) {
		t.Fatalf("RSI[0] should be NaN, got %v", out[0])
	}
	for i := 1; i < len(out); i++ {
		if out[i] < 0 || out[i] > 100 {
			t.Fatalf("RSI[%d] = %v out of [0, 100]", i, out[i])
		}
	}
	// Net uptrend with regular pullbacks should sit above neutral but
	// well below overbought.
	last := out[len(out)-1]
	if last < 50 || last > 70 {
		t.Fatalf("zigzag uptrend RSI = %v, want between 50 and 70", last)
	}
}

func TestRSISaturatesOnMonotonicRise(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	out := RSI(closes, 14)
	for i := 1; i < len(out); i++ {
		if out[i] != 100 {
			t.Fatalf("RSI[%d] = %v, want 100 with no down moves", i, out[i])
		}
	}
}

func TestRSINeutralOnFlatSeries(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100
	}
	out := RSI(closes, 14)
	for i := 1; i < len(out); i++ {
		if out[i] != 50 {
			t.Fatalf("RSI[%d] = %v, want neutral 50 on a flat series", i, out[i])
		}
	}
}

func TestMACDHistogramIdentity(t *testing.T) {
	closes := make([]float64, 120)
	closes[0] = 100
	for i := 1; i < len(closes); i++ {
		if i%3 == 0 {
			closes[i] = closes[i-1] - 1.5
		} else {
			closes[i] = closes[i-1] + 1.1
		}
	}

	line, signalLine, hist := MACD(closes, 12, 26, 9)
	for i := range closes {
		if diff := hist[i] - (line[i] - signalLine[i]); math.Abs(diff) > 1e-12 {
			t.Fatalf("hist[%d] != line - signal, diff %v", i, diff)
		}
	}
}

func TestMACDZeroOnFlatSeries(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100
	}
	line, signalLine, hist := MACD(closes, 12, 26, 9)
	for i := range closes {
		if line[i] != 0 || signalLine[i] != 0 || hist[i] != 0 {
			t.Fatalf("flat series MACD should be zero everywhere, got %v/%v/%v at %d",
				line[i], signalLine[i], hist[i], i)
		}
	}
}

func TestMACDDeterminism(t *testing.T) {
	closes := make([]float64, 100)
	closes[0] = 50
	for i := 1; i < len(closes); i++ {
		closes[i] = closes[i-1] + math.Sin(float64(i))
	}
	l1, s1, h1 := MACD(closes, 12, 26, 9)
	l2, s2, h2 := MACD(closes, 12, 26, 9)
	for i := range closes {
		if l1[i] != l2[i] || s1[i] != s2[i] || h1[i] != h2[i] {
			t.Fatalf("MACD not reproducible at %d", i)
		}
	}
}
