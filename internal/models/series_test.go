package models

import (
	"errors"
	"math"
	"testing"
	"time"
)

func barsFromCloses(closes []float64) []PriceBar {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: float64(1000 + i),
		}
	}
	return bars
}

func TestNewPriceSeriesRejectsUnorderedDates(t *testing.T) {
	bars := barsFromCloses([]float64{1, 2, 3})
	bars[2].Date = bars[1].Date

	_, err := NewPriceSeries("TEST", bars)
	if !errors.Is(err, ErrUnorderedSeries) {
		t.Fatalf("expected ErrUnorderedSeries for duplicate date, got %v", err)
	}

	bars = barsFromCloses([]float64{1, 2, 3})
	bars[1].Date = bars[1].Date.AddDate(0, 0, -5)
	_, err = NewPriceSeries("TEST", bars)
	if !errors.Is(err, ErrUnorderedSeries) {
		t.Fatalf("expected ErrUnorderedSeries for out-of-order date, got %v", err)
	}
}

func TestNewPriceSeriesAllowsCalendarGaps(t *testing.T) {
	bars := barsFromCloses([]float64{1, 2, 3})
	bars[2].Date = bars[2].Date.AddDate(0, 0, 10)

	s, err := NewPriceSeries("TEST", bars)
	if err != nil {
		t.Fatalf("calendar gaps should be accepted: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 bars, got %d", s.Len())
	}
}

func TestVolMA5StrictlyPrecedingWindow(t *testing.T) {
	bars := barsFromCloses(make([]float64, 8))
	volumes := []float64{10, 20, 30, 40, 50, 600, 70, 80}
	for i := range bars {
		bars[i].Close = 100
		bars[i].Volume = volumes[i]
	}
	s, err := NewPriceSeries("TEST", bars)
	if err != nil {
		t.Fatal(err)
	}

	out := s.VolMA5()
	for i := 0; i < 5; i++ {
		if !math.IsNaN(out[i]) {
			t.Fatalf("VolMA5[%d] should be NaN with fewer than 5 prior bars, got %v", i, out[i])
		}
	}
	// Index 5 averages volumes 0..4; the spike at index 5 itself must
	// not contribute.
	if want := 30.0; out[5] != want {
		t.Fatalf("VolMA5[5] = %v, want %v", out[5], want)
	}
	// Index 6 averages volumes 1..5 and picks up the spike.
	if want := (20 + 30 + 40 + 50 + 600) / 5.0; out[6] != want {
		t.Fatalf("VolMA5[6] = %v, want %v", out[6], want)
	}
}

func TestDerivedColumnsAreStable(t *testing.T) {
	closes := make([]float64, 80)
	closes[0] = 100
	for i := 1; i < len(closes); i++ {
		closes[i] = closes[i-1] + math.Sin(float64(i))
	}
	s, err := NewPriceSeries("TEST", barsFromCloses(closes))
	if err != nil {
		t.Fatal(err)
	}

	first := append([]float64(nil), s.RSI14()...)
	second := s.RSI14()
	for i := range first {
		same := first[i] == second[i] || (math.IsNaN(first[i]) && math.IsNaN(second[i]))
		if !same {
			t.Fatalf("RSI14 changed between calls at %d: %v vs %v", i, first[i], second[i])
		}
	}

	ma := s.MA20()
	if &ma[0] != &s.MA20()[0] {
		t.Fatal("MA20 should return the cached column")
	}
}

func TestRoundHelpers(t *testing.T) {
	cases := []struct {
		in     float64
		round2 float64
		round1 float64
	}{
		{1.005, 1.01, 1.0},
		{1.015, 1.02, 1.0},
		{2.345, 2.35, 2.3},
		{-3.456, -3.46, -3.5},
		{0, 0, 0},
	}
	for _, c := range cases {
		if got := Round2(c.in); got != c.round2 {
			t.Errorf("Round2(%v) = %v, want %v", c.in, got, c.round2)
		}
		if got := Round1(c.in); got != c.round1 {
			t.Errorf("Round1(%v) = %v, want %v", c.in, got, c.round1)
		}
	}

	if !math.IsNaN(Round2(math.NaN())) {
		t.Fatal("Round2 should pass NaN through")
	}
	if !math.IsInf(Round1(math.Inf(1)), 1) {
		t.Fatal("Round1 should pass +Inf through")
	}
}
