package ml

import (
	"errors"
	"math"
	"testing"

	"github.com/yourusername/stock-sentry/test/helpers"
)

func TestBuildFeaturesDropsUndefinedRows(t *testing.T) {
	s := helpers.ZigzagSeries(t, "TEST", 150)

	set, err := BuildFeatures(s)
	if err != nil {
		t.Fatal(err)
	}

	// Bias20 needs the 20-day average, so the earliest rows are dropped.
	for _, row := range set.Rows {
		for _, v := range row.Vector() {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("materialized row %v carries an undefined value", row.Date)
			}
		}
	}
	if len(set.Rows) < 100 {
		t.Fatalf("expected over 100 usable rows from 150 bars, got %d", len(set.Rows))
	}

	// The newest row is the unlabeled prediction target.
	if !set.Latest.Date.Equal(s.Last().Date) {
		t.Fatalf("latest row date = %v, want %v", set.Latest.Date, s.Last().Date)
	}
	if set.UsableRows() != len(set.Rows)+1 {
		t.Fatalf("UsableRows = %d, want rows+1", set.UsableRows())
	}
}

func TestBuildFeaturesLabels(t *testing.T) {
	s := helpers.ZigzagSeries(t, "TEST", 150)

	set, err := BuildFeatures(s)
	if err != nil {
		t.Fatal(err)
	}

	closes := s.Closes()
	dateIndex := make(map[int64]int, s.Len())
	for i, b := range s.Bars {
		dateIndex[b.Date.Unix()] = i
	}

	for _, row := range set.Rows {
		i := dateIndex[row.Date.Unix()]
		want := 0
		if closes[i+1] > closes[i] {
			want = 1
		}
		if row.Label != want {
			t.Fatalf("label at %v = %d, want %d", row.Date, row.Label, want)
		}
	}
}

func TestPredictRangeAndDeterminism(t *testing.T) {
	p := NewPredictor(nil)

	first, err := p.Predict(helpers.ZigzagSeries(t, "TEST", 150))
	if err != nil {
		t.Fatalf("prediction should be available on 150 bars: %v", err)
	}
	if first < 0 || first > 100 {
		t.Fatalf("probability %v out of [0, 100]", first)
	}

	second, err := p.Predict(helpers.ZigzagSeries(t, "TEST", 150))
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("identical history must predict identically: %v vs %v", first, second)
	}
}

func TestPredictShortSeriesUnavailable(t *testing.T) {
	p := NewPredictor(nil)

	_, err := p.Predict(helpers.ZigzagSeries(t, "TEST", 99))
	if !errors.Is(err, ErrPredictionUnavailable) {
		t.Fatalf("99 bars should be unavailable, got %v", err)
	}

	_, err = p.Predict(nil)
	if !errors.Is(err, ErrPredictionUnavailable) {
		t.Fatalf("nil series should be unavailable, got %v", err)
	}
}

func TestPredictFlatSeriesStaysInRange(t *testing.T) {
	// A flat series produces constant features; the ensemble must still
	// answer with a valid probability rather than diverge.
	p := NewPredictor(nil)

	prob, err := p.Predict(helpers.FlatSeries(t, "FLAT", 150))
	if err != nil {
		if !errors.Is(err, ErrPredictionUnavailable) {
			t.Fatalf("unexpected error kind: %v", err)
		}
		return
	}
	if prob < 0 || prob > 100 {
		t.Fatalf("probability %v out of [0, 100]", prob)
	}
}

func TestFitForestRejectsEmptySet(t *testing.T) {
	_, err := FitForest(nil, nil)
	if !errors.Is(err, ErrEmptyTrainingSet) {
		t.Fatalf("expected ErrEmptyTrainingSet, got %v", err)
	}
}

func TestForestProbabilityBounds(t *testing.T) {
	// A tiny separable problem: feature > 0 means class 1.
	var x [][]float64
	var y []int
	for i := 0; i < 40; i++ {
		v := float64(i%7) - 3
		row := []float64{v, v * 2, -v, v, v, v, v, v}
		x = append(x, row)
		if v > 0 {
			y = append(y, 1)
		} else {
			y = append(y, 0)
		}
	}

	forest, err := FitForest(x, y)
	if err != nil {
		t.Fatal(err)
	}

	up := forest.PredictProb([]float64{2, 4, -2, 2, 2, 2, 2, 2})
	down := forest.PredictProb([]float64{-2, -4, 2, -2, -2, -2, -2, -2})
	if up < 0 || up > 1 || down < 0 || down > 1 {
		t.Fatalf("probabilities out of [0, 1]: %v, %v", up, down)
	}
	if up <= down {
		t.Fatalf("separable problem: up-class prob %v should exceed down-class prob %v", up, down)
	}
}
