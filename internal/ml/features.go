// Package ml implements the next-day direction predictor: lagged
// feature engineering over a price series and a small bagged
// decision-tree ensemble trained per request.
package ml

import (
	"math"

	"github.com/yourusername/stock-sentry/internal/models"
)

// FeatureSet is the engineered matrix for one series: the fully labeled
// training rows and the newest row, which has no next-day label and is
// the prediction target.
type FeatureSet struct {
	Rows   []models.FeatureRow
	Latest models.FeatureRow
}

// UsableRows counts every fully defined row including the unlabeled
// newest one, mirroring the length check the predictor applies.
func (f FeatureSet) UsableRows() int {
	return len(f.Rows) + 1
}

// BuildFeatures engineers the lagged feature matrix. Rows with any
// undefined or infinite input are dropped; the newest bar becomes the
// unlabeled Latest row. Returns models.ErrInsufficientHistory when no
// defined newest row can be produced.
func BuildFeatures(s *models.PriceSeries) (FeatureSet, error) {
	n := s.Len()
	if n < 3 {
		return FeatureSet{}, models.ErrInsufficientHistory
	}

	closes := s.Closes()
	rsi := s.RSI14()
	_, _, hist := s.MACD()
	ma20 := s.MA20()

	bias := make([]float64, n)
	volChange := make([]float64, n)
	dayReturn := make([]float64, n)
	for i := 0; i < n; i++ {
		bias[i] = ratioOffset(closes[i], ma20[i])
		if i == 0 {
			volChange[i] = math.NaN()
			dayReturn[i] = math.NaN()
			continue
		}
		volChange[i] = ratioOffset(s.Bars[i].Volume, s.Bars[i-1].Volume)
		dayReturn[i] = ratioOffset(closes[i], closes[i-1])
	}

	var set FeatureSet
	for i := 3; i < n; i++ {
		row := models.FeatureRow{
			Date:          s.Bars[i].Date,
			RSI:           rsi[i],
			MACDHist:      hist[i],
			Bias20:        bias[i],
			VolChange:     volChange[i],
			ReturnLag1:    dayReturn[i-1],
			ReturnLag2:    dayReturn[i-2],
			VolChangeLag1: volChange[i-1],
			RSILag1:       rsi[i-1],
		}
		if !rowDefined(row) {
			continue
		}
		if i == n-1 {
			set.Latest = row
			continue
		}
		if closes[i+1] > closes[i] {
			row.Label = 1
		}
		set.Rows = append(set.Rows, row)
	}

	if set.Latest.Date.IsZero() {
		return FeatureSet{}, models.ErrInsufficientHistory
	}
	return set, nil
}

// ratioOffset computes (value-base)/base, NaN when the base is zero so
// the row is excluded instead of silently carrying an infinity.
func ratioOffset(value, base float64) float64 {
	if base == 0 || math.IsNaN(base) {
		return math.NaN()
	}
	return (value - base) / base
}

func rowDefined(row models.FeatureRow) bool {
	for _, v := range row.Vector() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
