package models

import "time"

// FeatureRow is one engineered observation for the next-day classifier.
// Rows carrying any undefined or infinite input are excluded during
// construction, so a materialized row is always fully defined.
type FeatureRow struct {
	Date          time.Time
	RSI           float64
	MACDHist      float64
	Bias20        float64
	VolChange     float64
	ReturnLag1    float64
	ReturnLag2    float64
	VolChangeLag1 float64
	RSILag1       float64

	// Label is 1 when the next day's close exceeds this day's close.
	// Meaningless for the newest row, which has no next day yet.
	Label int
}

// Vector returns the features in training order.
func (r FeatureRow) Vector() []float64 {
	return []float64{
		r.RSI,
		r.MACDHist,
		r.Bias20,
		r.VolChange,
		r.ReturnLag1,
		r.ReturnLag2,
		r.VolChangeLag1,
		r.RSILag1,
	}
}
