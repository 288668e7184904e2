// Package indicator provides pure time-series indicator functions.
//
// All functions return one output value per input value. Positions where
// an indicator is mathematically undefined hold math.NaN(); undefined is
// always explicit, never a sentinel zero. Inputs are never modified.
package indicator

import "math"

// SMA returns the simple moving average over the given window. The
// first window-1 positions are NaN.
func SMA(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 0 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// EMA returns the recursive no-adjustment exponential moving average
// with smoothing alpha = 2/(span+1), seeded with the first value.
func EMA(values []float64, span int) []float64 {
	return emaAlpha(values, 2.0/float64(span+1))
}

func emaAlpha(values []float64, alpha float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = out[i-1] + alpha*(values[i]-out[i-1])
	}
	return out
}
