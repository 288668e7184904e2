package indicator

import "math"

// RSI returns the Wilder relative strength index of the closes.
//
// The up and down delta series are smoothed independently with a
// recursive EMA using alpha = 1/period (center of mass period-1), then
// RSI = 100 - 100/(1+up/down). Index 0 has no delta and is NaN.
//
// When the down EMA is exactly zero the ratio is undefined: with up
// moves present the index saturates at 100; with both EMAs exactly zero
// (a perfectly flat series) it reports the neutral 50 rather than an
// undefined marker, so that no-net-movement reads as no momentum.
func RSI(closes []float64, period int) []float64 {
	out := make([]float64, len(closes))
	for i := range out {
		out[i] = math.NaN()
	}
	if len(closes) < 2 || period <= 0 {
		return out
	}

	alpha := 1.0 / float64(period)
	var emaUp, emaDown float64
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		up, down := 0.0, 0.0
		if delta > 0 {
			up = delta
		} else {
			down = -delta
		}
		if i == 1 {
			emaUp, emaDown = up, down
		} else {
			emaUp += alpha * (up - emaUp)
			emaDown += alpha * (down - emaDown)
		}
		out[i] = rsiValue(emaUp, emaDown)
	}
	return out
}

func rsiValue(emaUp, emaDown float64) float64 {
	if emaDown == 0 {
		if emaUp == 0 {
			return 50
		}
		return 100
	}
	rs := emaUp / emaDown
	return 100 - 100/(1+rs)
}
