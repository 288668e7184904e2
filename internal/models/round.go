package models

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round2 rounds to two decimal places (prices, MACD values).
func Round2(v float64) float64 { return roundPlaces(v, 2) }

// Round1 rounds to one decimal place (percentages, RSI).
func Round1(v float64) float64 { return roundPlaces(v, 1) }

func roundPlaces(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	out, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return out
}
