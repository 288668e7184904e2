// Package models defines the shared data types for the stock analysis pipeline.
package models

import "time"

// PriceBar represents a single trading day of OHLCV data.
// Bars are immutable once ingested.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}
