// Package helpers provides synthetic price histories shared by package
// tests.
package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yourusername/stock-sentry/internal/models"
)

// SeriesStart is the first bar date of every synthetic series.
var SeriesStart = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

// ZigzagSeries builds a slowly rising sawtooth history: every odd bar
// closes 1.0 above the previous close, every even bar closes 0.8
// below, for a net drift of +0.1 per bar. Volume is flat at 1000
// except at the indices listed in spikeDays, which trade 5000. Each
// bar opens at the prior close, so odd bars are up candles.
func ZigzagSeries(t *testing.T, ticker string, n int, spikeDays ...int) *models.PriceSeries {
	t.Helper()

	spikes := make(map[int]bool, len(spikeDays))
	for _, d := range spikeDays {
		spikes[d] = true
	}

	bars := make([]models.PriceBar, n)
	prevClose := 100.0
	for i := 0; i < n; i++ {
		open := prevClose
		var close float64
		if i == 0 {
			close = 100.0
		} else if i%2 == 1 {
			close = prevClose + 1.0
		} else {
			close = prevClose - 0.8
		}

		volume := 1000.0
		if spikes[i] {
			volume = 5000.0
		}

		bars[i] = models.PriceBar{
			Date:   SeriesStart.AddDate(0, 0, i),
			Open:   open,
			High:   max(open, close) + 0.1,
			Low:    min(open, close) - 0.1,
			Close:  close,
			Volume: volume,
		}
		prevClose = close
	}

	s, err := models.NewPriceSeries(ticker, bars)
	require.NoError(t, err)
	return s
}

// FlatSeries builds a history where every bar is identical: open,
// high, low and close all 100, volume 1000.
func FlatSeries(t *testing.T, ticker string, n int) *models.PriceSeries {
	t.Helper()

	bars := make([]models.PriceBar, n)
	for i := 0; i < n; i++ {
		bars[i] = models.PriceBar{
			Date:   SeriesStart.AddDate(0, 0, i),
			Open:   100,
			High:   100,
			Low:    100,
			Close:  100,
			Volume: 1000,
		}
	}

	s, err := models.NewPriceSeries(ticker, bars)
	require.NoError(t, err)
	return s
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
