package models

import (
	"fmt"
	"math"

	"github.com/yourusername/stock-sentry/internal/indicator"
)

// PriceSeries is an ordered daily price history for one instrument.
// Derived indicator columns are computed lazily and cached; recomputing
// them from the same bars reproduces bit-identical values. The cached
// columns make the series unsuitable for concurrent use; build one
// series per analysis request.
type PriceSeries struct {
	Ticker string
	Bars   []PriceBar

	closes  []float64
	volMA5  []float64
	ma20    []float64
	ma60    []float64
	rsi14   []float64
	macd    []float64
	macdSig []float64
	macdHst []float64
}

// NewPriceSeries validates bar ordering and wraps the bars in a series.
// Calendar gaps are fine; duplicate or out-of-order dates are not.
func NewPriceSeries(ticker string, bars []PriceBar) (*PriceSeries, error) {
	for i := 1; i < len(bars); i++ {
		if !bars[i].Date.After(bars[i-1].Date) {
			return nil, fmt.Errorf("%w: bar %d (%s) does not follow bar %d (%s)",
				ErrUnorderedSeries, i, bars[i].Date.Format("2006-01-02"), i-1, bars[i-1].Date.Format("2006-01-02"))
		}
	}
	return &PriceSeries{Ticker: ticker, Bars: bars}, nil
}

// Len returns the number of bars.
func (s *PriceSeries) Len() int { return len(s.Bars) }

// Last returns the most recent bar. Callers must check Len first.
func (s *PriceSeries) Last() PriceBar { return s.Bars[len(s.Bars)-1] }

// Closes returns the closing prices in date order.
func (s *PriceSeries) Closes() []float64 {
	if s.closes == nil {
		s.closes = make([]float64, len(s.Bars))
		for i, b := range s.Bars {
			s.closes[i] = b.Close
		}
	}
	return s.closes
}

// VolMA5 returns, per index, the mean volume of the 5 bars strictly
// preceding that index. NaN until 5 prior bars exist. The original data
// pipeline mixed trailing and centered-on-today windows; the strictly
// preceding window is used everywhere here so that a spike day never
// inflates its own baseline.
func (s *PriceSeries) VolMA5() []float64 {
	if s.volMA5 == nil {
		s.volMA5 = make([]float64, len(s.Bars))
		sum := 0.0
		for i := range s.Bars {
			if i < 5 {
				s.volMA5[i] = math.NaN()
			} else {
				s.volMA5[i] = sum / 5
			}
			sum += s.Bars[i].Volume
			if i >= 5 {
				sum -= s.Bars[i-5].Volume
			}
		}
	}
	return s.volMA5
}

// MA20 returns the 20-day simple moving average of the close.
func (s *PriceSeries) MA20() []float64 {
	if s.ma20 == nil {
		s.ma20 = indicator.SMA(s.Closes(), 20)
	}
	return s.ma20
}

// MA60 returns the 60-day simple moving average of the close.
func (s *PriceSeries) MA60() []float64 {
	if s.ma60 == nil {
		s.ma60 = indicator.SMA(s.Closes(), 60)
	}
	return s.ma60
}

// RSI14 returns the 14-period Wilder RSI of the close.
func (s *PriceSeries) RSI14() []float64 {
	if s.rsi14 == nil {
		s.rsi14 = indicator.RSI(s.Closes(), 14)
	}
	return s.rsi14
}

// MACD returns the MACD(12,26,9) line, signal line and histogram.
func (s *PriceSeries) MACD() (line, signal, hist []float64) {
	if s.macd == nil {
		s.macd, s.macdSig, s.macdHst = indicator.MACD(s.Closes(), 12, 26, 9)
	}
	return s.macd, s.macdSig, s.macdHst
}
