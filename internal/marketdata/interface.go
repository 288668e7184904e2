// Package marketdata supplies daily price histories from external
// providers. The core pipeline only ever sees the materialized
// models.PriceSeries; retrieval details stay behind the Provider
// interface.
package marketdata

import (
	"context"
	"errors"

	"github.com/yourusername/stock-sentry/internal/models"
)

// Provider fetches daily OHLCV history for a ticker. Implementations
// may resolve the ticker to a canonical listing (exchange suffix
// fallback); the resolved symbol is returned alongside the series.
type Provider interface {
	// GetDailyHistory returns the bar history and the resolved ticker.
	// On a nil error the series holds at least one bar; an empty payload
	// is reported as ErrEmptyHistory instead.
	GetDailyHistory(ctx context.Context, ticker string) (*models.PriceSeries, string, error)

	// Name returns the provider name for logging.
	Name() string
}

// Common provider errors
var (
	ErrTickerNotFound = errors.New("ticker not found at provider")
	ErrEmptyHistory   = errors.New("provider returned empty history")
	ErrBadPayload     = errors.New("provider returned malformed payload")
)
