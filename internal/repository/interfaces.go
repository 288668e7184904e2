// Package repository provides persistence for the watchlist.
package repository

import (
	"context"

	"github.com/yourusername/stock-sentry/internal/models"
)

// WatchlistRepository stores the watched tickers. The watchlist is the
// only persisted state in the service.
type WatchlistRepository interface {
	Add(ctx context.Context, ticker string) (*models.WatchEntry, error)
	Remove(ctx context.Context, ticker string) error
	GetByTicker(ctx context.Context, ticker string) (*models.WatchEntry, error)
	List(ctx context.Context) ([]*models.WatchEntry, error)
}
