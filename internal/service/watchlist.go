package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/stock-sentry/internal/metrics"
	"github.com/yourusername/stock-sentry/internal/models"
	"github.com/yourusername/stock-sentry/internal/repository"
)

var tickerPattern = regexp.MustCompile(`^[0-9A-Z]{1,10}(\.TW|\.TWO)?$`)

// WatchlistService manages the persisted set of watched tickers.
type WatchlistService struct {
	repo   repository.WatchlistRepository
	logger *logrus.Logger
}

// NewWatchlistService creates the service.
func NewWatchlistService(repo repository.WatchlistRepository, logger *logrus.Logger) *WatchlistService {
	if logger == nil {
		logger = logrus.New()
	}
	return &WatchlistService{repo: repo, logger: logger}
}

// NormalizeTicker uppercases and trims the input and validates its
// shape. Returns ErrInvalidTicker for anything that cannot be a symbol.
func NormalizeTicker(ticker string) (string, error) {
	clean := strings.ToUpper(strings.TrimSpace(ticker))
	if !tickerPattern.MatchString(clean) {
		return "", fmt.Errorf("%w: %q", models.ErrInvalidTicker, ticker)
	}
	return clean, nil
}

// Add puts a ticker on the watchlist.
func (s *WatchlistService) Add(ctx context.Context, ticker string) (*models.WatchEntry, error) {
	clean, err := NormalizeTicker(ticker)
	if err != nil {
		return nil, err
	}

	entry, err := s.repo.Add(ctx, clean)
	if err != nil {
		return nil, err
	}

	s.refreshSizeGauge(ctx)
	s.logger.WithField("ticker", clean).Info("Ticker added to watchlist")
	return entry, nil
}

// Remove takes a ticker off the watchlist.
func (s *WatchlistService) Remove(ctx context.Context, ticker string) error {
	clean, err := NormalizeTicker(ticker)
	if err != nil {
		return err
	}

	if err := s.repo.Remove(ctx, clean); err != nil {
		return err
	}

	s.refreshSizeGauge(ctx)
	s.logger.WithField("ticker", clean).Info("Ticker removed from watchlist")
	return nil
}

// List returns all watched tickers.
func (s *WatchlistService) List(ctx context.Context) ([]*models.WatchEntry, error) {
	return s.repo.List(ctx)
}

func (s *WatchlistService) refreshSizeGauge(ctx context.Context) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return
	}
	metrics.WatchlistSize.Set(float64(len(entries)))
}
