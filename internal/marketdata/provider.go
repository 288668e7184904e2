package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/stock-sentry/internal/models"
)

// HTTPProvider fetches daily bar history from a JSON market-data API.
type HTTPProvider struct {
	baseURL     string
	apiKey      string
	historyDays int
	client      *RateLimitedHTTPClient
	logger      *logrus.Logger
}

// NewHTTPProvider creates a provider against the given base URL.
func NewHTTPProvider(baseURL, apiKey string, historyDays int, client *RateLimitedHTTPClient, logger *logrus.Logger) *HTTPProvider {
	if logger == nil {
		logger = logrus.New()
	}
	if historyDays <= 0 {
		historyDays = 365
	}
	return &HTTPProvider{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		historyDays: historyDays,
		client:      client,
		logger:      logger,
	}
}

// Name returns the provider name.
func (p *HTTPProvider) Name() string { return "http_daily" }

// GetDailyHistory fetches the bar history, resolving the exchange
// suffix automatically: a bare numeric ticker is tried as a listed
// (.TW) then an over-the-counter (.TWO) symbol, so a user who types
// the wrong suffix still gets data.
func (p *HTTPProvider) GetDailyHistory(ctx context.Context, ticker string) (*models.PriceSeries, string, error) {
	candidates := ResolveTickerCandidates(ticker)

	var lastErr error = ErrTickerNotFound
	for _, candidate := range candidates {
		series, err := p.fetch(ctx, candidate)
		if err != nil {
			p.logger.WithError(err).WithField("ticker", candidate).Debug("History fetch failed, trying next candidate")
			lastErr = err
			continue
		}
		return series, candidate, nil
	}
	return nil, "", fmt.Errorf("no history for %q: %w", ticker, lastErr)
}

// ResolveTickerCandidates normalizes the user input and builds the
// ordered list of symbols to try. The exchange suffix is stripped
// first so a mistyped suffix can be corrected.
func ResolveTickerCandidates(ticker string) []string {
	clean := strings.ToUpper(strings.TrimSpace(ticker))
	base := strings.TrimSuffix(strings.TrimSuffix(clean, ".TWO"), ".TW")

	if isDigits(base) {
		return []string{base + ".TW", base + ".TWO"}
	}
	return []string{base}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// barPayload is the provider's wire format for one day.
type barPayload struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

type historyPayload struct {
	Ticker string       `json:"ticker"`
	Bars   []barPayload `json:"bars"`
}

func (p *HTTPProvider) fetch(ctx context.Context, ticker string) (*models.PriceSeries, error) {
	endpoint := fmt.Sprintf("%s/v1/history/%s?days=%d&apikey=%s",
		p.baseURL, url.PathEscape(ticker), p.historyDays, url.QueryEscape(p.apiKey))

	resp, err := p.client.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("history request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrTickerNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrBadPayload, resp.StatusCode)
	}

	var payload historyPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if len(payload.Bars) == 0 {
		return nil, ErrEmptyHistory
	}

	bars := make([]models.PriceBar, 0, len(payload.Bars))
	for _, b := range payload.Bars {
		date, err := time.Parse("2006-01-02", b.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: bad date %q", ErrBadPayload, b.Date)
		}
		bars = append(bars, models.PriceBar{
			Date:   date,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}

	series, err := models.NewPriceSeries(ticker, bars)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return series, nil
}
