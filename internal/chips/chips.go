// Package chips retrieves institutional trading-flow data and reduces
// it to a five-day net-buy summary per investor class.
package chips

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/stock-sentry/internal/marketdata"
	"github.com/yourusername/stock-sentry/internal/models"
)

// Thresholds in thousands of shares above which a class's five-day net
// flow counts as a significant move.
const (
	foreignThreshold = 50
	trustThreshold   = 10
	dealerThreshold  = 20
)

// Fetcher retrieves the institutional net-flow summary for a ticker.
type Fetcher interface {
	GetInstitutionalSummary(ctx context.Context, ticker string) models.ChipSummary
}

// Empty returns the neutral summary used whenever flow data cannot be
// retrieved. Callers never see an error from this subsystem; a missing
// feed degrades the analysis, it does not abort it.
func Empty() models.ChipSummary {
	return models.ChipSummary{StatusText: "no institutional data"}
}

// flowRecord is one investor-class entry for one trading day.
type flowRecord struct {
	Date string  `json:"date"`
	Buy  float64 `json:"buy"`
	Sell float64 `json:"sell"`
	Name string  `json:"name"`
}

type flowResponse struct {
	Msg  string       `json:"msg"`
	Data []flowRecord `json:"data"`
}

// HTTPFetcher pulls raw buy/sell records from the flow-data API.
type HTTPFetcher struct {
	baseURL string
	token   string
	client  *marketdata.RateLimitedHTTPClient
	logger  *logrus.Logger
	now     func() time.Time
}

// NewHTTPFetcher creates a fetcher against the given API base URL.
func NewHTTPFetcher(baseURL, token string, client *marketdata.RateLimitedHTTPClient, logger *logrus.Logger) *HTTPFetcher {
	if logger == nil {
		logger = logrus.New()
	}
	return &HTTPFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  client,
		logger:  logger,
		now:     time.Now,
	}
}

// GetInstitutionalSummary fetches the last 30 days of flow records and
// summarizes the most recent five trading days. Any failure returns
// the neutral empty summary.
func (f *HTTPFetcher) GetInstitutionalSummary(ctx context.Context, ticker string) models.ChipSummary {
	records, err := f.fetch(ctx, ticker)
	if err != nil {
		f.logger.WithError(err).WithField("ticker", ticker).Warn("Institutional flow fetch failed")
		return Empty()
	}
	return Summarize(records)
}

func (f *HTTPFetcher) fetch(ctx context.Context, ticker string) ([]flowRecord, error) {
	// Strip .TWO before .TW so an OTC suffix is not mangled.
	cleanID := strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(ticker, ".TWO"), ".TW"))

	startDate := f.now().AddDate(0, 0, -30).Format("2006-01-02")
	endpoint := fmt.Sprintf("%s/api/v4/data?dataset=TaiwanStockInstitutionalInvestorsBuySell&data_id=%s&start_date=%s&token=%s",
		f.baseURL, url.QueryEscape(cleanID), startDate, url.QueryEscape(f.token))

	resp, err := f.client.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("flow request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("flow request returned status %d", resp.StatusCode)
	}

	var payload flowResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("bad flow payload: %w", err)
	}
	if payload.Msg != "success" {
		return nil, fmt.Errorf("flow API error: %s", payload.Msg)
	}
	if len(payload.Data) == 0 {
		return nil, fmt.Errorf("no flow data for %s", cleanID)
	}
	return payload.Data, nil
}

// Summarize reduces raw flow records to five-day net totals per
// investor class, in thousands of shares, with a short status line.
func Summarize(records []flowRecord) models.ChipSummary {
	if len(records) == 0 {
		return Empty()
	}

	dates := make([]string, 0, len(records))
	seen := make(map[string]bool)
	for _, r := range records {
		if !seen[r.Date] {
			seen[r.Date] = true
			dates = append(dates, r.Date)
		}
	}
	sort.Strings(dates)
	if len(dates) > 5 {
		dates = dates[len(dates)-5:]
	}
	recent := make(map[string]bool, len(dates))
	for _, d := range dates {
		recent[d] = true
	}

	summary := models.ChipSummary{}
	for _, r := range records {
		if !recent[r.Date] {
			continue
		}
		netBuy := (r.Buy - r.Sell) / 1000
		switch {
		case strings.Contains(r.Name, "Foreign"):
			summary.ForeignNet += netBuy
		case strings.Contains(r.Name, "Investment_Trust"):
			summary.TrustNet += netBuy
		case strings.Contains(r.Name, "Dealer"):
			summary.DealerNet += netBuy
		}
	}

	summary.ForeignNet = models.Round1(summary.ForeignNet)
	summary.TrustNet = models.Round1(summary.TrustNet)
	summary.DealerNet = models.Round1(summary.DealerNet)
	summary.StatusText = statusText(summary)
	return summary
}

func statusText(s models.ChipSummary) string {
	var parts []string
	if abs(s.ForeignNet) > foreignThreshold {
		parts = append(parts, "foreign "+direction(s.ForeignNet))
	}
	if abs(s.TrustNet) > trustThreshold {
		parts = append(parts, "trust "+direction(s.TrustNet))
	}
	if abs(s.DealerNet) > dealerThreshold {
		parts = append(parts, "dealer "+direction(s.DealerNet))
	}
	if len(parts) == 0 {
		return "institutional flows quiet"
	}
	return strings.Join(parts, ", ")
}

func direction(v float64) string {
	if v > 0 {
		return "net buying"
	}
	return "net selling"
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
