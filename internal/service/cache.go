package service

import (
	"fmt"
	"strings"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/yourusername/stock-sentry/internal/metrics"
	"github.com/yourusername/stock-sentry/internal/models"
)

// ResultCache keeps completed analyses in memory so repeated lookups of
// the same ticker within a session do not refetch history or re-run the
// backtest. Entries are keyed per ticker per trading day.
type ResultCache struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewResultCache creates a cache with the given TTL.
func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

func cacheKey(ticker string, day time.Time) string {
	return fmt.Sprintf("%s:%s", ticker, day.Format("2006-01-02"))
}

// Get returns the cached result for a ticker on a trading day, or nil.
func (rc *ResultCache) Get(ticker string, day time.Time) *models.AnalysisResult {
	if v, found := rc.cache.Get(cacheKey(ticker, day)); found {
		if result, ok := v.(*models.AnalysisResult); ok {
			metrics.CacheHitsTotal.Inc()
			return result
		}
	}
	metrics.CacheMissesTotal.Inc()
	return nil
}

// Set stores a completed analysis.
func (rc *ResultCache) Set(ticker string, day time.Time, result *models.AnalysisResult) {
	rc.cache.Set(cacheKey(ticker, day), result, rc.ttl)
}

// Invalidate drops every cached analysis for a ticker, regardless of
// trading day. Quote ticks call this so the next analysis re-runs
// against fresh data; the ticker may arrive with or without an exchange
// suffix, whichever form the feed uses.
func (rc *ResultCache) Invalidate(ticker string) {
	base := baseSymbol(ticker)
	if base == "" {
		return
	}
	for key := range rc.cache.Items() {
		if i := strings.LastIndex(key, ":"); i > 0 && baseSymbol(key[:i]) == base {
			rc.cache.Delete(key)
		}
	}
}

func baseSymbol(ticker string) string {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	t = strings.TrimSuffix(t, ".TWO")
	t = strings.TrimSuffix(t, ".TW")
	return t
}

// Clear flushes the cache.
func (rc *ResultCache) Clear() {
	rc.cache.Flush()
}

// ItemCount returns the number of cached analyses.
func (rc *ResultCache) ItemCount() int {
	return rc.cache.ItemCount()
}
