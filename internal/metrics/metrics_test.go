package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrySingleton(t *testing.T) {
	first := Registry()
	second := Registry()

	require.NotNil(t, first)
	assert.Same(t, first, second)
}

func TestRecordingDoesNotPanic(t *testing.T) {
	Registry()

	assert.NotPanics(t, func() {
		AnalysesTotal.WithLabelValues("ok").Inc()
		AnalysesTotal.WithLabelValues("no_data").Inc()
		BreakoutsDetectedTotal.Inc()
		PredictionsTotal.Inc()
		PredictionFailuresTotal.Inc()
		CacheHitsTotal.Inc()
		CacheMissesTotal.Inc()
		WatchlistSize.Set(3)
		AnalysisDuration.Observe(0.8)
		BacktestDuration.Observe(0.05)
	})
}

func TestHandlerServesMetrics(t *testing.T) {
	AnalysesTotal.WithLabelValues("ok").Inc()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "stock_sentry_analyses_total")
	assert.Contains(t, string(body), "stock_sentry_watchlist_size")
}
