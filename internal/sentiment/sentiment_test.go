package sentiment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yourusername/stock-sentry/internal/marketdata"
	"github.com/yourusername/stock-sentry/internal/models"
)

func TestParseReplyWellFormed(t *testing.T) {
	got := ParseReply("score: 0.8\ncomment: strong breakout with institutional support")
	if got.Score != 0.8 {
		t.Fatalf("score = %v, want 0.8", got.Score)
	}
	if got.Comment != "strong breakout with institutional support" {
		t.Fatalf("comment = %q", got.Comment)
	}
}

func TestParseReplyVariants(t *testing.T) {
	cases := []struct {
		name      string
		reply     string
		wantScore float64
	}{
		{"negative score", "score: -0.4\ncomment: weak", -0.4},
		{"full-width colon", "score： 0.5\ncomment： mixed", 0.5},
		{"mixed case label", "Score: 0.2\nComment: ok", 0.2},
		{"clamped above", "score: 3\ncomment: overenthusiastic", 1},
		{"clamped below", "score: -2.5\ncomment: doom", -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ParseReply(c.reply)
			if got.Score != c.wantScore {
				t.Fatalf("score = %v, want %v", got.Score, c.wantScore)
			}
			if got.Comment == "" {
				t.Fatal("comment should not be empty")
			}
		})
	}
}

func TestParseReplyMultilineComment(t *testing.T) {
	got := ParseReply("score: 0.1\ncomment: first line\nsecond line")
	if !strings.Contains(got.Comment, "second line") {
		t.Fatalf("comment should keep trailing lines, got %q", got.Comment)
	}
}

func TestParseReplyUnparseable(t *testing.T) {
	got := ParseReply("the model rambled about the market instead")
	if got.Score != 0 {
		t.Fatalf("missing score should default to 0, got %v", got.Score)
	}
	// The raw text still reaches the user.
	if got.Comment != "the model rambled about the market instead" {
		t.Fatalf("comment = %q", got.Comment)
	}

	got = ParseReply("")
	if got.Score != 0 || got.Comment != "no comment provided" {
		t.Fatalf("empty reply should be neutral, got %+v", got)
	}
}

func TestBuildPromptCarriesContext(t *testing.T) {
	rsi := 61.2
	prompt := BuildPrompt(Input{
		Ticker:     "2330.TW",
		StockName:  "TSMC",
		Headlines:  []string{"record quarterly revenue", "capacity expansion announced"},
		Price:      987.0,
		RSI:        &rsi,
		MACDStatus: "bullish_strengthening",
		IsBreakout: true,
		Chips: models.ChipSummary{
			ForeignNet: 120.5, TrustNet: 3.2, DealerNet: -1.1,
			StatusText: "foreign net buying",
		},
	})

	for _, want := range []string{
		"TSMC", "2330.TW", "987.00", "61.2", "bullish_strengthening",
		"volume breakout yes", "record quarterly revenue", "foreign net buying",
		"score:", "comment:",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildPromptWithoutOptionalContext(t *testing.T) {
	prompt := BuildPrompt(Input{Ticker: "2330.TW", Price: 500})
	if !strings.Contains(prompt, "RSI n/a") {
		t.Fatalf("nil RSI should render as n/a:\n%s", prompt)
	}
	if !strings.Contains(prompt, "no recent headlines") {
		t.Fatalf("empty news should be stated:\n%s", prompt)
	}
}

func TestHTTPScorerRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing auth header")
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "score: 0.6\ncomment: constructive setup"}},
			},
		})
	}))
	defer server.Close()

	client := marketdata.NewRateLimitedHTTPClient(marketdata.DefaultHTTPClientConfig(), nil)
	defer client.Close()
	scorer := NewHTTPScorer(server.URL, "test-key", "test-model", client, nil)

	got := scorer.Score(context.Background(), Input{Ticker: "2330.TW", Price: 500})
	if got.Score != 0.6 {
		t.Fatalf("score = %v, want 0.6", got.Score)
	}
	if got.Comment != "constructive setup" {
		t.Fatalf("comment = %q", got.Comment)
	}
}

func TestHTTPScorerFailureIsNeutral(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := marketdata.DefaultHTTPClientConfig()
	cfg.MaxRetries = 0
	client := marketdata.NewRateLimitedHTTPClient(cfg, nil)
	defer client.Close()
	scorer := NewHTTPScorer(server.URL, "test-key", "test-model", client, nil)

	got := scorer.Score(context.Background(), Input{Ticker: "2330.TW"})
	if got.Score != 0 {
		t.Fatalf("failures must score neutral, got %v", got.Score)
	}
	if got.Comment != "sentiment service unavailable" {
		t.Fatalf("comment = %q", got.Comment)
	}
}
