// Package sentiment calls a language-model service to score news and
// flow context for a ticker. The reply is parsed line-by-line rather
// than as JSON: the model is asked for a "score:" line and a
// "comment:" line, which survives formatting drift far better than a
// structured payload.
package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/stock-sentry/internal/marketdata"
	"github.com/yourusername/stock-sentry/internal/models"
)

// Input is the context handed to the scorer. The score logic lives in
// the remote model; this side only assembles the prompt.
type Input struct {
	Ticker     string
	StockName  string
	Headlines  []string
	Price      float64
	RSI        *float64
	MACDStatus string
	IsBreakout bool
	Chips      models.ChipSummary
}

// Scorer produces a sentiment score in [-1, 1] plus a free-text
// comment. Implementations must degrade to a neutral result instead of
// failing the analysis.
type Scorer interface {
	Score(ctx context.Context, in Input) models.SentimentScore
}

// Neutral is the fallback result when the model cannot be reached or
// its reply cannot be parsed.
func Neutral(reason string) models.SentimentScore {
	return models.SentimentScore{Score: 0, Comment: reason}
}

// HTTPScorer calls an OpenAI-style chat completion endpoint.
type HTTPScorer struct {
	baseURL string
	apiKey  string
	model   string
	client  *marketdata.RateLimitedHTTPClient
	logger  *logrus.Logger
}

// NewHTTPScorer creates a scorer against the given completion API.
func NewHTTPScorer(baseURL, apiKey, model string, client *marketdata.RateLimitedHTTPClient, logger *logrus.Logger) *HTTPScorer {
	if logger == nil {
		logger = logrus.New()
	}
	return &HTTPScorer{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  client,
		logger:  logger,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Score sends the prompt and parses the reply. Failures return a
// neutral score so the surrounding analysis can still complete.
func (s *HTTPScorer) Score(ctx context.Context, in Input) models.SentimentScore {
	reply, err := s.complete(ctx, BuildPrompt(in))
	if err != nil {
		s.logger.WithError(err).WithField("ticker", in.Ticker).Warn("Sentiment call failed")
		return Neutral("sentiment service unavailable")
	}
	return ParseReply(reply)
}

func (s *HTTPScorer) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion returned status %d", resp.StatusCode)
	}

	var payload chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("bad completion payload: %w", err)
	}
	if len(payload.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return payload.Choices[0].Message.Content, nil
}

// BuildPrompt assembles the analysis prompt from the technical, flow
// and news context.
func BuildPrompt(in Input) string {
	var b strings.Builder

	b.WriteString("You are a strict equity analyst. Score the outlook for ")
	if in.StockName != "" {
		fmt.Fprintf(&b, "%s (%s)", in.StockName, in.Ticker)
	} else {
		b.WriteString(in.Ticker)
	}
	b.WriteString(" on a scale from -1 (strongly bearish) to 1 (strongly bullish).\n\n")

	b.WriteString("Scoring guide:\n")
	b.WriteString("  good news + strong technicals + institutional buying -> 0.8\n")
	b.WriteString("  bad news + broken trend + foreign selling -> -0.8\n")
	b.WriteString("  sideways, no volume -> 0.0\n")
	b.WriteString("  good news but no rally, messy flows -> -0.4\n\n")

	rsiText := "n/a"
	if in.RSI != nil {
		rsiText = strconv.FormatFloat(*in.RSI, 'f', 1, 64)
	}
	breakout := "no"
	if in.IsBreakout {
		breakout = "yes"
	}
	fmt.Fprintf(&b, "Technical: price %.2f, RSI %s, MACD %s, volume breakout %s\n",
		in.Price, rsiText, in.MACDStatus, breakout)
	fmt.Fprintf(&b, "Flows: foreign %.1f, trust %.1f, dealer %.1f (%s)\n",
		in.Chips.ForeignNet, in.Chips.TrustNet, in.Chips.DealerNet, in.Chips.StatusText)

	b.WriteString("News:\n")
	if len(in.Headlines) == 0 {
		b.WriteString("  no recent headlines\n")
	} else {
		for _, h := range in.Headlines {
			fmt.Fprintf(&b, "  - %s\n", h)
		}
	}

	b.WriteString("\nReply in exactly this format, no markdown, no JSON:\n")
	b.WriteString("score: <number>\n")
	b.WriteString("comment: <analysis in 100 words or less>\n")
	return b.String()
}

var (
	scoreRe   = regexp.MustCompile(`(?i)score\s*[:：]\s*([-+]?\d*\.?\d+)`)
	commentRe = regexp.MustCompile(`(?is)comment\s*[:：]\s*(.*)`)
)

// ParseReply extracts the score and comment lines from the raw model
// reply. A missing score defaults to 0; a missing comment falls back
// to the full reply text so the user still sees something.
func ParseReply(text string) models.SentimentScore {
	text = strings.TrimSpace(text)
	result := models.SentimentScore{Score: 0, Comment: "no comment provided"}

	if m := scoreRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			result.Score = clampScore(v)
		}
	}
	if m := commentRe.FindStringSubmatch(text); m != nil {
		result.Comment = strings.TrimSpace(m[1])
	} else if len(text) > 5 {
		result.Comment = text
	}
	return result
}

func clampScore(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
