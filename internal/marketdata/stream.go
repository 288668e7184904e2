package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// QuoteStream handles a WebSocket connection to the market-data quote
// feed. It delivers intraday quote ticks to registered handlers so a
// live signal check can run against the freshest close instead of the
// previous day's bar.
type QuoteStream struct {
	conn            *websocket.Conn
	apiKey          string
	baseURL         string
	mu              sync.RWMutex
	isConnected     bool
	handlers        []QuoteHandler
	lastMessageTime time.Time
	logger          *logrus.Logger
}

// QuoteHandler is called for each quote tick received from the feed.
type QuoteHandler func(q QuoteTick) error

// QuoteTick is one intraday quote for a ticker.
type QuoteTick struct {
	Ticker string  `json:"ticker"`
	Price  float64 `json:"price"`
	Volume float64 `json:"volume"`
	TS     int64   `json:"ts"`
}

// NewQuoteStream creates a quote stream client.
func NewQuoteStream(baseURL, apiKey string, logger *logrus.Logger) *QuoteStream {
	if logger == nil {
		logger = logrus.New()
	}
	return &QuoteStream{
		apiKey:   apiKey,
		baseURL:  baseURL,
		handlers: make([]QuoteHandler, 0),
		logger:   logger,
	}
}

// Connect establishes the WebSocket connection and starts the read loop.
func (s *QuoteStream) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isConnected {
		return fmt.Errorf("already connected")
	}

	// A bare host gets the default secure endpoint; a full ws:// or
	// wss:// URL is used as given.
	wsURL := s.baseURL
	if !strings.Contains(wsURL, "://") {
		wsURL = fmt.Sprintf("wss://%s/v1/quotes", s.baseURL)
	}

	s.logger.WithField("url", wsURL).Info("Connecting to quote stream")

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to quote stream: %w", err)
	}

	s.conn = conn
	s.isConnected = true
	s.lastMessageTime = time.Now()

	go s.readMessages()

	return nil
}

// Subscribe subscribes the stream to quote ticks for the given tickers.
func (s *QuoteStream) Subscribe(ctx context.Context, tickers []string) error {
	s.mu.RLock()
	if !s.isConnected || s.conn == nil {
		s.mu.RUnlock()
		return fmt.Errorf("not connected to quote stream")
	}
	s.mu.RUnlock()

	subMsg := map[string]interface{}{
		"op":      "subscribe",
		"apikey":  s.apiKey,
		"tickers": tickers,
	}

	s.logger.WithField("tickers", len(tickers)).Info("Subscribing to quotes")
	return s.sendMessage(subMsg)
}

// AddHandler registers a quote handler.
func (s *QuoteStream) AddHandler(handler QuoteHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, handler)
}

func (s *QuoteStream) readMessages() {
	defer s.Close()

	for {
		var raw json.RawMessage
		err := s.conn.ReadJSON(&raw)
		if err != nil {
			s.logger.WithError(err).Warn("Quote stream read error")
			s.mu.Lock()
			s.isConnected = false
			s.mu.Unlock()
			return
		}

		s.mu.Lock()
		s.lastMessageTime = time.Now()
		s.mu.Unlock()

		var tick QuoteTick
		if err := json.Unmarshal(raw, &tick); err != nil || tick.Ticker == "" {
			continue
		}

		s.mu.RLock()
		handlers := s.handlers
		s.mu.RUnlock()

		for _, handler := range handlers {
			if err := handler(tick); err != nil {
				s.logger.WithError(err).Warn("Quote handler error")
			}
		}
	}
}

func (s *QuoteStream) sendMessage(msg interface{}) error {
	s.mu.RLock()
	if !s.isConnected || s.conn == nil {
		s.mu.RUnlock()
		return fmt.Errorf("not connected")
	}
	conn := s.conn
	s.mu.RUnlock()

	return conn.WriteJSON(msg)
}

// IsConnected reports whether the stream is connected.
func (s *QuoteStream) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isConnected
}

// LastMessageTime returns the time of the last received message.
func (s *QuoteStream) LastMessageTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastMessageTime
}

// Close closes the stream connection.
func (s *QuoteStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}

	s.isConnected = false
	return s.conn.Close()
}
