// Package logger provides signal-flow logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// SignalLogger provides dedicated logging for the analysis pipeline.
type SignalLogger struct {
	*logrus.Entry
}

// NewSignalLogger creates a new signal logger.
func NewSignalLogger(baseLogger *logrus.Logger) *SignalLogger {
	return &SignalLogger{
		Entry: baseLogger.WithField("component", "signal"),
	}
}

// LogAnalysis logs a completed ticker analysis.
func (sl *SignalLogger) LogAnalysis(ticker, advice string, isBreakout bool, trades int, durationMs float64) {
	sl.WithFields(logrus.Fields{
		"ticker":      ticker,
		"advice":      advice,
		"breakout":    isBreakout,
		"trades":      trades,
		"duration_ms": durationMs,
	}).Info("Ticker analysis completed")
}

// LogBuySignal logs a live buy signal with the checks that produced it.
func (sl *SignalLogger) LogBuySignal(ticker string, price float64, reason string) {
	sl.WithFields(logrus.Fields{
		"ticker":     ticker,
		"price":      price,
		"reason":     reason,
		"event_type": "buy_signal",
	}).Info("Buy signal emitted")
}

// LogMorningReport logs the outcome of a scheduled watchlist sweep.
func (sl *SignalLogger) LogMorningReport(analyzed, failed int, durationMs float64) {
	sl.WithFields(logrus.Fields{
		"analyzed":    analyzed,
		"failed":      failed,
		"duration_ms": durationMs,
	}).Info("Morning report sent")
}

// LogNotification logs a delivered notification.
func (sl *SignalLogger) LogNotification(recipient string, chars int) {
	sl.WithFields(logrus.Fields{
		"recipient": recipient,
		"chars":     chars,
	}).Debug("Notification delivered")
}
