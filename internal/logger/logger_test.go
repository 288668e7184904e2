package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"not-a-level", logrus.InfoLevel},
		{"", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log := NewLogger(tt.level)
			require.NotNil(t, log)
			assert.Equal(t, tt.expected, log.GetLevel())
		})
	}
}

func TestSignalLoggerAnalysis(t *testing.T) {
	log, buf := setupTestLogger()
	sigLog := NewSignalLogger(log)

	sigLog.LogAnalysis("2330.TW", "strong_buy", true, 4, 812.5)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "2330.TW", logEntry["ticker"])
	assert.Equal(t, "strong_buy", logEntry["advice"])
	assert.Equal(t, true, logEntry["breakout"])
	assert.Equal(t, "signal", logEntry["component"])
}

func TestSignalLoggerBuySignal(t *testing.T) {
	log, buf := setupTestLogger()
	sigLog := NewSignalLogger(log)

	sigLog.LogBuySignal("2603.TW", 109.0, "trend confirmed, volume surge")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "buy_signal", logEntry["event_type"])
	assert.Equal(t, 109.0, logEntry["price"])
}

func TestSignalLoggerMorningReport(t *testing.T) {
	log, buf := setupTestLogger()
	sigLog := NewSignalLogger(log)

	sigLog.LogMorningReport(7, 1, 64250)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, float64(7), logEntry["analyzed"])
	assert.Equal(t, float64(1), logEntry["failed"])
}

func TestSignalLoggerJSONFormat(t *testing.T) {
	log, buf := setupTestLogger()
	sigLog := NewSignalLogger(log)

	sigLog.LogAnalysis("0050.TW", "hold", false, 0, 120)

	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	assert.NoError(t, err)
	assert.NotEmpty(t, logEntry)
}
