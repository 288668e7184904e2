// Package config provides configuration management for the Stock Sentry service.
package config

import "fmt"

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	MarketData MarketDataConfig `mapstructure:"market_data" validate:"required"`
	Sentiment  SentimentConfig  `mapstructure:"sentiment"`
	Chips      ChipsConfig      `mapstructure:"chips"`
	Strategy   StrategyConfig   `mapstructure:"strategy" validate:"required"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Notifier   NotifierConfig   `mapstructure:"notifier"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host           string `mapstructure:"host" validate:"required"`
	Port           int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name           string `mapstructure:"name" validate:"required"`
	User           string `mapstructure:"user" validate:"required"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"required,gt=0"`
}

// MarketDataConfig represents the daily price-history provider configuration
type MarketDataConfig struct {
	BaseURL          string  `mapstructure:"base_url" validate:"required,url"`
	StreamURL        string  `mapstructure:"stream_url"`
	APIKey           string  `mapstructure:"api_key"`
	TimeoutSeconds   int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RetryAttempts    int     `mapstructure:"retry_attempts" validate:"gte=0"`
	RateLimitPerSec  float64 `mapstructure:"rate_limit_per_sec" validate:"gt=0"`
	HistoryDays      int     `mapstructure:"history_days" validate:"required,gt=0"`
	CSVDirectory     string  `mapstructure:"csv_directory"`
}

// SentimentConfig represents the language-model sentiment collaborator
type SentimentConfig struct {
	URL            string `mapstructure:"url"`
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"omitempty,gt=0"`
}

// ChipsConfig represents the institutional-flow collaborator
type ChipsConfig struct {
	URL            string `mapstructure:"url"`
	APIKey         string `mapstructure:"api_key"`
	LookbackDays   int    `mapstructure:"lookback_days" validate:"omitempty,gt=0"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"omitempty,gt=0"`
}

// StrategyConfig holds the signal and replay thresholds consumed by the
// core pipeline. The core receives these as plain values and never
// reads the environment itself.
type StrategyConfig struct {
	VolMultiplier         float64 `mapstructure:"vol_multiplier" validate:"required,gt=0"`
	BacktestVolMultiplier float64 `mapstructure:"backtest_vol_multiplier" validate:"required,gt=0"`
	BacktestRSILimit      float64 `mapstructure:"backtest_rsi_limit" validate:"required,gt=0,lte=100"`
	StopLossPct           float64 `mapstructure:"stop_loss_pct" validate:"required,gt=0,lt=1"`
	TakeProfitPct         float64 `mapstructure:"take_profit_pct" validate:"required,gt=0,lt=1"`
	HoldingDays           int     `mapstructure:"holding_days" validate:"required,gt=0"`
}

// SchedulerConfig represents the morning-report schedule
type SchedulerConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	CronExpression string `mapstructure:"cron_expression"`
	Timezone       string `mapstructure:"timezone"`
	AdminUserID    string `mapstructure:"admin_user_id"`
}

// MetricsConfig represents the Prometheus endpoint configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// NotifierConfig represents the push-notification channel
type NotifierConfig struct {
	Token string `mapstructure:"token"`
}

// DefaultStrategyConfig returns the published strategy constants.
func DefaultStrategyConfig() StrategyConfig {
	return StrategyConfig{
		VolMultiplier:         1.5,
		BacktestVolMultiplier: 1.25,
		BacktestRSILimit:      82,
		StopLossPct:           0.05,
		TakeProfitPct:         0.10,
		HoldingDays:           5,
	}
}

// GetDatabaseDSN builds the postgres connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User,
		c.Database.Password, c.Database.Name, c.Database.SSLMode,
	)
}
