// Package config provides configuration management for the Stock Sentry service.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment
// variables. ${VAR} placeholders in the YAML file are expanded before
// parsing.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	v.SetEnvPrefix("STOCK_SENTRY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults fills the optional sections so a minimal config file
// still yields a runnable service.
func setDefaults(v *viper.Viper) {
	defaults := DefaultStrategyConfig()
	v.SetDefault("strategy.vol_multiplier", defaults.VolMultiplier)
	v.SetDefault("strategy.backtest_vol_multiplier", defaults.BacktestVolMultiplier)
	v.SetDefault("strategy.backtest_rsi_limit", defaults.BacktestRSILimit)
	v.SetDefault("strategy.stop_loss_pct", defaults.StopLossPct)
	v.SetDefault("strategy.take_profit_pct", defaults.TakeProfitPct)
	v.SetDefault("strategy.holding_days", defaults.HoldingDays)

	v.SetDefault("market_data.timeout_seconds", 30)
	v.SetDefault("market_data.retry_attempts", 3)
	v.SetDefault("market_data.rate_limit_per_sec", 5.0)
	v.SetDefault("market_data.history_days", 365)

	v.SetDefault("scheduler.cron_expression", "0 9 * * *")
	v.SetDefault("scheduler.timezone", "Asia/Taipei")

	v.SetDefault("metrics.address", ":9090")
	v.SetDefault("chips.lookback_days", 30)
}
