package backtest

import "fmt"

// Config holds the replay parameters for the dual-MA dual-slope
// strategy. The service layer builds it from application configuration;
// the engine never reads configuration itself.
type Config struct {
	VolMultiplier float64
	RSILimit      float64
	StopLossPct   float64
	TakeProfitPct float64
	HoldingDays   int
}

// DefaultConfig returns the published strategy parameters.
func DefaultConfig() Config {
	return Config{
		VolMultiplier: 1.25,
		RSILimit:      82,
		StopLossPct:   0.05,
		TakeProfitPct: 0.10,
		HoldingDays:   5,
	}
}

// Validate validates replay parameters.
func (c Config) Validate() error {
	if c.VolMultiplier <= 0 {
		return fmt.Errorf("volume multiplier must be positive")
	}
	if c.RSILimit <= 0 || c.RSILimit > 100 {
		return fmt.Errorf("rsi limit must be in (0, 100]")
	}
	if c.StopLossPct <= 0 || c.StopLossPct >= 1 {
		return fmt.Errorf("stop loss must be in (0, 1)")
	}
	if c.TakeProfitPct <= 0 || c.TakeProfitPct >= 1 {
		return fmt.Errorf("take profit must be in (0, 1)")
	}
	if c.HoldingDays <= 0 {
		return fmt.Errorf("holding days must be positive")
	}
	return nil
}
