package engine

import "fmt"

// StrategyKind is the closed set of supported strategy families. Dispatch is
// over this enum rather than open-ended interfaces so tests can cover the
// whole variant set exhaustively.
type StrategyKind string

const (
	KindMACrossover  StrategyKind = "ma_crossover"
	KindRSIReversion StrategyKind = "rsi_reversion"
	KindMACDMomentum StrategyKind = "macd_momentum"
	KindComposite    StrategyKind = "composite"
)

// StrategyKinds lists every supported kind.
func StrategyKinds() []StrategyKind {
	return []StrategyKind{KindMACrossover, KindRSIReversion, KindMACDMomentum, KindComposite}
}

// Params holds the named numeric parameters of a strategy. Which fields are
// read depends on the strategy kind; the composite strategy reads all of them.
type Params struct {
	ShortWindow    int     `json:"short_window,omitempty"`
	LongWindow     int     `json:"long_window,omitempty"`
	RSIPeriod      int     `json:"rsi_period,omitempty"`
	LowerThreshold float64 `json:"lower_threshold,omitempty"`
	UpperThreshold float64 `json:"upper_threshold,omitempty"`
	FastPeriod     int     `json:"fast_period,omitempty"`
	SlowPeriod     int     `json:"slow_period,omitempty"`
	SignalPeriod   int     `json:"signal_period,omitempty"`
}

// RiskParams constrains position sizing and loss per trade.
type RiskParams struct {
	StopLossFraction     float64 `json:"stop_loss_fraction"`
	PositionSizeFraction float64 `json:"position_size_fraction"`
}

// StrategyConfig fully describes one backtestable strategy.
type StrategyConfig struct {
	Kind   StrategyKind `json:"strategy_kind"`
	Params Params       `json:"parameters"`
	Risk   RiskParams   `json:"risk_params"`
}

// Validate enforces the per-kind parameter constraints. Violations are
// surfaced before simulation starts, never silently clamped.
func (c StrategyConfig) Validate() error {
	switch c.Kind {
	case KindMACrossover:
		if err := c.validateMA(); err != nil {
			return err
		}
	case KindRSIReversion:
		if err := c.validateRSI(); err != nil {
			return err
		}
	case KindMACDMomentum:
		if err := c.validateMACD(); err != nil {
			return err
		}
	case KindComposite:
		if err := c.validateMA(); err != nil {
			return err
		}
		if err := c.validateRSI(); err != nil {
			return err
		}
		if err := c.validateMACD(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown strategy kind %q", ErrInvalidConfig, c.Kind)
	}

	if c.Risk.StopLossFraction <= 0 || c.Risk.StopLossFraction > 1 {
		return fmt.Errorf("%w: stop_loss_fraction must be in (0,1], got %v", ErrInvalidConfig, c.Risk.StopLossFraction)
	}
	if c.Risk.PositionSizeFraction <= 0 || c.Risk.PositionSizeFraction > 1 {
		return fmt.Errorf("%w: position_size_fraction must be in (0,1], got %v", ErrInvalidConfig, c.Risk.PositionSizeFraction)
	}

	return nil
}

func (c StrategyConfig) validateMA() error {
	if c.Params.ShortWindow <= 0 || c.Params.LongWindow <= 0 {
		return fmt.Errorf("%w: MA windows must be positive, got short=%d long=%d", ErrInvalidConfig, c.Params.ShortWindow, c.Params.LongWindow)
	}
	if c.Params.ShortWindow >= c.Params.LongWindow {
		return fmt.Errorf("%w: short_window (%d) must be less than long_window (%d)", ErrInvalidConfig, c.Params.ShortWindow, c.Params.LongWindow)
	}
	return nil
}

func (c StrategyConfig) validateRSI() error {
	if c.Params.RSIPeriod <= 0 {
		return fmt.Errorf("%w: rsi_period must be positive, got %d", ErrInvalidConfig, c.Params.RSIPeriod)
	}
	if c.Params.LowerThreshold <= 0 || c.Params.UpperThreshold >= 100 || c.Params.LowerThreshold >= c.Params.UpperThreshold {
		return fmt.Errorf("%w: RSI thresholds must satisfy 0 < lower < upper < 100, got lower=%v upper=%v",
			ErrInvalidConfig, c.Params.LowerThreshold, c.Params.UpperThreshold)
	}
	return nil
}

func (c StrategyConfig) validateMACD() error {
	if c.Params.FastPeriod <= 0 || c.Params.SlowPeriod <= 0 || c.Params.SignalPeriod <= 0 {
		return fmt.Errorf("%w: MACD periods must be positive, got fast=%d slow=%d signal=%d",
			ErrInvalidConfig, c.Params.FastPeriod, c.Params.SlowPeriod, c.Params.SignalPeriod)
	}
	if c.Params.FastPeriod >= c.Params.SlowPeriod {
		return fmt.Errorf("%w: fast_period (%d) must be less than slow_period (%d)", ErrInvalidConfig, c.Params.FastPeriod, c.Params.SlowPeriod)
	}
	return nil
}

// minBars returns the number of bars needed before the strategy can produce
// one defined signal: the indicator warm-up plus one bar so a crossover
// comparison exists.
func (c StrategyConfig) minBars() int {
	switch c.Kind {
	case KindMACrossover:
		return c.Params.LongWindow + 1
	case KindRSIReversion:
		return c.Params.RSIPeriod + 2
	case KindMACDMomentum:
		return c.Params.SlowPeriod + c.Params.SignalPeriod
	case KindComposite:
		bars := c.Params.LongWindow + 1
		if v := c.Params.RSIPeriod + 2; v > bars {
			bars = v
		}
		if v := c.Params.SlowPeriod + c.Params.SignalPeriod; v > bars {
			bars = v
		}
		return bars
	}
	return 0
}
