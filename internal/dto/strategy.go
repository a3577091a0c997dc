package dto

import "algotradex/internal/engine"

// CreateStrategyRequest creates a stored strategy. Parameters and risk
// params are validated by the engine before any backtest uses them.
type CreateStrategyRequest struct {
	Name         string            `json:"name" validate:"required,max=100"`
	Description  string            `json:"description"`
	StrategyType string            `json:"strategy_type" validate:"required,oneof=ma_crossover rsi_reversion macd_momentum composite"`
	Parameters   engine.Params     `json:"parameters" validate:"required"`
	RiskParams   engine.RiskParams `json:"risk_params" validate:"required"`
}

// UpdateStrategyRequest partially updates a stored strategy.
type UpdateStrategyRequest struct {
	Name        *string            `json:"name" validate:"omitempty,max=100"`
	Description *string            `json:"description"`
	Parameters  *engine.Params     `json:"parameters"`
	RiskParams  *engine.RiskParams `json:"risk_params"`
	IsActive    *bool              `json:"is_active"`
}

// StrategyTemplate is a ready-to-save strategy preset.
type StrategyTemplate struct {
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	StrategyType string            `json:"strategy_type"`
	Parameters   engine.Params     `json:"parameters"`
	RiskParams   engine.RiskParams `json:"risk_params"`
}

// StrategyTemplates returns the pre-configured presets exposed by
// GET /api/v1/strategies/templates.
func StrategyTemplates() []StrategyTemplate {
	return []StrategyTemplate{
		{
			Name:         "Moving Average Crossover",
			Description:  "Long when the short SMA crosses above the long SMA, flat on the reverse crossover",
			StrategyType: string(engine.KindMACrossover),
			Parameters:   engine.Params{ShortWindow: 50, LongWindow: 200},
			RiskParams:   engine.RiskParams{StopLossFraction: 0.05, PositionSizeFraction: 0.95},
		},
		{
			Name:         "RSI Mean Reversion",
			Description:  "Long on oversold recovery through the lower threshold, flat on the overbought exit",
			StrategyType: string(engine.KindRSIReversion),
			Parameters:   engine.Params{RSIPeriod: 14, LowerThreshold: 30, UpperThreshold: 70},
			RiskParams:   engine.RiskParams{StopLossFraction: 0.03, PositionSizeFraction: 0.95},
		},
		{
			Name:         "MACD Momentum",
			Description:  "Long when the MACD line crosses above its signal line, flat on the reverse cross",
			StrategyType: string(engine.KindMACDMomentum),
			Parameters:   engine.Params{FastPeriod: 12, SlowPeriod: 26, SignalPeriod: 9},
			RiskParams:   engine.RiskParams{StopLossFraction: 0.04, PositionSizeFraction: 0.95},
		},
		{
			Name:         "Composite Trend Filter",
			Description:  "Long only when MA crossover, RSI reversion and MACD momentum all agree",
			StrategyType: string(engine.KindComposite),
			Parameters: engine.Params{
				ShortWindow: 50, LongWindow: 200,
				RSIPeriod: 14, LowerThreshold: 30, UpperThreshold: 70,
				FastPeriod: 12, SlowPeriod: 26, SignalPeriod: 9,
			},
			RiskParams: engine.RiskParams{StopLossFraction: 0.05, PositionSizeFraction: 0.95},
		},
	}
}
