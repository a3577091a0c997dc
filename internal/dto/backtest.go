package dto

import "time"

// BacktestRequest is the payload of POST /api/v1/backtest/run. Dates use the
// YYYY-MM-DD format. InitialCapital falls back to the configured default when
// omitted.
type BacktestRequest struct {
	StrategyID     uint    `json:"strategy_id" validate:"required"`
	StockSymbol    string  `json:"stock_symbol" validate:"required"`
	StartDate      string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate        string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	InitialCapital float64 `json:"initial_capital" validate:"omitempty,gt=0"`
}

// MetricsResponse reports a run's statistics. Nullable fields are null when
// the metric is undefined for the run, never 0.
type MetricsResponse struct {
	TotalReturn      float64  `json:"total_return"`
	AnnualizedReturn float64  `json:"annualized_return"`
	SharpeRatio      *float64 `json:"sharpe_ratio"`
	MaxDrawdown      float64  `json:"max_drawdown"`
	WinRate          *float64 `json:"win_rate"`
	ProfitFactor     *float64 `json:"profit_factor"`
	Alpha            *float64 `json:"alpha"`
	Beta             *float64 `json:"beta"`
	NumTrades        int      `json:"num_trades"`
}

// TradeResponse is one completed round trip.
type TradeResponse struct {
	EntryDate       time.Time `json:"entry_date"`
	EntryPrice      float64   `json:"entry_price"`
	ExitDate        time.Time `json:"exit_date"`
	ExitPrice       float64   `json:"exit_price"`
	Quantity        int64     `json:"quantity"`
	TransactionCost float64   `json:"transaction_cost"`
	PnL             float64   `json:"pnl"`
	ExitReason      string    `json:"exit_reason"`
}

// EquityCurvePoint is one day's portfolio value and drawdown from peak.
type EquityCurvePoint struct {
	Date     time.Time `json:"date"`
	Equity   float64   `json:"equity"`
	Drawdown float64   `json:"drawdown"`
}

// BacktestResponse is the full result of a run.
type BacktestResponse struct {
	BacktestID      uint               `json:"backtest_id"`
	StrategyID      uint               `json:"strategy_id"`
	StrategyName    string             `json:"strategy_name"`
	StockSymbol     string             `json:"stock_symbol"`
	StartDate       string             `json:"start_date"`
	EndDate         string             `json:"end_date"`
	InitialCapital  float64            `json:"initial_capital"`
	FinalCapital    float64            `json:"final_capital"`
	Metrics         MetricsResponse    `json:"metrics"`
	Trades          []TradeResponse    `json:"trades"`
	EquityCurve     []EquityCurvePoint `json:"equity_curve"`
	ExecutionTimeMs int                `json:"execution_time_ms"`
}
