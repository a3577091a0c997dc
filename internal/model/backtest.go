package model

import "time"

// Backtest stores one completed run with its performance metrics. Metric
// columns are nullable: NULL means the metric was undefined for that run
// (zero trades, zero variance, missing benchmark), which is different from 0.
type Backtest struct {
	ID         uint `gorm:"primarykey" json:"id"`
	StrategyID uint `gorm:"not null;index" json:"strategy_id"`
	StockID    uint `gorm:"not null;index" json:"stock_id"`

	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`

	InitialCapital float64 `gorm:"not null" json:"initial_capital"`
	FinalCapital   float64 `gorm:"not null" json:"final_capital"`

	TotalReturn      float64  `json:"total_return"`
	AnnualizedReturn float64  `json:"annualized_return"`
	SharpeRatio      *float64 `json:"sharpe_ratio"`
	MaxDrawdown      float64  `json:"max_drawdown"`
	WinRate          *float64 `json:"win_rate"`
	ProfitFactor     *float64 `json:"profit_factor"`
	Alpha            *float64 `json:"alpha"`
	Beta             *float64 `json:"beta"`

	TotalTrades     int `gorm:"not null" json:"total_trades"`
	ExecutionTimeMs int `json:"execution_time_ms"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Strategy Strategy `gorm:"foreignKey:StrategyID" json:"-"`
	Stock    Stock    `gorm:"foreignKey:StockID" json:"-"`
	Trades   []Trade  `gorm:"foreignKey:BacktestID" json:"-"`
}

func (Backtest) TableName() string {
	return "backtests"
}

// GetBacktestParam filters a backtest listing.
type GetBacktestParam struct {
	StrategyID *uint
	StockID    *uint
	Limit      int
}
