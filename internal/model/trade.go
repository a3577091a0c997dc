package model

import "time"

// Trade is one round trip recorded during a backtest.
type Trade struct {
	ID         uint `gorm:"primarykey" json:"id"`
	BacktestID uint `gorm:"not null;index" json:"backtest_id"`
	StockID    uint `gorm:"not null;index" json:"stock_id"`

	EntryDate       time.Time `gorm:"not null" json:"entry_date"`
	EntryPrice      float64   `gorm:"not null" json:"entry_price"`
	ExitDate        time.Time `gorm:"not null" json:"exit_date"`
	ExitPrice       float64   `gorm:"not null" json:"exit_price"`
	Quantity        int64     `gorm:"not null" json:"quantity"`
	TransactionCost float64   `gorm:"not null" json:"transaction_cost"`
	PnL             float64   `gorm:"not null" json:"pnl"`
	ExitReason      string    `gorm:"not null" json:"exit_reason"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Trade) TableName() string {
	return "trades"
}
