package model

import "time"

// OHLCVData is one daily bar of price history. Primary key is (time,
// stock_id); the table is a TimescaleDB hypertable candidate but plain
// Postgres works.
type OHLCVData struct {
	Time          time.Time `gorm:"primaryKey" json:"time"`
	StockID       uint      `gorm:"primaryKey;index:idx_ohlcv_stock_time" json:"stock_id"`
	Open          float64   `gorm:"not null" json:"open"`
	High          float64   `gorm:"not null" json:"high"`
	Low           float64   `gorm:"not null" json:"low"`
	Close         float64   `gorm:"not null" json:"close"`
	Volume        int64     `gorm:"not null" json:"volume"`
	AdjustedClose *float64  `json:"adjusted_close"`

	Stock Stock `gorm:"foreignKey:StockID" json:"-"`
}

func (OHLCVData) TableName() string {
	return "ohlcv_data"
}

// GetOHLCVParam filters a price-history query.
type GetOHLCVParam struct {
	StockID   uint
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
}
