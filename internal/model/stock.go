package model

import "time"

// Stock is the instrument master table for NSE/BSE stocks.
type Stock struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	Symbol    string `gorm:"uniqueIndex;not null" json:"symbol"`
	Name      string `json:"name"`
	Sector    string `json:"sector"`
	MarketCap int64  `json:"market_cap"`
	IsNifty50 bool   `gorm:"index" json:"is_nifty50"`
	IsActive  bool   `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Stock) TableName() string {
	return "stocks"
}
