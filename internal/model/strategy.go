package model

import (
	"time"

	"gorm.io/datatypes"
)

// Strategy is a stored trading strategy configuration. Parameters and risk
// parameters are JSON so each strategy kind can carry its own named fields,
// e.g. {"short_window": 50, "long_window": 200} for ma_crossover.
type Strategy struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Description  string         `json:"description"`
	StrategyType string         `gorm:"not null" json:"strategy_type"`
	Parameters   datatypes.JSON `gorm:"not null" json:"parameters"`
	RiskParams   datatypes.JSON `json:"risk_params"`
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Strategy) TableName() string {
	return "strategies"
}
