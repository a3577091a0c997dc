package repository

import (
	"algotradex/config"
	"algotradex/pkg/logger"

	"gorm.io/gorm"
)

// Repository bundles every data-access dependency the services need.
type Repository struct {
	StockRepo        StockRepository
	OHLCVRepo        OHLCVRepository
	StrategyRepo     StrategyRepository
	BacktestRepo     BacktestRepository
	YahooFinanceRepo YahooFinanceRepository
}

func NewRepository(cfg *config.Config, db *gorm.DB, log *logger.Logger) *Repository {
	return &Repository{
		StockRepo:        NewStockRepository(db),
		OHLCVRepo:        NewOHLCVRepository(db),
		StrategyRepo:     NewStrategyRepository(db),
		BacktestRepo:     NewBacktestRepository(db),
		YahooFinanceRepo: NewYahooFinanceRepository(cfg, log),
	}
}
