package service

import (
	"algotradex/config"
	"algotradex/internal/repository"
	"algotradex/pkg/cache"
	"algotradex/pkg/logger"
)

type Service struct {
	StockService     StockService
	StrategyService  StrategyService
	BacktestService  BacktestService
	SchedulerService SchedulerService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
) *Service {
	stockService := NewStockService(cfg, log, repo.StockRepo, repo.OHLCVRepo, repo.YahooFinanceRepo, inmemoryCache)
	strategyService := NewStrategyService(log, repo.StrategyRepo)
	backtestService := NewBacktestService(cfg, log, repo.StockRepo, repo.OHLCVRepo, repo.StrategyRepo, repo.BacktestRepo)
	schedulerService := NewSchedulerService(cfg, log, stockService)

	return &Service{
		StockService:     stockService,
		StrategyService:  strategyService,
		BacktestService:  backtestService,
		SchedulerService: schedulerService,
	}
}
