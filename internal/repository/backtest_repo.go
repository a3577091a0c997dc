package repository

import (
	"context"

	"algotradex/internal/model"

	"gorm.io/gorm"
)

type BacktestRepository interface {
	SaveWithTrades(ctx context.Context, backtest *model.Backtest, trades []model.Trade) error
	GetByID(ctx context.Context, id uint) (*model.Backtest, error)
	GetTrades(ctx context.Context, backtestID uint) ([]model.Trade, error)
	List(ctx context.Context, param model.GetBacktestParam) ([]model.Backtest, error)
}

type backtestRepository struct {
	db *gorm.DB
}

func NewBacktestRepository(db *gorm.DB) BacktestRepository {
	return &backtestRepository{db: db}
}

// SaveWithTrades persists the run and its ledger atomically.
func (r *backtestRepository) SaveWithTrades(ctx context.Context, backtest *model.Backtest, trades []model.Trade) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(backtest).Error; err != nil {
			return err
		}
		for i := range trades {
			trades[i].BacktestID = backtest.ID
		}
		if len(trades) > 0 {
			if err := tx.CreateInBatches(trades, 500).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *backtestRepository) GetByID(ctx context.Context, id uint) (*model.Backtest, error) {
	var backtest model.Backtest
	if err := r.db.WithContext(ctx).Preload("Strategy").Preload("Stock").First(&backtest, id).Error; err != nil {
		return nil, err
	}
	return &backtest, nil
}

func (r *backtestRepository) GetTrades(ctx context.Context, backtestID uint) ([]model.Trade, error) {
	var trades []model.Trade
	if err := r.db.WithContext(ctx).Where("backtest_id = ?", backtestID).Order("entry_date asc").Find(&trades).Error; err != nil {
		return nil, err
	}
	return trades, nil
}

func (r *backtestRepository) List(ctx context.Context, param model.GetBacktestParam) ([]model.Backtest, error) {
	query := r.db.WithContext(ctx).Model(&model.Backtest{})
	if param.StrategyID != nil {
		query = query.Where("strategy_id = ?", *param.StrategyID)
	}
	if param.StockID != nil {
		query = query.Where("stock_id = ?", *param.StockID)
	}
	if param.Limit > 0 {
		query = query.Limit(param.Limit)
	}

	var backtests []model.Backtest
	if err := query.Order("created_at desc").Find(&backtests).Error; err != nil {
		return nil, err
	}
	return backtests, nil
}
