package repository

import (
	"context"

	"algotradex/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StockRepository interface {
	GetBySymbol(ctx context.Context, symbol string) (*model.Stock, error)
	List(ctx context.Context, nifty50Only bool, limit, offset int) ([]model.Stock, error)
	Upsert(ctx context.Context, stock *model.Stock) error
}

type stockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) GetBySymbol(ctx context.Context, symbol string) (*model.Stock, error) {
	var stock model.Stock
	if err := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&stock).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

func (r *stockRepository) List(ctx context.Context, nifty50Only bool, limit, offset int) ([]model.Stock, error) {
	query := r.db.WithContext(ctx).Model(&model.Stock{}).Where("is_active = ?", true)
	if nifty50Only {
		query = query.Where("is_nifty50 = ?", true)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var stocks []model.Stock
	if err := query.Offset(offset).Order("symbol asc").Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

func (r *stockRepository) Upsert(ctx context.Context, stock *model.Stock) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "sector", "market_cap", "is_nifty50", "is_active", "updated_at"}),
	}).Create(stock).Error
}
