package repository

import (
	"context"

	"algotradex/internal/model"

	"gorm.io/gorm"
)

type StrategyRepository interface {
	GetByID(ctx context.Context, id uint) (*model.Strategy, error)
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]model.Strategy, error)
	Create(ctx context.Context, strategy *model.Strategy) error
	Update(ctx context.Context, strategy *model.Strategy) error
	Delete(ctx context.Context, id uint) error
}

type strategyRepository struct {
	db *gorm.DB
}

func NewStrategyRepository(db *gorm.DB) StrategyRepository {
	return &strategyRepository{db: db}
}

func (r *strategyRepository) GetByID(ctx context.Context, id uint) (*model.Strategy, error) {
	var strategy model.Strategy
	if err := r.db.WithContext(ctx).First(&strategy, id).Error; err != nil {
		return nil, err
	}
	return &strategy, nil
}

func (r *strategyRepository) List(ctx context.Context, activeOnly bool, limit, offset int) ([]model.Strategy, error) {
	query := r.db.WithContext(ctx).Model(&model.Strategy{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var strategies []model.Strategy
	if err := query.Offset(offset).Order("id asc").Find(&strategies).Error; err != nil {
		return nil, err
	}
	return strategies, nil
}

func (r *strategyRepository) Create(ctx context.Context, strategy *model.Strategy) error {
	return r.db.WithContext(ctx).Create(strategy).Error
}

func (r *strategyRepository) Update(ctx context.Context, strategy *model.Strategy) error {
	return r.db.WithContext(ctx).Save(strategy).Error
}

func (r *strategyRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Strategy{}, id).Error
}
