package repository

import (
	"context"

	"algotradex/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OHLCVRepository interface {
	Get(ctx context.Context, param model.GetOHLCVParam) ([]model.OHLCVData, error)
	BulkUpsert(ctx context.Context, bars []model.OHLCVData) error
}

type ohlcvRepository struct {
	db *gorm.DB
}

func NewOHLCVRepository(db *gorm.DB) OHLCVRepository {
	return &ohlcvRepository{db: db}
}

// Get returns bars in chronological order.
func (r *ohlcvRepository) Get(ctx context.Context, param model.GetOHLCVParam) ([]model.OHLCVData, error) {
	query := r.db.WithContext(ctx).Model(&model.OHLCVData{}).Where("stock_id = ?", param.StockID)

	if param.StartDate != nil {
		query = query.Where("time >= ?", *param.StartDate)
	}
	if param.EndDate != nil {
		query = query.Where("time <= ?", *param.EndDate)
	}
	if param.Limit > 0 {
		query = query.Limit(param.Limit)
	}

	var bars []model.OHLCVData
	if err := query.Order("time asc").Find(&bars).Error; err != nil {
		return nil, err
	}
	return bars, nil
}

// BulkUpsert writes bars in batches, replacing duplicates on (time, stock_id)
// so a re-sync never creates duplicate rows.
func (r *ohlcvRepository) BulkUpsert(ctx context.Context, bars []model.OHLCVData) error {
	if len(bars) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "time"}, {Name: "stock_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "volume", "adjusted_close"}),
	}).CreateInBatches(bars, 500).Error
}
