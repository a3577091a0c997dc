package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"algotradex/config"
	"algotradex/internal/dto"
	"algotradex/internal/indicator"
	"algotradex/internal/model"
	"algotradex/internal/repository"
	"algotradex/pkg/cache"
	"algotradex/pkg/common"
	"algotradex/pkg/logger"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type StockService interface {
	SyncHistorical(ctx context.Context, symbol string, years int) (int, error)
	SyncUniverse(ctx context.Context, years int) (*dto.SyncResponse, error)
	ListStocks(ctx context.Context, nifty50Only bool, limit, offset int) ([]model.Stock, error)
	GetStock(ctx context.Context, symbol string) (*model.Stock, error)
	GetOHLCV(ctx context.Context, symbol string, startDate, endDate *time.Time, limit int) ([]dto.OHLCVResponse, error)
	GetIndicators(ctx context.Context, symbol string, startDate, endDate *time.Time) (*dto.IndicatorsResponse, error)
}

type stockService struct {
	cfg              *config.Config
	log              *logger.Logger
	stockRepo        repository.StockRepository
	ohlcvRepo        repository.OHLCVRepository
	yahooFinanceRepo repository.YahooFinanceRepository
	inmemoryCache    cache.Cache
}

func NewStockService(
	cfg *config.Config,
	log *logger.Logger,
	stockRepo repository.StockRepository,
	ohlcvRepo repository.OHLCVRepository,
	yahooFinanceRepo repository.YahooFinanceRepository,
	inmemoryCache cache.Cache,
) StockService {
	return &stockService{
		cfg:              cfg,
		log:              log,
		stockRepo:        stockRepo,
		ohlcvRepo:        ohlcvRepo,
		yahooFinanceRepo: yahooFinanceRepo,
		inmemoryCache:    inmemoryCache,
	}
}

// SyncHistorical downloads daily bars for one symbol and upserts them. The
// stock row is created on first sync. Returns the number of bars stored.
func (s *stockService) SyncHistorical(ctx context.Context, symbol string, years int) (int, error) {
	if years <= 0 {
		years = s.cfg.Sync.Years
	}
	endDate := time.Now()
	startDate := endDate.AddDate(-years, 0, 0)

	data, err := s.yahooFinanceRepo.Get(ctx, dto.GetStockDataParam{
		Symbol:    symbol,
		StartDate: startDate,
		EndDate:   endDate,
		Interval:  common.INTERVAL_DAILY,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to download historical data",
			logger.StringField("symbol", symbol),
			logger.ErrorField(err))
		return 0, err
	}

	stock, err := s.stockRepo.GetBySymbol(ctx, symbol)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stock = &model.Stock{
			Symbol:    symbol,
			Name:      symbol,
			IsNifty50: isNifty50(symbol),
			IsActive:  true,
		}
		if err := s.stockRepo.Upsert(ctx, stock); err != nil {
			return 0, fmt.Errorf("failed to create stock %s: %w", symbol, err)
		}
	} else if err != nil {
		return 0, err
	}

	bars := make([]model.OHLCVData, 0, len(data.OHLCV))
	for _, bar := range data.OHLCV {
		bars = append(bars, model.OHLCVData{
			Time:    time.Unix(bar.Timestamp, 0).UTC().Truncate(24 * time.Hour),
			StockID: stock.ID,
			Open:    bar.Open,
			High:    bar.High,
			Low:     bar.Low,
			Close:   bar.Close,
			Volume:  bar.Volume,
		})
	}

	if err := s.ohlcvRepo.BulkUpsert(ctx, bars); err != nil {
		return 0, fmt.Errorf("failed to store bars for %s: %w", symbol, err)
	}

	// Stale cached ranges for this symbol would otherwise survive the sync
	s.inmemoryCache.Flush()

	s.log.InfoContext(ctx, "Synced historical data",
		logger.StringField("symbol", symbol),
		logger.IntField("bars", len(bars)))

	return len(bars), nil
}

// SyncUniverse syncs every Nifty 50 symbol plus the configured benchmark,
// bounded by sync.max_workers concurrent downloads. A failed symbol is
// counted and logged but does not abort the rest.
func (s *stockService) SyncUniverse(ctx context.Context, years int) (*dto.SyncResponse, error) {
	symbols := append(common.Nifty50Symbols(), s.cfg.Trading.BenchmarkSymbol)

	var barsSaved, failed int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Sync.MaxWorkers)

	for _, symbol := range symbols {
		symbol := symbol
		g.Go(func() error {
			saved, err := s.SyncHistorical(gctx, symbol, years)
			if err != nil {
				atomic.AddInt64(&failed, 1)
				s.log.WarnContext(gctx, "Symbol sync failed, continuing",
					logger.StringField("symbol", symbol),
					logger.ErrorField(err))
				return nil
			}
			atomic.AddInt64(&barsSaved, int64(saved))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.SyncResponse{
		Symbols:   len(symbols),
		BarsSaved: int(barsSaved),
		Failed:    int(failed),
	}, nil
}

func (s *stockService) ListStocks(ctx context.Context, nifty50Only bool, limit, offset int) ([]model.Stock, error) {
	return s.stockRepo.List(ctx, nifty50Only, limit, offset)
}

func (s *stockService) GetStock(ctx context.Context, symbol string) (*model.Stock, error) {
	return s.stockRepo.GetBySymbol(ctx, symbol)
}

// GetOHLCV serves a symbol's bars, caching each requested range.
func (s *stockService) GetOHLCV(ctx context.Context, symbol string, startDate, endDate *time.Time, limit int) ([]dto.OHLCVResponse, error) {
	cacheKey := fmt.Sprintf(common.KEY_STOCK_DATA, symbol, formatDate(startDate), formatDate(endDate))
	if cached, ok := s.inmemoryCache.Get(cacheKey); ok {
		if bars, ok := cached.([]dto.OHLCVResponse); ok {
			return bars, nil
		}
	}

	stock, err := s.stockRepo.GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}

	data, err := s.ohlcvRepo.Get(ctx, model.GetOHLCVParam{
		StockID:   stock.ID,
		StartDate: startDate,
		EndDate:   endDate,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}

	bars := make([]dto.OHLCVResponse, 0, len(data))
	for _, d := range data {
		bars = append(bars, dto.OHLCVResponse{
			Time:   d.Time,
			Open:   d.Open,
			High:   d.High,
			Low:    d.Low,
			Close:  d.Close,
			Volume: d.Volume,
		})
	}

	s.inmemoryCache.Set(cacheKey, bars, s.cfg.Cache.DefaultExpiration)
	return bars, nil
}

// GetIndicators computes the standard indicator set over the symbol's daily
// bars. Period choices follow the usual charting defaults.
func (s *stockService) GetIndicators(ctx context.Context, symbol string, startDate, endDate *time.Time) (*dto.IndicatorsResponse, error) {
	stock, err := s.stockRepo.GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}

	data, err := s.ohlcvRepo.Get(ctx, model.GetOHLCVParam{
		StockID:   stock.ID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return nil, err
	}

	n := len(data)
	dates := make([]time.Time, n)
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	volume := make([]float64, n)
	for i, d := range data {
		dates[i] = d.Time
		highs[i] = d.High
		lows[i] = d.Low
		closes[i] = d.Close
		volume[i] = float64(d.Volume)
	}

	macd, macdSignal, macdHist := indicator.MACD(closes, 12, 26, 9)
	bbUpper, bbMiddle, bbLower := indicator.BollingerBands(closes, 20, 2)
	stochK, stochD := indicator.Stochastic(highs, lows, closes, 14, 3)

	return &dto.IndicatorsResponse{
		Symbol:          symbol,
		Dates:           dates,
		SMA20:           dto.ToIndicatorSeries(indicator.SMA(closes, 20)),
		SMA50:           dto.ToIndicatorSeries(indicator.SMA(closes, 50)),
		EMA20:           dto.ToIndicatorSeries(indicator.EMA(closes, 20)),
		RSI14:           dto.ToIndicatorSeries(indicator.RSI(closes, 14)),
		MACD:            dto.ToIndicatorSeries(macd),
		MACDSignal:      dto.ToIndicatorSeries(macdSignal),
		MACDHist:        dto.ToIndicatorSeries(macdHist),
		BollingerUpper:  dto.ToIndicatorSeries(bbUpper),
		BollingerMiddle: dto.ToIndicatorSeries(bbMiddle),
		BollingerLower:  dto.ToIndicatorSeries(bbLower),
		ATR14:           dto.ToIndicatorSeries(indicator.ATR(highs, lows, closes, 14)),
		StochasticK:     dto.ToIndicatorSeries(stochK),
		StochasticD:     dto.ToIndicatorSeries(stochD),
		VWAP:            dto.ToIndicatorSeries(indicator.VWAP(highs, lows, closes, volume)),
	}, nil
}

func isNifty50(symbol string) bool {
	for _, s := range common.Nifty50Symbols() {
		if s == symbol {
			return true
		}
	}
	return false
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
