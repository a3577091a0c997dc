package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"algotradex/config"
	"algotradex/internal/dto"
	"algotradex/internal/engine"
	"algotradex/internal/model"
	"algotradex/internal/repository"
	"algotradex/pkg/logger"
)

type BacktestService interface {
	Run(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestResponse, error)
	Get(ctx context.Context, id uint) (*dto.BacktestResponse, error)
	Trades(ctx context.Context, id uint) ([]dto.TradeResponse, error)
	List(ctx context.Context, strategyID, stockID *uint, limit int) ([]model.Backtest, error)
}

type backtestService struct {
	cfg          *config.Config
	log          *logger.Logger
	stockRepo    repository.StockRepository
	ohlcvRepo    repository.OHLCVRepository
	strategyRepo repository.StrategyRepository
	backtestRepo repository.BacktestRepository
}

func NewBacktestService(
	cfg *config.Config,
	log *logger.Logger,
	stockRepo repository.StockRepository,
	ohlcvRepo repository.OHLCVRepository,
	strategyRepo repository.StrategyRepository,
	backtestRepo repository.BacktestRepository,
) BacktestService {
	return &backtestService{
		cfg:          cfg,
		log:          log,
		stockRepo:    stockRepo,
		ohlcvRepo:    ohlcvRepo,
		strategyRepo: strategyRepo,
		backtestRepo: backtestRepo,
	}
}

// Run loads the strategy and price history, executes the engine and persists
// the result with its trade ledger.
func (s *backtestService) Run(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestResponse, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start_date %q", engine.ErrInvalidConfig, req.StartDate)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end_date %q", engine.ErrInvalidConfig, req.EndDate)
	}
	if !startDate.Before(endDate) {
		return nil, fmt.Errorf("%w: start_date %s must be before end_date %s", engine.ErrInvalidConfig, req.StartDate, req.EndDate)
	}

	initialCapital := req.InitialCapital
	if initialCapital == 0 {
		initialCapital = s.cfg.Trading.DefaultInitialCapital
	}

	strategy, err := s.strategyRepo.GetByID(ctx, req.StrategyID)
	if err != nil {
		return nil, err
	}

	strategyCfg, err := strategyConfig(strategy)
	if err != nil {
		return nil, err
	}

	stock, err := s.stockRepo.GetBySymbol(ctx, req.StockSymbol)
	if err != nil {
		return nil, err
	}

	series, err := s.loadSeries(ctx, stock.ID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	benchmarkCloses := s.loadBenchmark(ctx, series)

	started := time.Now()
	eng := engine.New(s.cfg.Trading.CostRate())
	result, err := eng.RunWithBenchmark(series, strategyCfg, initialCapital, benchmarkCloses)
	if err != nil {
		return nil, err
	}
	executionTime := int(time.Since(started).Milliseconds())

	backtest, trades := toModels(result, strategy, stock, startDate, endDate, initialCapital, executionTime)
	if err := s.backtestRepo.SaveWithTrades(ctx, backtest, trades); err != nil {
		s.log.ErrorContext(ctx, "Failed to persist backtest result",
			logger.IntField("strategy_id", int(strategy.ID)),
			logger.StringField("symbol", stock.Symbol),
			logger.ErrorField(err))
		return nil, err
	}

	s.log.InfoContext(ctx, "Backtest completed",
		logger.IntField("backtest_id", int(backtest.ID)),
		logger.StringField("symbol", stock.Symbol),
		logger.IntField("trades", len(trades)),
		logger.IntField("execution_time_ms", executionTime))

	return buildResponse(backtest, strategy, stock, result), nil
}

// Get rebuilds the API response of a stored run from the database.
func (s *backtestService) Get(ctx context.Context, id uint) (*dto.BacktestResponse, error) {
	backtest, err := s.backtestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	trades, err := s.backtestRepo.GetTrades(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &dto.BacktestResponse{
		BacktestID:     backtest.ID,
		StrategyID:     backtest.StrategyID,
		StrategyName:   backtest.Strategy.Name,
		StockSymbol:    backtest.Stock.Symbol,
		StartDate:      backtest.StartDate.Format("2006-01-02"),
		EndDate:        backtest.EndDate.Format("2006-01-02"),
		InitialCapital: backtest.InitialCapital,
		FinalCapital:   backtest.FinalCapital,
		Metrics: dto.MetricsResponse{
			TotalReturn:      backtest.TotalReturn,
			AnnualizedReturn: backtest.AnnualizedReturn,
			SharpeRatio:      backtest.SharpeRatio,
			MaxDrawdown:      backtest.MaxDrawdown,
			WinRate:          backtest.WinRate,
			ProfitFactor:     backtest.ProfitFactor,
			Alpha:            backtest.Alpha,
			Beta:             backtest.Beta,
			NumTrades:        backtest.TotalTrades,
		},
		ExecutionTimeMs: backtest.ExecutionTimeMs,
	}
	for _, t := range trades {
		resp.Trades = append(resp.Trades, dto.TradeResponse{
			EntryDate:       t.EntryDate,
			EntryPrice:      t.EntryPrice,
			ExitDate:        t.ExitDate,
			ExitPrice:       t.ExitPrice,
			Quantity:        t.Quantity,
			TransactionCost: t.TransactionCost,
			PnL:             t.PnL,
			ExitReason:      t.ExitReason,
		})
	}
	return resp, nil
}

// Trades returns a stored run's ledger.
func (s *backtestService) Trades(ctx context.Context, id uint) ([]dto.TradeResponse, error) {
	if _, err := s.backtestRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	trades, err := s.backtestRepo.GetTrades(ctx, id)
	if err != nil {
		return nil, err
	}

	result := make([]dto.TradeResponse, 0, len(trades))
	for _, t := range trades {
		result = append(result, dto.TradeResponse{
			EntryDate:       t.EntryDate,
			EntryPrice:      t.EntryPrice,
			ExitDate:        t.ExitDate,
			ExitPrice:       t.ExitPrice,
			Quantity:        t.Quantity,
			TransactionCost: t.TransactionCost,
			PnL:             t.PnL,
			ExitReason:      t.ExitReason,
		})
	}
	return result, nil
}

func (s *backtestService) List(ctx context.Context, strategyID, stockID *uint, limit int) ([]model.Backtest, error) {
	return s.backtestRepo.List(ctx, model.GetBacktestParam{
		StrategyID: strategyID,
		StockID:    stockID,
		Limit:      limit,
	})
}

func (s *backtestService) loadSeries(ctx context.Context, stockID uint, startDate, endDate time.Time) (engine.PriceSeries, error) {
	bars, err := s.ohlcvRepo.Get(ctx, model.GetOHLCVParam{
		StockID:   stockID,
		StartDate: &startDate,
		EndDate:   &endDate,
	})
	if err != nil {
		return nil, err
	}

	series := make(engine.PriceSeries, 0, len(bars))
	for _, bar := range bars {
		series = append(series, engine.Bar{
			Timestamp: bar.Time,
			Open:      bar.Open,
			High:      bar.High,
			Low:       bar.Low,
			Close:     bar.Close,
			Volume:    bar.Volume,
		})
	}
	return series, nil
}

// loadBenchmark fetches the benchmark index closes for exactly the trading
// days of the price series. Alpha and beta need a bar-for-bar aligned series;
// any gap (index holiday, missing sync) disables the regression rather than
// misaligning it.
func (s *backtestService) loadBenchmark(ctx context.Context, series engine.PriceSeries) []float64 {
	if len(series) == 0 || s.cfg.Trading.BenchmarkSymbol == "" {
		return nil
	}

	benchmark, err := s.stockRepo.GetBySymbol(ctx, s.cfg.Trading.BenchmarkSymbol)
	if err != nil {
		s.log.WarnContext(ctx, "Benchmark not synced, alpha/beta unavailable",
			logger.StringField("benchmark", s.cfg.Trading.BenchmarkSymbol))
		return nil
	}

	startDate := series[0].Timestamp
	endDate := series[len(series)-1].Timestamp
	bars, err := s.ohlcvRepo.Get(ctx, model.GetOHLCVParam{
		StockID:   benchmark.ID,
		StartDate: &startDate,
		EndDate:   &endDate,
	})
	if err != nil {
		s.log.WarnContext(ctx, "Failed to load benchmark bars", logger.ErrorField(err))
		return nil
	}

	closeByDay := make(map[time.Time]float64, len(bars))
	for _, bar := range bars {
		closeByDay[bar.Time] = bar.Close
	}

	closes := make([]float64, 0, len(series))
	for _, bar := range series {
		c, ok := closeByDay[bar.Timestamp]
		if !ok {
			return nil
		}
		closes = append(closes, c)
	}
	return closes
}

func strategyConfig(strategy *model.Strategy) (engine.StrategyConfig, error) {
	var params engine.Params
	if err := json.Unmarshal(strategy.Parameters, &params); err != nil {
		return engine.StrategyConfig{}, fmt.Errorf("stored parameters are corrupt for strategy %d: %w", strategy.ID, err)
	}
	var risk engine.RiskParams
	if err := json.Unmarshal(strategy.RiskParams, &risk); err != nil {
		return engine.StrategyConfig{}, fmt.Errorf("stored risk params are corrupt for strategy %d: %w", strategy.ID, err)
	}
	return engine.StrategyConfig{
		Kind:   engine.StrategyKind(strategy.StrategyType),
		Params: params,
		Risk:   risk,
	}, nil
}

func toModels(result *engine.Result, strategy *model.Strategy, stock *model.Stock,
	startDate, endDate time.Time, initialCapital float64, executionTimeMs int) (*model.Backtest, []model.Trade) {

	finalCapital := initialCapital
	if n := len(result.EquityCurve); n > 0 {
		finalCapital = result.EquityCurve[n-1].Equity
	}

	backtest := &model.Backtest{
		StrategyID:       strategy.ID,
		StockID:          stock.ID,
		StartDate:        startDate,
		EndDate:          endDate,
		InitialCapital:   initialCapital,
		FinalCapital:     finalCapital,
		TotalReturn:      result.Metrics.TotalReturn,
		AnnualizedReturn: result.Metrics.AnnualizedReturn,
		SharpeRatio:      dto.FloatPtr(result.Metrics.SharpeRatio),
		MaxDrawdown:      result.Metrics.MaxDrawdown,
		WinRate:          dto.FloatPtr(result.Metrics.WinRate),
		ProfitFactor:     dto.FloatPtr(result.Metrics.ProfitFactor),
		Alpha:            dto.FloatPtr(result.Metrics.Alpha),
		Beta:             dto.FloatPtr(result.Metrics.Beta),
		TotalTrades:      result.Metrics.NumTrades,
		ExecutionTimeMs:  executionTimeMs,
	}

	trades := make([]model.Trade, 0, len(result.Trades))
	for _, t := range result.Trades {
		trades = append(trades, model.Trade{
			StockID:         stock.ID,
			EntryDate:       t.EntryDate,
			EntryPrice:      t.EntryPrice,
			ExitDate:        t.ExitDate,
			ExitPrice:       t.ExitPrice,
			Quantity:        t.Shares,
			TransactionCost: t.TransactionCost,
			PnL:             t.PnL,
			ExitReason:      string(t.ExitReason),
		})
	}

	return backtest, trades
}

func buildResponse(backtest *model.Backtest, strategy *model.Strategy, stock *model.Stock, result *engine.Result) *dto.BacktestResponse {
	resp := &dto.BacktestResponse{
		BacktestID:     backtest.ID,
		StrategyID:     strategy.ID,
		StrategyName:   strategy.Name,
		StockSymbol:    stock.Symbol,
		StartDate:      backtest.StartDate.Format("2006-01-02"),
		EndDate:        backtest.EndDate.Format("2006-01-02"),
		InitialCapital: backtest.InitialCapital,
		FinalCapital:   backtest.FinalCapital,
		Metrics: dto.MetricsResponse{
			TotalReturn:      backtest.TotalReturn,
			AnnualizedReturn: backtest.AnnualizedReturn,
			SharpeRatio:      backtest.SharpeRatio,
			MaxDrawdown:      backtest.MaxDrawdown,
			WinRate:          backtest.WinRate,
			ProfitFactor:     backtest.ProfitFactor,
			Alpha:            backtest.Alpha,
			Beta:             backtest.Beta,
			NumTrades:        backtest.TotalTrades,
		},
		ExecutionTimeMs: backtest.ExecutionTimeMs,
	}

	for _, t := range result.Trades {
		resp.Trades = append(resp.Trades, dto.TradeResponse{
			EntryDate:       t.EntryDate,
			EntryPrice:      t.EntryPrice,
			ExitDate:        t.ExitDate,
			ExitPrice:       t.ExitPrice,
			Quantity:        t.Shares,
			TransactionCost: t.TransactionCost,
			PnL:             t.PnL,
			ExitReason:      string(t.ExitReason),
		})
	}

	peak := backtest.InitialCapital
	for _, p := range result.EquityCurve {
		if p.Equity > peak {
			peak = p.Equity
		}
		resp.EquityCurve = append(resp.EquityCurve, dto.EquityCurvePoint{
			Date:     p.Date,
			Equity:   p.Equity,
			Drawdown: p.Equity/peak - 1,
		})
	}

	return resp
}
