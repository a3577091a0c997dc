// Package engine is the backtesting core: it turns a daily OHLCV series and
// a strategy configuration into signals, a simulated portfolio trajectory and
// aggregate performance statistics. It is a pure computation with no I/O and
// no shared state, so independent runs can be dispatched concurrently by the
// calling layer without locking.
package engine

import "fmt"

// Result is the only artifact handed back to the caller: the full equity
// curve (one point per input bar), the trade ledger, and the summary metrics.
type Result struct {
	EquityCurve []EquityPoint
	Trades      []Trade
	Metrics     Metrics
}

// Engine runs backtests with a fixed symmetric transaction cost rate
// (brokerage plus taxes, applied on both entry and exit notional).
type Engine struct {
	costRate float64
}

// New creates an engine. costRate is a decimal fraction, e.g. 0.0005 for
// 0.05% per side.
func New(costRate float64) *Engine {
	return &Engine{costRate: costRate}
}

// Run backtests one strategy over one instrument's daily bars. Identical
// inputs always produce an identical Result.
func (e *Engine) Run(series PriceSeries, cfg StrategyConfig, initialCapital float64) (*Result, error) {
	return e.RunWithBenchmark(series, cfg, initialCapital, nil)
}

// RunWithBenchmark additionally regresses strategy returns against a
// benchmark close series aligned bar-for-bar with the price series, producing
// alpha and beta. A nil or misaligned benchmark leaves alpha/beta undefined.
func (e *Engine) RunWithBenchmark(series PriceSeries, cfg StrategyConfig, initialCapital float64, benchmarkCloses []float64) (*Result, error) {
	if initialCapital <= 0 {
		return nil, fmt.Errorf("%w: initial capital must be positive, got %v", ErrInvalidConfig, initialCapital)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}
	if min := cfg.minBars(); len(series) < min {
		return nil, fmt.Errorf("%w: strategy %s needs at least %d bars, got %d",
			ErrInsufficientData, cfg.Kind, min, len(series))
	}

	intents := generateIntents(series, cfg)
	equity, trades := simulate(series, intents, cfg.Risk, e.costRate, initialCapital)
	metrics := calculateMetrics(equity, trades, benchmarkCloses)

	return &Result{
		EquityCurve: equity,
		Trades:      trades,
		Metrics:     metrics,
	}, nil
}
