package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulate_PinnedScenario(t *testing.T) {
	// Hand-computed round trip: the SMA(2)/SMA(4) cross at index 7 buys at
	// bar 8's open (103) and the open position is force-closed at the final
	// close (110).
	closes := []float64{100, 102, 104, 101, 98, 95, 99, 103, 107, 110}
	series := seriesFromCloses(closes)
	cfg := StrategyConfig{
		Kind:   KindMACrossover,
		Params: Params{ShortWindow: 2, LongWindow: 4},
		Risk:   RiskParams{StopLossFraction: 0.05, PositionSizeFraction: 1.0},
	}

	intents := generateIntents(series, cfg)
	equity, trades := simulate(series, intents, cfg.Risk, 0.0005, 10000)

	require.Len(t, trades, 1)
	trade := trades[0]
	assert.Equal(t, series[8].Timestamp, trade.EntryDate)
	assert.Equal(t, series[9].Timestamp, trade.ExitDate)
	assert.InDelta(t, 103.0, trade.EntryPrice, 1e-9)
	assert.InDelta(t, 110.0, trade.ExitPrice, 1e-9)
	assert.Equal(t, int64(97), trade.Shares)
	assert.InDelta(t, 10.3305, trade.TransactionCost, 1e-9)
	assert.InDelta(t, 668.6695, trade.PnL, 1e-9)
	assert.Equal(t, ExitEndOfPeriod, trade.ExitReason)

	require.Len(t, equity, len(series))
	// Flat until the entry bar, so equity stays at the initial capital.
	for i := 0; i < 8; i++ {
		assert.InDelta(t, 10000.0, equity[i].Equity, 1e-9, "index %d", i)
	}
	assert.InDelta(t, 10383.0045, equity[8].Equity, 1e-9)
	// Final point reflects the post-liquidation cash.
	assert.InDelta(t, 10668.6695, equity[9].Equity, 1e-9)
	assert.InDelta(t, 10000.0+trade.PnL, equity[9].Equity, 1e-9)
}

func TestSimulate_StopLossInclusiveBoundary(t *testing.T) {
	// Entry at 100 with a 5% stop puts the stop price at exactly 95. A close
	// at 95 triggers the stop.
	closes := []float64{100, 100, 95, 95}
	series := seriesFromCloses(closes)
	intents := []Intent{IntentLong, IntentLong, IntentLong, IntentLong}
	risk := RiskParams{StopLossFraction: 0.05, PositionSizeFraction: 1.0}

	_, trades := simulate(series, intents, risk, 0, 10000)

	require.Len(t, trades, 1)
	assert.Equal(t, ExitStopLoss, trades[0].ExitReason)
	assert.InDelta(t, 100.0, trades[0].EntryPrice, 1e-9)
	assert.InDelta(t, 95.0, trades[0].ExitPrice, 1e-9)
	assert.Equal(t, series[2].Timestamp, trades[0].ExitDate)
}

func TestSimulate_StopJustAboveBoundaryHolds(t *testing.T) {
	closes := []float64{100, 100, 95.01, 95.01}
	series := seriesFromCloses(closes)
	intents := []Intent{IntentLong, IntentLong, IntentLong, IntentLong}
	risk := RiskParams{StopLossFraction: 0.05, PositionSizeFraction: 1.0}

	_, trades := simulate(series, intents, risk, 0, 10000)

	// Never stops out, so the only exit is the forced one at the end.
	require.Len(t, trades, 1)
	assert.Equal(t, ExitEndOfPeriod, trades[0].ExitReason)
}

func TestSimulate_SignalExitAtOpen(t *testing.T) {
	closes := []float64{100, 102, 104, 106}
	series := seriesFromCloses(closes)
	// Flat intent at index 2 exits at bar 3's open.
	intents := []Intent{IntentLong, IntentLong, IntentFlat, IntentFlat}
	risk := RiskParams{StopLossFraction: 0.5, PositionSizeFraction: 1.0}

	_, trades := simulate(series, intents, risk, 0, 10000)

	require.Len(t, trades, 1)
	assert.Equal(t, ExitSignal, trades[0].ExitReason)
	assert.InDelta(t, series[3].Open, trades[0].ExitPrice, 1e-9)
	assert.Equal(t, series[3].Timestamp, trades[0].ExitDate)
}

func TestSimulate_InsufficientCapitalStaysFlat(t *testing.T) {
	closes := []float64{100, 100, 100, 100}
	series := seriesFromCloses(closes)
	intents := []Intent{IntentLong, IntentLong, IntentLong, IntentLong}
	risk := RiskParams{StopLossFraction: 0.05, PositionSizeFraction: 1.0}

	equity, trades := simulate(series, intents, risk, 0, 50)

	assert.Empty(t, trades)
	for i := range equity {
		assert.InDelta(t, 50.0, equity[i].Equity, 1e-9, "index %d", i)
	}
}

func TestSimulate_PositionSizing(t *testing.T) {
	closes := []float64{100, 100, 100}
	series := seriesFromCloses(closes)
	intents := []Intent{IntentLong, IntentLong, IntentLong}
	risk := RiskParams{StopLossFraction: 0.05, PositionSizeFraction: 0.5}

	_, trades := simulate(series, intents, risk, 0, 10000)

	// Half of 10000 at price 100 buys exactly 50 shares.
	require.Len(t, trades, 1)
	assert.Equal(t, int64(50), trades[0].Shares)
}

func TestSimulate_FirstEquityPointIsInitialCapital(t *testing.T) {
	closes := []float64{100, 101, 102}
	series := seriesFromCloses(closes)
	intents := []Intent{IntentFlat, IntentFlat, IntentFlat}

	equity, trades := simulate(series, intents, RiskParams{StopLossFraction: 0.05, PositionSizeFraction: 1.0}, 0.0005, 10000)

	assert.Empty(t, trades)
	assert.InDelta(t, 10000.0, equity[0].Equity, 1e-9)
	assert.Equal(t, series[0].Timestamp, equity[0].Date)
}

func TestSimulate_TradeLedgerSumMatchesFinalEquity(t *testing.T) {
	closes := []float64{100, 105, 99, 104, 110, 96, 101, 107, 103, 112}
	series := seriesFromCloses(closes)
	cfg := StrategyConfig{
		Kind:   KindMACrossover,
		Params: Params{ShortWindow: 2, LongWindow: 3},
		Risk:   RiskParams{StopLossFraction: 0.05, PositionSizeFraction: 0.9},
	}

	intents := generateIntents(series, cfg)
	equity, trades := simulate(series, intents, cfg.Risk, 0.0005, 10000)

	sum := 0.0
	for _, trade := range trades {
		sum += trade.PnL
	}
	assert.InDelta(t, 10000.0+sum, equity[len(equity)-1].Equity, 1e-6)
}
