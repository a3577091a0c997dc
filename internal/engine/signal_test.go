package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seriesFromCloses builds a daily series where each bar opens at the previous
// close, so execution prices are easy to compute by hand.
func seriesFromCloses(closes []float64) PriceSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(PriceSeries, len(closes))
	for i, c := range closes {
		open := c
		if i > 0 {
			open = closes[i-1]
		}
		high := open
		if c > high {
			high = c
		}
		low := open
		if c < low {
			low = c
		}
		series[i] = Bar{
			Timestamp: start.AddDate(0, 0, i),
			Open:      open,
			High:      high,
			Low:       low,
			Close:     c,
			Volume:    1000,
		}
	}
	return series
}

func TestMACrossoverIntents(t *testing.T) {
	// SMA(2) crosses above SMA(3) at index 4 and below at index 7.
	closes := []float64{10, 9, 8, 9, 12, 13, 12, 8, 8, 8}
	series := seriesFromCloses(closes)

	intents := generateIntents(series, StrategyConfig{
		Kind:   KindMACrossover,
		Params: Params{ShortWindow: 2, LongWindow: 3},
	})

	want := []Intent{
		IntentFlat, IntentFlat, IntentFlat, IntentFlat,
		IntentLong, IntentLong, IntentLong,
		IntentFlat, IntentFlat, IntentFlat,
	}
	assert.Equal(t, want, intents)
}

func TestMACrossoverIntents_AlreadyAboveAtWarmupEnd(t *testing.T) {
	// The short MA is above the long MA on the first defined bar. That is a
	// state, not a crossover event, so no entry fires.
	closes := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	series := seriesFromCloses(closes)

	intents := generateIntents(series, StrategyConfig{
		Kind:   KindMACrossover,
		Params: Params{ShortWindow: 2, LongWindow: 4},
	})

	for i, intent := range intents {
		assert.Equal(t, IntentFlat, intent, "index %d", i)
	}
}

func TestRSIReversionIntents(t *testing.T) {
	// RSI(2) over these closes: 0, 33.3, 60, 17.6, 44, 80.8, 86.7, 39.1.
	// Upward cross through 30 at index 3 (enter) and a downward cross
	// through 70 at index 9 (exit).
	closes := []float64{10, 8, 6, 7, 8, 5, 6, 9, 10, 8}
	series := seriesFromCloses(closes)

	intents := generateIntents(series, StrategyConfig{
		Kind:   KindRSIReversion,
		Params: Params{RSIPeriod: 2, LowerThreshold: 30, UpperThreshold: 70},
	})

	want := []Intent{
		IntentFlat, IntentFlat, IntentFlat,
		IntentLong, IntentLong, IntentLong, IntentLong, IntentLong, IntentLong,
		IntentFlat,
	}
	assert.Equal(t, want, intents)
}

func TestMACDMomentumIntents_WarmupIsFlat(t *testing.T) {
	closes := []float64{10, 11, 12, 13, 14, 15, 14, 13, 12, 11, 12, 13, 14, 15, 16}
	series := seriesFromCloses(closes)

	intents := generateIntents(series, StrategyConfig{
		Kind:   KindMACDMomentum,
		Params: Params{FastPeriod: 3, SlowPeriod: 6, SignalPeriod: 4},
	})

	require.Len(t, intents, len(closes))
	// Signal line is undefined before index 8, so nothing can be Long there.
	for i := 0; i < 8; i++ {
		assert.Equal(t, IntentFlat, intents[i], "index %d", i)
	}
}

func TestCompositeIntents_SubsetOfConstituents(t *testing.T) {
	closes := []float64{
		100, 98, 96, 94, 92, 90, 91, 93, 95, 97,
		99, 101, 103, 102, 101, 100, 102, 104, 106, 108,
		107, 105, 103, 101, 99, 97, 98, 100, 102, 104,
	}
	series := seriesFromCloses(closes)
	params := Params{
		ShortWindow: 2, LongWindow: 5,
		RSIPeriod: 3, LowerThreshold: 30, UpperThreshold: 70,
		FastPeriod: 3, SlowPeriod: 6, SignalPeriod: 3,
	}

	composite := generateIntents(series, StrategyConfig{Kind: KindComposite, Params: params})
	ma := generateIntents(series, StrategyConfig{Kind: KindMACrossover, Params: params})
	rsi := generateIntents(series, StrategyConfig{Kind: KindRSIReversion, Params: params})
	macd := generateIntents(series, StrategyConfig{Kind: KindMACDMomentum, Params: params})

	for i := range composite {
		if composite[i] == IntentLong {
			assert.Equal(t, IntentLong, ma[i], "ma at %d", i)
			assert.Equal(t, IntentLong, rsi[i], "rsi at %d", i)
			assert.Equal(t, IntentLong, macd[i], "macd at %d", i)
		}
	}
}

func TestGenerateIntents_DependsOnlyOnPastBars(t *testing.T) {
	closes := []float64{10, 9, 8, 9, 12, 13, 12, 8, 8, 8}
	series := seriesFromCloses(closes)
	cfg := StrategyConfig{Kind: KindMACrossover, Params: Params{ShortWindow: 2, LongWindow: 3}}

	before := generateIntents(series, cfg)

	// Changing the last bar must not affect any earlier intent.
	mutated := make(PriceSeries, len(series))
	copy(mutated, series)
	mutated[len(mutated)-1].Close = 1000

	after := generateIntents(mutated, cfg)
	assert.Equal(t, before[:len(before)-1], after[:len(after)-1])
}
