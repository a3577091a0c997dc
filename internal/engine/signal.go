package engine

import (
	"math"

	"algotradex/internal/indicator"
)

// Intent is the strategy's desired position at a bar, before the simulator
// applies capital and risk constraints. Short selling is out of scope, so the
// only states are Flat and Long.
type Intent uint8

const (
	IntentFlat Intent = iota
	IntentLong
)

// generateIntents maps a price series to one intent per bar. Intent at index
// i depends only on bars [0..i]; bars inside an indicator warm-up period are
// always Flat.
func generateIntents(series PriceSeries, cfg StrategyConfig) []Intent {
	closes := series.Closes()

	switch cfg.Kind {
	case KindMACrossover:
		return maCrossoverIntents(closes, cfg.Params)
	case KindRSIReversion:
		return rsiReversionIntents(closes, cfg.Params)
	case KindMACDMomentum:
		return macdMomentumIntents(closes, cfg.Params)
	case KindComposite:
		return compositeIntents(closes, cfg.Params)
	}
	return make([]Intent, len(closes))
}

// maCrossoverIntents goes Long when the short SMA crosses above the long SMA
// and Flat on the reverse crossover. Between crossovers the intent holds.
func maCrossoverIntents(closes []float64, p Params) []Intent {
	short := indicator.SMA(closes, p.ShortWindow)
	long := indicator.SMA(closes, p.LongWindow)
	return crossoverIntents(short, long)
}

// macdMomentumIntents goes Long when the MACD line crosses above its signal
// line and Flat on the reverse cross.
func macdMomentumIntents(closes []float64, p Params) []Intent {
	macd, signalLine, _ := indicator.MACD(closes, p.FastPeriod, p.SlowPeriod, p.SignalPeriod)
	return crossoverIntents(macd, signalLine)
}

// rsiReversionIntents goes Long when RSI crosses upward through the lower
// threshold (oversold recovery) and Flat when RSI crosses downward through
// the upper threshold (overbought exit). The overbought exit is the
// deterministic exit rule chosen for this strategy.
func rsiReversionIntents(closes []float64, p Params) []Intent {
	rsi := indicator.RSI(closes, p.RSIPeriod)
	intents := make([]Intent, len(closes))

	state := IntentFlat
	havePrev := false
	prev := 0.0
	for i, cur := range rsi {
		if math.IsNaN(cur) {
			intents[i] = IntentFlat
			continue
		}
		if havePrev {
			if prev <= p.LowerThreshold && cur > p.LowerThreshold {
				state = IntentLong
			} else if prev >= p.UpperThreshold && cur < p.UpperThreshold {
				state = IntentFlat
			}
		}
		havePrev = true
		prev = cur
		intents[i] = state
	}

	return intents
}

// compositeIntents is the logical AND of the three constituent strategies:
// Long only where all three agree, so its Long bars are always a subset of
// each constituent's.
func compositeIntents(closes []float64, p Params) []Intent {
	ma := maCrossoverIntents(closes, p)
	rsi := rsiReversionIntents(closes, p)
	macd := macdMomentumIntents(closes, p)

	intents := make([]Intent, len(closes))
	for i := range intents {
		if ma[i] == IntentLong && rsi[i] == IntentLong && macd[i] == IntentLong {
			intents[i] = IntentLong
		}
	}
	return intents
}

// crossoverIntents implements the shared crossover-event state machine: Long
// when fast crosses from <= to > slow, Flat on the reverse cross, holding the
// last state in between. Warm-up bars (NaN on either line) are Flat and do
// not count as a prior observation.
func crossoverIntents(fast, slow []float64) []Intent {
	intents := make([]Intent, len(fast))

	state := IntentFlat
	havePrev := false
	prevAbove := false
	for i := range fast {
		if math.IsNaN(fast[i]) || math.IsNaN(slow[i]) {
			intents[i] = IntentFlat
			continue
		}
		above := fast[i] > slow[i]
		if havePrev {
			if above && !prevAbove {
				state = IntentLong
			} else if !above && prevAbove {
				state = IntentFlat
			}
		}
		havePrev = true
		prevAbove = above
		intents[i] = state
	}

	return intents
}
