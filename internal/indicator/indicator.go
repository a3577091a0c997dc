package indicator

import "math"

// All indicator functions return a slice with the same length as the input.
// Entries inside the warm-up period are NaN, never zero, so that callers can
// tell "no value yet" apart from a real value.

// SMA computes the simple moving average over a trailing window.
func SMA(values []float64, period int) []float64 {
	result := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return result
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	result[period-1] = sum / float64(period)

	for i := period; i < len(values); i++ {
		sum += values[i] - values[i-period]
		result[i] = sum / float64(period)
	}

	return result
}

// EMA computes the exponential moving average with smoothing factor
// 2/(period+1), seeded with the SMA of the first period values.
func EMA(values []float64, period int) []float64 {
	result := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return result
	}

	multiplier := 2.0 / (float64(period) + 1.0)

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	result[period-1] = sum / float64(period)

	for i := period; i < len(values); i++ {
		result[i] = values[i]*multiplier + result[i-1]*(1-multiplier)
	}

	return result
}

// RSI computes the relative strength index using Wilder smoothing: the first
// average gain/loss is a simple mean over period deltas, subsequent averages
// are (prev*(period-1)+current)/period. Output is clipped to [0,100] and is
// 100 when the average loss is zero.
func RSI(values []float64, period int) []float64 {
	result := nanSlice(len(values))
	if period <= 0 || len(values) < period+1 {
		return result
	}

	avgGain := 0.0
	avgLoss := 0.0
	for i := 1; i <= period; i++ {
		delta := values[i] - values[i-1]
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss -= delta
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	result[period] = rsiValue(avgGain, avgLoss)

	for i := period + 1; i < len(values); i++ {
		delta := values[i] - values[i-1]
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		result[i] = rsiValue(avgGain, avgLoss)
	}

	return result
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	v := 100 - 100/(1+rs)
	return math.Min(100, math.Max(0, v))
}

// MACD computes the MACD line (fast EMA - slow EMA), its signal line (EMA of
// the MACD line) and the histogram (MACD - signal).
func MACD(values []float64, fast, slow, signal int) (macd, signalLine, histogram []float64) {
	n := len(values)
	macd = nanSlice(n)
	signalLine = nanSlice(n)
	histogram = nanSlice(n)

	fastEMA := EMA(values, fast)
	slowEMA := EMA(values, slow)

	firstDefined := -1
	for i := 0; i < n; i++ {
		if !math.IsNaN(fastEMA[i]) && !math.IsNaN(slowEMA[i]) {
			macd[i] = fastEMA[i] - slowEMA[i]
			if firstDefined < 0 {
				firstDefined = i
			}
		}
	}
	if firstDefined < 0 {
		return macd, signalLine, histogram
	}

	// Signal line is the EMA of the defined part of the MACD line.
	sig := EMA(macd[firstDefined:], signal)
	for i, v := range sig {
		signalLine[firstDefined+i] = v
	}

	for i := 0; i < n; i++ {
		if !math.IsNaN(macd[i]) && !math.IsNaN(signalLine[i]) {
			histogram[i] = macd[i] - signalLine[i]
		}
	}

	return macd, signalLine, histogram
}

func nanSlice(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}
