package indicator

import "math"

// BollingerBands computes the middle band (SMA), and upper/lower bands at
// numStd standard deviations around it.
func BollingerBands(values []float64, period int, numStd float64) (upper, middle, lower []float64) {
	n := len(values)
	upper = nanSlice(n)
	middle = SMA(values, period)
	lower = nanSlice(n)
	if period <= 1 || n < period {
		return upper, middle, lower
	}

	for i := period - 1; i < n; i++ {
		window := values[i-period+1 : i+1]
		variance := 0.0
		for _, v := range window {
			diff := v - middle[i]
			variance += diff * diff
		}
		std := math.Sqrt(variance / float64(period))
		upper[i] = middle[i] + std*numStd
		lower[i] = middle[i] - std*numStd
	}

	return upper, middle, lower
}

// ATR computes the average true range, a volatility measure, as the SMA of
// the true range. The first bar has no previous close, its true range is
// high-low.
func ATR(high, low, closes []float64, period int) []float64 {
	n := len(closes)
	result := nanSlice(n)
	if period <= 0 || n < period {
		return result
	}

	tr := make([]float64, n)
	tr[0] = high[0] - low[0]
	for i := 1; i < n; i++ {
		hl := high[i] - low[i]
		hc := math.Abs(high[i] - closes[i-1])
		lc := math.Abs(low[i] - closes[i-1])
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}

	return SMA(tr, period)
}

// Stochastic computes the %K and %D lines of the stochastic oscillator.
func Stochastic(high, low, closes []float64, kPeriod, dPeriod int) (k, d []float64) {
	n := len(closes)
	k = nanSlice(n)
	if kPeriod <= 0 || n < kPeriod {
		return k, nanSlice(n)
	}

	for i := kPeriod - 1; i < n; i++ {
		lowest := low[i-kPeriod+1]
		highest := high[i-kPeriod+1]
		for j := i - kPeriod + 2; j <= i; j++ {
			if low[j] < lowest {
				lowest = low[j]
			}
			if high[j] > highest {
				highest = high[j]
			}
		}
		if highest == lowest {
			k[i] = 50
			continue
		}
		k[i] = 100 * (closes[i] - lowest) / (highest - lowest)
	}

	// %D is the SMA of %K over its defined part.
	d = nanSlice(n)
	smoothed := SMA(k[kPeriod-1:], dPeriod)
	for i, v := range smoothed {
		d[kPeriod-1+i] = v
	}

	return k, d
}

// VWAP computes the cumulative volume weighted average price using the
// typical price (H+L+C)/3.
func VWAP(high, low, closes, volume []float64) []float64 {
	n := len(closes)
	result := nanSlice(n)

	cumPV := 0.0
	cumVol := 0.0
	for i := 0; i < n; i++ {
		typical := (high[i] + low[i] + closes[i]) / 3
		cumPV += typical * volume[i]
		cumVol += volume[i]
		if cumVol > 0 {
			result[i] = cumPV / cumVol
		}
	}

	return result
}
