package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		period int
		want   []float64
	}{
		{
			name:   "known values",
			values: []float64{1, 2, 3, 4, 5},
			period: 3,
			want:   []float64{math.NaN(), math.NaN(), 2, 3, 4},
		},
		{
			name:   "period equals length",
			values: []float64{2, 4, 6},
			period: 3,
			want:   []float64{math.NaN(), math.NaN(), 4},
		},
		{
			name:   "not enough data",
			values: []float64{1, 2},
			period: 3,
			want:   []float64{math.NaN(), math.NaN()},
		},
		{
			name:   "period one is identity",
			values: []float64{3, 1, 4},
			period: 1,
			want:   []float64{3, 1, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SMA(tt.values, tt.period)
			assertSeriesEqual(t, tt.want, got)
		})
	}
}

func TestEMA(t *testing.T) {
	// Seeded with SMA(1,2,3)=2, multiplier 2/(3+1)=0.5:
	// ema[3] = 4*0.5 + 2*0.5 = 3, ema[4] = 5*0.5 + 3*0.5 = 4
	got := EMA([]float64{1, 2, 3, 4, 5}, 3)
	assertSeriesEqual(t, []float64{math.NaN(), math.NaN(), 2, 3, 4}, got)
}

func TestEMA_ConstantSeries(t *testing.T) {
	got := EMA([]float64{7, 7, 7, 7, 7, 7}, 4)
	for i := 3; i < len(got); i++ {
		assert.InDelta(t, 7.0, got[i], 1e-9)
	}
}

func TestRSI(t *testing.T) {
	t.Run("all gains is 100", func(t *testing.T) {
		got := RSI([]float64{1, 2, 3, 4, 5, 6}, 3)
		require.Len(t, got, 6)
		for i := 0; i < 3; i++ {
			assert.True(t, math.IsNaN(got[i]), "index %d should be NaN", i)
		}
		for i := 3; i < 6; i++ {
			assert.InDelta(t, 100.0, got[i], 1e-9)
		}
	})

	t.Run("wilder smoothing", func(t *testing.T) {
		// period 2 over [1,2,3,2,3]:
		// i=2: avgGain=1, avgLoss=0       -> 100
		// i=3: avgGain=0.5, avgLoss=0.5   -> 50
		// i=4: avgGain=0.75, avgLoss=0.25 -> 75
		got := RSI([]float64{1, 2, 3, 2, 3}, 2)
		assert.True(t, math.IsNaN(got[0]))
		assert.True(t, math.IsNaN(got[1]))
		assert.InDelta(t, 100.0, got[2], 1e-9)
		assert.InDelta(t, 50.0, got[3], 1e-9)
		assert.InDelta(t, 75.0, got[4], 1e-9)
	})

	t.Run("bounded in 0..100", func(t *testing.T) {
		values := []float64{50, 48, 53, 47, 55, 42, 60, 41, 65, 40}
		got := RSI(values, 3)
		for i, v := range got {
			if math.IsNaN(v) {
				continue
			}
			assert.GreaterOrEqual(t, v, 0.0, "index %d", i)
			assert.LessOrEqual(t, v, 100.0, "index %d", i)
		}
	})
}

func TestMACD(t *testing.T) {
	values := []float64{10, 11, 12, 13, 14, 15, 14, 13, 12, 11, 10, 11, 12, 13, 14}
	macd, signalLine, histogram := MACD(values, 3, 6, 4)

	require.Len(t, macd, len(values))
	require.Len(t, signalLine, len(values))
	require.Len(t, histogram, len(values))

	// MACD warm-up is the slow EMA warm-up.
	for i := 0; i < 5; i++ {
		assert.True(t, math.IsNaN(macd[i]), "macd[%d] should be NaN", i)
	}
	fastEMA := EMA(values, 3)
	slowEMA := EMA(values, 6)
	for i := 5; i < len(values); i++ {
		assert.InDelta(t, fastEMA[i]-slowEMA[i], macd[i], 1e-9, "macd[%d]", i)
	}

	// Signal line needs 4 defined MACD values, first at index 8.
	for i := 0; i < 8; i++ {
		assert.True(t, math.IsNaN(signalLine[i]), "signal[%d] should be NaN", i)
	}
	for i := 8; i < len(values); i++ {
		assert.False(t, math.IsNaN(signalLine[i]), "signal[%d] should be defined", i)
		assert.InDelta(t, macd[i]-signalLine[i], histogram[i], 1e-9, "histogram[%d]", i)
	}
}

func TestBollingerBands(t *testing.T) {
	values := []float64{2, 4, 6, 8, 10}
	upper, middle, lower := BollingerBands(values, 3, 2)

	// Window [2,4,6]: mean 4, population std sqrt(8/3)
	std := math.Sqrt(8.0 / 3.0)
	assert.InDelta(t, 4.0, middle[2], 1e-9)
	assert.InDelta(t, 4.0+2*std, upper[2], 1e-9)
	assert.InDelta(t, 4.0-2*std, lower[2], 1e-9)

	for i := 0; i < 2; i++ {
		assert.True(t, math.IsNaN(upper[i]))
		assert.True(t, math.IsNaN(middle[i]))
		assert.True(t, math.IsNaN(lower[i]))
	}
}

func TestATR(t *testing.T) {
	high := []float64{12, 13, 15, 14}
	low := []float64{10, 11, 12, 12}
	closes := []float64{11, 12, 14, 13}

	// tr = [2, 2, 3, 2]
	got := ATR(high, low, closes, 2)
	assert.True(t, math.IsNaN(got[0]))
	assert.InDelta(t, 2.0, got[1], 1e-9)
	assert.InDelta(t, 2.5, got[2], 1e-9)
	assert.InDelta(t, 2.5, got[3], 1e-9)
}

func TestStochastic(t *testing.T) {
	high := []float64{10, 12, 14, 13, 15}
	low := []float64{8, 9, 10, 11, 12}
	closes := []float64{9, 11, 13, 12, 14}

	k, d := Stochastic(high, low, closes, 3, 2)

	// i=2: range [8,14], close 13 -> %K = 100*(13-8)/6
	assert.InDelta(t, 100.0*5.0/6.0, k[2], 1e-9)
	assert.True(t, math.IsNaN(k[0]))
	assert.True(t, math.IsNaN(k[1]))

	// %D needs two defined %K values, first at index 3.
	assert.True(t, math.IsNaN(d[2]))
	assert.InDelta(t, (k[2]+k[3])/2, d[3], 1e-9)
}

func TestStochastic_FlatWindow(t *testing.T) {
	high := []float64{10, 10, 10}
	low := []float64{10, 10, 10}
	closes := []float64{10, 10, 10}

	k, _ := Stochastic(high, low, closes, 3, 2)
	assert.InDelta(t, 50.0, k[2], 1e-9)
}

func TestVWAP(t *testing.T) {
	high := []float64{11, 13}
	low := []float64{9, 11}
	closes := []float64{10, 12}
	volume := []float64{100, 300}

	got := VWAP(high, low, closes, volume)
	assert.InDelta(t, 10.0, got[0], 1e-9)
	// (10*100 + 12*300) / 400
	assert.InDelta(t, 11.5, got[1], 1e-9)
}

// Indicator values must depend only on past data: computing over the full
// series and computing over each prefix must agree at the prefix's last index.
func TestIndicators_PrefixEquivalence(t *testing.T) {
	closes := []float64{50, 48, 53, 47, 55, 42, 60, 41, 65, 40, 58, 44, 62, 46, 59}

	tests := []struct {
		name string
		fn   func(values []float64) []float64
	}{
		{"sma", func(v []float64) []float64 { return SMA(v, 4) }},
		{"ema", func(v []float64) []float64 { return EMA(v, 4) }},
		{"rsi", func(v []float64) []float64 { return RSI(v, 4) }},
		{"macd line", func(v []float64) []float64 {
			macd, _, _ := MACD(v, 3, 6, 4)
			return macd
		}},
		{"macd signal", func(v []float64) []float64 {
			_, signalLine, _ := MACD(v, 3, 6, 4)
			return signalLine
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			full := tt.fn(closes)
			for i := range closes {
				prefix := tt.fn(closes[:i+1])
				last := prefix[i]
				if math.IsNaN(full[i]) {
					assert.True(t, math.IsNaN(last), "prefix %d: want NaN, got %v", i, last)
					continue
				}
				assert.InDelta(t, full[i], last, 1e-9, "prefix %d", i)
			}
		})
	}
}

func assertSeriesEqual(t *testing.T, want, got []float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		if math.IsNaN(want[i]) {
			assert.True(t, math.IsNaN(got[i]), "index %d: want NaN, got %v", i, got[i])
			continue
		}
		assert.InDelta(t, want[i], got[i], 1e-9, "index %d", i)
	}
}
