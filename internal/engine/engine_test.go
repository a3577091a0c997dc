package engine

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Run_Determinism(t *testing.T) {
	closes := []float64{100, 102, 104, 101, 98, 95, 99, 103, 107, 110}
	series := seriesFromCloses(closes)
	cfg := StrategyConfig{
		Kind:   KindMACrossover,
		Params: Params{ShortWindow: 2, LongWindow: 4},
		Risk:   RiskParams{StopLossFraction: 0.05, PositionSizeFraction: 1.0},
	}

	eng := New(0.0005)
	first, err := eng.Run(series, cfg, 10000)
	require.NoError(t, err)
	second, err := eng.Run(series, cfg, 10000)
	require.NoError(t, err)

	assert.Equal(t, first.EquityCurve, second.EquityCurve)
	assert.Equal(t, first.Trades, second.Trades)
	assert.Equal(t, first.Metrics.TotalReturn, second.Metrics.TotalReturn)
}

func TestEngine_Run_FlatSeriesNoTrades(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100
	}
	series := seriesFromCloses(closes)
	cfg := StrategyConfig{
		Kind:   KindMACrossover,
		Params: Params{ShortWindow: 3, LongWindow: 5},
		Risk:   RiskParams{StopLossFraction: 0.05, PositionSizeFraction: 1.0},
	}

	result, err := New(0.0005).Run(series, cfg, 10000)
	require.NoError(t, err)

	assert.Empty(t, result.Trades)
	assert.InDelta(t, 0.0, result.Metrics.TotalReturn, 1e-9)
	assert.True(t, math.IsNaN(result.Metrics.WinRate))
}

func TestEngine_Run_ValidationErrors(t *testing.T) {
	closes := []float64{100, 102, 104, 101, 98, 95, 99, 103, 107, 110}
	series := seriesFromCloses(closes)
	valid := StrategyConfig{
		Kind:   KindMACrossover,
		Params: Params{ShortWindow: 2, LongWindow: 4},
		Risk:   RiskParams{StopLossFraction: 0.05, PositionSizeFraction: 1.0},
	}

	eng := New(0.0005)

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{
			name: "non-positive capital",
			run: func() error {
				_, err := eng.Run(series, valid, 0)
				return err
			},
			wantErr: ErrInvalidConfig,
		},
		{
			name: "short window not below long window",
			run: func() error {
				cfg := valid
				cfg.Params = Params{ShortWindow: 4, LongWindow: 4}
				_, err := eng.Run(series, cfg, 10000)
				return err
			},
			wantErr: ErrInvalidConfig,
		},
		{
			name: "unknown strategy kind",
			run: func() error {
				cfg := valid
				cfg.Kind = "momentum_surfer"
				_, err := eng.Run(series, cfg, 10000)
				return err
			},
			wantErr: ErrInvalidConfig,
		},
		{
			name: "rsi thresholds inverted",
			run: func() error {
				cfg := StrategyConfig{
					Kind:   KindRSIReversion,
					Params: Params{RSIPeriod: 14, LowerThreshold: 70, UpperThreshold: 30},
					Risk:   valid.Risk,
				}
				_, err := eng.Run(series, cfg, 10000)
				return err
			},
			wantErr: ErrInvalidConfig,
		},
		{
			name: "stop loss fraction out of range",
			run: func() error {
				cfg := valid
				cfg.Risk = RiskParams{StopLossFraction: 1.5, PositionSizeFraction: 1.0}
				_, err := eng.Run(series, cfg, 10000)
				return err
			},
			wantErr: ErrInvalidConfig,
		},
		{
			name: "too few bars",
			run: func() error {
				cfg := valid
				cfg.Params = Params{ShortWindow: 10, LongWindow: 50}
				_, err := eng.Run(series, cfg, 10000)
				return err
			},
			wantErr: ErrInsufficientData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEngine_Run_NonMonotonicSeries(t *testing.T) {
	series := seriesFromCloses([]float64{100, 102, 104, 101, 98, 95})
	series[3].Timestamp = series[1].Timestamp

	cfg := StrategyConfig{
		Kind:   KindMACrossover,
		Params: Params{ShortWindow: 2, LongWindow: 3},
		Risk:   RiskParams{StopLossFraction: 0.05, PositionSizeFraction: 1.0},
	}

	_, err := New(0.0005).Run(series, cfg, 10000)
	assert.ErrorIs(t, err, ErrNonMonotonicSeries)
}

func TestEngine_RunWithBenchmark(t *testing.T) {
	closes := []float64{100, 102, 104, 101, 98, 95, 99, 103, 107, 110}
	series := seriesFromCloses(closes)
	cfg := StrategyConfig{
		Kind:   KindMACrossover,
		Params: Params{ShortWindow: 2, LongWindow: 4},
		Risk:   RiskParams{StopLossFraction: 0.05, PositionSizeFraction: 1.0},
	}

	benchmark := []float64{200, 202, 205, 203, 199, 195, 200, 206, 210, 215}
	result, err := New(0.0005).RunWithBenchmark(series, cfg, 10000, benchmark)
	require.NoError(t, err)

	assert.False(t, math.IsNaN(result.Metrics.Beta))
	assert.False(t, math.IsNaN(result.Metrics.Alpha))

	// A misaligned benchmark disables the regression instead of guessing.
	result, err = New(0.0005).RunWithBenchmark(series, cfg, 10000, benchmark[:5])
	require.NoError(t, err)
	assert.True(t, math.IsNaN(result.Metrics.Beta))
	assert.True(t, math.IsNaN(result.Metrics.Alpha))
}

func TestEngine_Run_EquityCurveMatchesSeriesLength(t *testing.T) {
	closes := []float64{100, 102, 104, 101, 98, 95, 99, 103, 107, 110, 108, 111}
	series := seriesFromCloses(closes)
	cfg := StrategyConfig{
		Kind:   KindMACrossover,
		Params: Params{ShortWindow: 2, LongWindow: 4},
		Risk:   RiskParams{StopLossFraction: 0.05, PositionSizeFraction: 1.0},
	}

	result, err := New(0.0005).Run(series, cfg, 10000)
	require.NoError(t, err)

	require.Len(t, result.EquityCurve, len(series))
	for i := range series {
		assert.Equal(t, series[i].Timestamp, result.EquityCurve[i].Date)
	}
}

func TestPriceSeriesValidate(t *testing.T) {
	series := seriesFromCloses([]float64{100, 101, 102})
	assert.NoError(t, series.Validate())

	series[2].Timestamp = series[1].Timestamp.Add(-time.Hour)
	assert.ErrorIs(t, series.Validate(), ErrNonMonotonicSeries)

	assert.NoError(t, PriceSeries{}.Validate())
}
