package dto

import "time"

// IndicatorSeries is one indicator line aligned with Dates; entries inside
// the warm-up period are null.
type IndicatorSeries []*float64

// IndicatorsResponse is the standard indicator set computed over a symbol's
// daily bars, served by GET /api/v1/stocks/:symbol/indicators.
type IndicatorsResponse struct {
	Symbol string      `json:"symbol"`
	Dates  []time.Time `json:"dates"`

	SMA20 IndicatorSeries `json:"sma_20"`
	SMA50 IndicatorSeries `json:"sma_50"`
	EMA20 IndicatorSeries `json:"ema_20"`
	RSI14 IndicatorSeries `json:"rsi_14"`

	MACD       IndicatorSeries `json:"macd"`
	MACDSignal IndicatorSeries `json:"macd_signal"`
	MACDHist   IndicatorSeries `json:"macd_histogram"`

	BollingerUpper  IndicatorSeries `json:"bollinger_upper"`
	BollingerMiddle IndicatorSeries `json:"bollinger_middle"`
	BollingerLower  IndicatorSeries `json:"bollinger_lower"`

	ATR14       IndicatorSeries `json:"atr_14"`
	StochasticK IndicatorSeries `json:"stochastic_k"`
	StochasticD IndicatorSeries `json:"stochastic_d"`
	VWAP        IndicatorSeries `json:"vwap"`
}

// ToIndicatorSeries maps raw indicator values to their JSON form.
func ToIndicatorSeries(values []float64) IndicatorSeries {
	series := make(IndicatorSeries, len(values))
	for i, v := range values {
		series[i] = FloatPtr(v)
	}
	return series
}
