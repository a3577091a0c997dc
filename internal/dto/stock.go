package dto

import "time"

// SyncRequest asks the platform to download historical daily bars.
type SyncRequest struct {
	Symbol string `json:"symbol" validate:"required_without=All"`
	All    bool   `json:"all"`
	Years  int    `json:"years" validate:"omitempty,gte=1,lte=20"`
}

// SyncResponse reports how much data a sync stored.
type SyncResponse struct {
	Symbol    string `json:"symbol,omitempty"`
	Symbols   int    `json:"symbols,omitempty"`
	BarsSaved int    `json:"bars_saved"`
	Failed    int    `json:"failed,omitempty"`
}

// OHLCVResponse is one daily bar as served by the API.
type OHLCVResponse struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// GetStockDataParam describes a historical download from the market-data
// provider.
type GetStockDataParam struct {
	Symbol    string
	StartDate time.Time
	EndDate   time.Time
	Interval  string
}

// StockOHLCV is a bar as returned by the provider, timestamped in epoch
// seconds.
type StockOHLCV struct {
	Timestamp int64
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    int64
}

// StockData is a downloaded price history.
type StockData struct {
	Symbol string
	OHLCV  []StockOHLCV
}

// YahooFinanceResponse mirrors the chart API payload.
type YahooFinanceResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}
