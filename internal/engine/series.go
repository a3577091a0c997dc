package engine

import (
	"fmt"
	"time"
)

// Bar is one day's OHLCV data for a single instrument. Bars are never
// mutated once handed to the engine.
type Bar struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    int64
}

// PriceSeries is a chronologically ordered sequence of daily bars for one
// instrument. Missing trading days are accepted as-is; only the timestamp
// ordering is enforced.
type PriceSeries []Bar

// Validate checks that timestamps are strictly increasing. The engine never
// repairs or reorders input data.
func (s PriceSeries) Validate() error {
	for i := 1; i < len(s); i++ {
		if !s[i].Timestamp.After(s[i-1].Timestamp) {
			return fmt.Errorf("%w: bar %d (%s) is not after bar %d (%s)",
				ErrNonMonotonicSeries,
				i, s[i].Timestamp.Format("2006-01-02"),
				i-1, s[i-1].Timestamp.Format("2006-01-02"))
		}
	}
	return nil
}

// Closes extracts the close price sequence.
func (s PriceSeries) Closes() []float64 {
	result := make([]float64, len(s))
	for i, b := range s {
		result[i] = b.Close
	}
	return result
}

