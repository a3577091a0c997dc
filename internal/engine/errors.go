package engine

import "errors"

// The engine fails fast with one of these error kinds and never returns a
// partial result. Conditions the simulation can absorb (a buy signal without
// enough cash, an undefined metric) are not errors.
var (
	// ErrInvalidConfig indicates a strategy parameter constraint violation.
	ErrInvalidConfig = errors.New("invalid strategy config")

	// ErrInsufficientData indicates the price series is shorter than the
	// warm-up window of the configured strategy.
	ErrInsufficientData = errors.New("insufficient price data")

	// ErrNonMonotonicSeries indicates timestamps are not strictly increasing.
	ErrNonMonotonicSeries = errors.New("price series timestamps not strictly increasing")
)
