// Package domain defines domain-level errors for the indicators feature.
package domain

import (
	"errors"
	"fmt"
)

// Domain errors for indicator computation.
// Upper layers decide how each one is presented; none of them is fatal.
var (
	// ErrInvalidSeries indicates a price series that is empty, unordered, duplicated or non-finite.
	ErrInvalidSeries = errors.New("invalid price series")

	// ErrInsufficientData indicates that the series is too short for the requested operation.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrAlignment indicates that derived series do not share the price series' timestamps.
	ErrAlignment = errors.New("indicator series misaligned")

	// ErrInvalidParameter indicates an out-of-range indicator parameter or query value.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNoData indicates that the data source returned no prices for the symbol.
	ErrNoData = errors.New("no price data")
)

// FetchError wraps any failure of the price data source for a symbol.
// It replaces silently defaulting to an empty result: the caller always sees the cause.
type FetchError struct {
	Symbol string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
