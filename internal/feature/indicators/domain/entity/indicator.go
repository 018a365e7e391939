package entity

import (
	"math"
	"time"

	"github.com/guregu/null/v6"
)

// RSIPoint is the RSI value at one timestamp. Value is null while the lookback is not yet filled.
type RSIPoint struct {
	Time  time.Time
	Value null.Float
}

// RSISeries is an RSI series aligned index by index with its PriceSeries.
type RSISeries struct {
	Period int
	Points []RSIPoint
}

// Len returns the number of points.
func (r RSISeries) Len() int { return len(r.Points) }

// MACDPoint holds the MACD line, its signal line and their difference at one timestamp.
type MACDPoint struct {
	Time      time.Time
	MACD      null.Float
	Signal    null.Float
	Histogram null.Float
}

// MACDSeries is a MACD series aligned index by index with its PriceSeries.
type MACDSeries struct {
	Fast   int
	Slow   int
	Signal int
	Points []MACDPoint
}

// Len returns the number of points.
func (m MACDSeries) Len() int { return len(m.Points) }

// WarmUp returns the first index from which MACD and signal are conventionally stable.
// Earlier values are still emitted: the EMAs start from the first sample.
func (m MACDSeries) WarmUp() int {
	if m.Slow <= 0 || m.Signal <= 0 {
		return 0
	}
	if m.Slow > math.MaxInt-m.Signal {
		return math.MaxInt
	}
	return m.Slow + m.Signal - 2
}
