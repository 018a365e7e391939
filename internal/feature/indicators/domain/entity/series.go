// Package entity defines the domain models for the indicators feature.
package entity

import (
	"fmt"
	"math"
	"time"

	"tradeiq/internal/feature/indicators/domain"
)

// PricePoint is a single closing price at a point in time.
type PricePoint struct {
	Time  time.Time // Bar timestamp
	Close float64   // Closing price
}

// PriceSeries is an immutable, strictly time-ascending sequence of closing prices.
// The zero value is an empty series; use NewPriceSeries to build a valid one.
type PriceSeries struct {
	symbol string
	points []PricePoint
}

// NewPriceSeries validates and copies points into a PriceSeries.
// It fails with domain.ErrInvalidSeries when points is empty, out of order, has duplicate
// timestamps or carries a NaN or infinite close.
func NewPriceSeries(symbol string, points []PricePoint) (PriceSeries, error) {
	if len(points) == 0 {
		return PriceSeries{}, fmt.Errorf("%w: empty series", domain.ErrInvalidSeries)
	}
	for i, p := range points {
		if math.IsNaN(p.Close) || math.IsInf(p.Close, 0) {
			return PriceSeries{}, fmt.Errorf("%w: non-finite close %v at index %d", domain.ErrInvalidSeries, p.Close, i)
		}
	}
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1].Time, points[i].Time
		if cur.Equal(prev) {
			return PriceSeries{}, fmt.Errorf("%w: duplicate timestamp %s at index %d",
				domain.ErrInvalidSeries, cur.Format(time.RFC3339), i)
		}
		if cur.Before(prev) {
			return PriceSeries{}, fmt.Errorf("%w: timestamp %s at index %d is before its predecessor",
				domain.ErrInvalidSeries, cur.Format(time.RFC3339), i)
		}
	}
	cp := make([]PricePoint, len(points))
	copy(cp, points)
	return PriceSeries{symbol: symbol, points: cp}, nil
}

// Symbol returns the ticker the series was fetched for.
func (s PriceSeries) Symbol() string { return s.symbol }

// Len returns the number of points.
func (s PriceSeries) Len() int { return len(s.points) }

// At returns the i-th point. It panics if i is out of range, like slice indexing.
func (s PriceSeries) At(i int) PricePoint { return s.points[i] }

// Points returns a copy of the points.
func (s PriceSeries) Points() []PricePoint {
	out := make([]PricePoint, len(s.points))
	copy(out, s.points)
	return out
}

// Closes returns a copy of the closing prices in time order.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.points))
	for i, p := range s.points {
		out[i] = p.Close
	}
	return out
}

// Times returns a copy of the timestamps in time order.
func (s PriceSeries) Times() []time.Time {
	out := make([]time.Time, len(s.points))
	for i, p := range s.points {
		out[i] = p.Time
	}
	return out
}

// LatestPrice returns the last closing price (series[-1]).
func (s PriceSeries) LatestPrice() (float64, error) {
	if len(s.points) < 2 {
		return 0, fmt.Errorf("%w: latest price needs 2 points, have %d", domain.ErrInsufficientData, len(s.points))
	}
	return s.points[len(s.points)-1].Close, nil
}

// PreviousPrice returns the closing price before the last one (series[-2]).
func (s PriceSeries) PreviousPrice() (float64, error) {
	if len(s.points) < 2 {
		return 0, fmt.Errorf("%w: previous price needs 2 points, have %d", domain.ErrInsufficientData, len(s.points))
	}
	return s.points[len(s.points)-2].Close, nil
}
