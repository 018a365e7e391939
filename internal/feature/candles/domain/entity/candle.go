// Package entity defines the domain models for the candles feature.
package entity

import (
	"fmt"
	"time"
)

// Supported candle intervals.
const (
	IntervalDay   = "1day"
	IntervalWeek  = "1week"
	IntervalMonth = "1month"
)

// Candle is one OHLCV bar for a symbol at a given interval.
type Candle struct {
	Symbol   string    // Ticker symbol (e.g. "AAPL", "BTC-USD")
	Interval string    // One of IntervalDay, IntervalWeek, IntervalMonth
	Time     time.Time // Start of the bar period
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Volume   int64
}

// ValidInterval reports whether interval is one of the supported intervals.
func ValidInterval(interval string) bool {
	switch interval {
	case IntervalDay, IntervalWeek, IntervalMonth:
		return true
	}
	return false
}

// Validate checks that the bar is usable as a price observation.
func (c Candle) Validate() error {
	if c.Time.IsZero() {
		return fmt.Errorf("candle %s: missing time", c.Symbol)
	}
	if c.Close <= 0 {
		return fmt.Errorf("candle %s at %s: non-positive close %v", c.Symbol, c.Time.Format(time.DateOnly), c.Close)
	}
	return nil
}
