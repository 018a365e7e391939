package entity

import (
	"fmt"
	"time"

	"tradeiq/internal/feature/indicators/domain"
)

// IndicatorReport bundles a price series with its RSI and MACD series.
// All three share length and timestamps at every index.
type IndicatorReport struct {
	Series PriceSeries
	RSI    RSISeries
	MACD   MACDSeries
}

// PriceSummary is the current-price view: latest close and its change from the previous close.
type PriceSummary struct {
	Time        time.Time // Timestamp of the latest close
	Latest      float64
	Previous    float64
	Change      float64 // Latest - Previous
	ChangeRatio float64 // Change / Latest
}

// Assemble checks that rsi and macd are aligned with series and bundles them.
// A mismatch is an internal consistency failure reported as domain.ErrAlignment.
func Assemble(series PriceSeries, rsi RSISeries, macd MACDSeries) (IndicatorReport, error) {
	n := series.Len()
	if rsi.Len() != n {
		return IndicatorReport{}, fmt.Errorf("%w: rsi has %d points, series has %d", domain.ErrAlignment, rsi.Len(), n)
	}
	if macd.Len() != n {
		return IndicatorReport{}, fmt.Errorf("%w: macd has %d points, series has %d", domain.ErrAlignment, macd.Len(), n)
	}
	for i := 0; i < n; i++ {
		ts := series.At(i).Time
		if !rsi.Points[i].Time.Equal(ts) {
			return IndicatorReport{}, fmt.Errorf("%w: rsi timestamp mismatch at index %d", domain.ErrAlignment, i)
		}
		if !macd.Points[i].Time.Equal(ts) {
			return IndicatorReport{}, fmt.Errorf("%w: macd timestamp mismatch at index %d", domain.ErrAlignment, i)
		}
	}
	return IndicatorReport{Series: series, RSI: rsi, MACD: macd}, nil
}

// Len returns the shared length of the three series.
func (r IndicatorReport) Len() int { return r.Series.Len() }

// LatestPrice returns series[-1].
func (r IndicatorReport) LatestPrice() (float64, error) { return r.Series.LatestPrice() }

// PreviousPrice returns series[-2].
func (r IndicatorReport) PreviousPrice() (float64, error) { return r.Series.PreviousPrice() }

// Summary computes the latest price and its change against the previous close.
func (r IndicatorReport) Summary() (PriceSummary, error) {
	return SummarizeSeries(r.Series)
}

// SummarizeSeries computes the PriceSummary of a series with at least two points.
func SummarizeSeries(s PriceSeries) (PriceSummary, error) {
	latest, err := s.LatestPrice()
	if err != nil {
		return PriceSummary{}, err
	}
	prev, err := s.PreviousPrice()
	if err != nil {
		return PriceSummary{}, err
	}
	change := latest - prev
	var ratio float64
	if latest != 0 {
		ratio = change / latest
	}
	return PriceSummary{
		Time:        s.At(s.Len() - 1).Time,
		Latest:      latest,
		Previous:    prev,
		Change:      change,
		ChangeRatio: ratio,
	}, nil
}
