// Package calculator computes technical indicators over a PriceSeries.
// Every function is pure: it reads the series and returns a new aligned result.
package calculator

import (
	"fmt"

	"github.com/guregu/null/v6"

	"tradeiq/internal/feature/indicators/domain"
	"tradeiq/internal/feature/indicators/domain/entity"
)

// DefaultRSIPeriod is the conventional Wilder lookback.
const DefaultRSIPeriod = 14

// RSI computes the Wilder-smoothed Relative Strength Index.
//
// The first period points are null. A series shorter than period+1 yields an
// all-null series of the same length rather than an error.
// Flat prices (no gains, no losses) give 50; no losses give 100.
func RSI(series entity.PriceSeries, period int) (entity.RSISeries, error) {
	if period < 1 {
		return entity.RSISeries{}, fmt.Errorf("%w: rsi period must be >= 1, got %d", domain.ErrInvalidParameter, period)
	}

	n := series.Len()
	out := entity.RSISeries{Period: period, Points: make([]entity.RSIPoint, n)}
	for i := 0; i < n; i++ {
		out.Points[i].Time = series.At(i).Time
	}
	if n <= period {
		return out, nil
	}

	p := float64(period)
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		gain, loss := split(series.At(i).Close - series.At(i-1).Close)
		avgGain += gain
		avgLoss += loss
	}
	avgGain /= p
	avgLoss /= p
	out.Points[period].Value = null.FloatFrom(rsiValue(avgGain, avgLoss))

	for i := period + 1; i < n; i++ {
		gain, loss := split(series.At(i).Close - series.At(i-1).Close)
		avgGain = (avgGain*(p-1) + gain) / p
		avgLoss = (avgLoss*(p-1) + loss) / p
		out.Points[i].Value = null.FloatFrom(rsiValue(avgGain, avgLoss))
	}
	return out, nil
}

// split separates a price delta into its gain and loss parts, both non-negative.
func split(delta float64) (gain, loss float64) {
	if delta > 0 {
		return delta, 0
	}
	return 0, -delta
}

func rsiValue(avgGain, avgLoss float64) float64 {
	switch {
	case avgGain == 0 && avgLoss == 0:
		return 50
	case avgLoss == 0:
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
