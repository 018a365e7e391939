package calculator

import (
	"fmt"

	"github.com/guregu/null/v6"

	"tradeiq/internal/feature/indicators/domain"
	"tradeiq/internal/feature/indicators/domain/entity"
)

// MACDParams are the EMA spans of the MACD computation.
type MACDParams struct {
	Fast   int
	Slow   int
	Signal int
}

// DefaultMACDParams returns the conventional 12/26/9 spans.
func DefaultMACDParams() MACDParams {
	return MACDParams{Fast: 12, Slow: 26, Signal: 9}
}

// Validate checks 1 <= Fast < Slow and Signal >= 1.
func (p MACDParams) Validate() error {
	if p.Fast < 1 || p.Slow < 1 || p.Signal < 1 {
		return fmt.Errorf("%w: macd spans must be >= 1, got %d/%d/%d", domain.ErrInvalidParameter, p.Fast, p.Slow, p.Signal)
	}
	if p.Fast >= p.Slow {
		return fmt.Errorf("%w: macd fast span %d must be below slow span %d", domain.ErrInvalidParameter, p.Fast, p.Slow)
	}
	return nil
}

// MACD computes the MACD line (fast EMA - slow EMA), its signal line (EMA of MACD)
// and the histogram (MACD - signal).
//
// Values are emitted from the first sample. Series shorter than Slow still get
// values; callers wanting conventional stability should start at WarmUp().
func MACD(series entity.PriceSeries, params MACDParams) (entity.MACDSeries, error) {
	if err := params.Validate(); err != nil {
		return entity.MACDSeries{}, err
	}

	closes := series.Closes()
	fast, err := EMA(closes, params.Fast)
	if err != nil {
		return entity.MACDSeries{}, err
	}
	slow, err := EMA(closes, params.Slow)
	if err != nil {
		return entity.MACDSeries{}, err
	}

	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = fast[i] - slow[i]
	}
	signal, err := EMA(line, params.Signal)
	if err != nil {
		return entity.MACDSeries{}, err
	}

	out := entity.MACDSeries{
		Fast:   params.Fast,
		Slow:   params.Slow,
		Signal: params.Signal,
		Points: make([]entity.MACDPoint, len(closes)),
	}
	for i := range closes {
		out.Points[i] = entity.MACDPoint{
			Time:      series.At(i).Time,
			MACD:      null.FloatFrom(line[i]),
			Signal:    null.FloatFrom(signal[i]),
			Histogram: null.FloatFrom(line[i] - signal[i]),
		}
	}
	return out, nil
}
