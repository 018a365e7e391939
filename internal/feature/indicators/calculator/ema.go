package calculator

import (
	"fmt"

	"tradeiq/internal/feature/indicators/domain"
)

// EMA returns the exponential moving average of values with the given span.
// It is seeded with the first value (no warm-up), k = 2/(span+1).
func EMA(values []float64, span int) ([]float64, error) {
	if span < 1 {
		return nil, fmt.Errorf("%w: ema span must be >= 1, got %d", domain.ErrInvalidParameter, span)
	}
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out, nil
	}
	k := 2 / (float64(span) + 1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = values[i]*k + out[i-1]*(1-k)
	}
	return out, nil
}
