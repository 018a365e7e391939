package calculator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tradeiq/internal/feature/indicators/domain/entity"
)

var baseTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// newSeries は終値のスライスから日足のPriceSeriesを生成します。
func newSeries(t *testing.T, closes ...float64) entity.PriceSeries {
	t.Helper()

	points := make([]entity.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = entity.PricePoint{Time: baseTime.AddDate(0, 0, i), Close: c}
	}
	s, err := entity.NewPriceSeries("TEST", points)
	require.NoError(t, err)
	return s
}

// linear は start から step ずつ変化する n 個の終値を返します。
func linear(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}
