package entity_test

import (
	"math"
	"testing"

	"github.com/guregu/null/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeiq/internal/feature/indicators/domain"
	"tradeiq/internal/feature/indicators/domain/entity"
)

func alignedRSI(s entity.PriceSeries) entity.RSISeries {
	out := entity.RSISeries{Period: 14, Points: make([]entity.RSIPoint, s.Len())}
	for i := range out.Points {
		out.Points[i] = entity.RSIPoint{Time: s.At(i).Time}
	}
	return out
}

func alignedMACD(s entity.PriceSeries) entity.MACDSeries {
	out := entity.MACDSeries{Fast: 12, Slow: 26, Signal: 9, Points: make([]entity.MACDPoint, s.Len())}
	for i := range out.Points {
		out.Points[i] = entity.MACDPoint{Time: s.At(i).Time, MACD: null.FloatFrom(0), Signal: null.FloatFrom(0)}
	}
	return out
}

func TestAssemble(t *testing.T) {
	t.Parallel()

	s, err := entity.NewPriceSeries("AAPL", points(10, 11, 12))
	require.NoError(t, err)

	t.Run("success: aligned series", func(t *testing.T) {
		t.Parallel()

		r, err := entity.Assemble(s, alignedRSI(s), alignedMACD(s))
		require.NoError(t, err)
		assert.Equal(t, 3, r.Len())
		assert.Equal(t, 3, r.RSI.Len())
		assert.Equal(t, 3, r.MACD.Len())
	})

	t.Run("error: rsi length mismatch", func(t *testing.T) {
		t.Parallel()

		rsi := alignedRSI(s)
		rsi.Points = rsi.Points[:2]
		_, err := entity.Assemble(s, rsi, alignedMACD(s))
		assert.ErrorIs(t, err, domain.ErrAlignment)
	})

	t.Run("error: macd length mismatch", func(t *testing.T) {
		t.Parallel()

		macd := alignedMACD(s)
		macd.Points = append(macd.Points, entity.MACDPoint{})
		_, err := entity.Assemble(s, alignedRSI(s), macd)
		assert.ErrorIs(t, err, domain.ErrAlignment)
	})

	t.Run("error: timestamp mismatch", func(t *testing.T) {
		t.Parallel()

		rsi := alignedRSI(s)
		rsi.Points[1].Time = rsi.Points[1].Time.AddDate(0, 0, 7)
		_, err := entity.Assemble(s, rsi, alignedMACD(s))
		assert.ErrorIs(t, err, domain.ErrAlignment)
	})
}

// TestIndicatorReport_Summary は現在値・前回値・変化額・変化率の計算を検証します。
func TestIndicatorReport_Summary(t *testing.T) {
	t.Parallel()

	s, err := entity.NewPriceSeries("AAPL", points(100, 95, 100))
	require.NoError(t, err)
	r, err := entity.Assemble(s, alignedRSI(s), alignedMACD(s))
	require.NoError(t, err)

	sum, err := r.Summary()
	require.NoError(t, err)
	assert.Equal(t, 100.0, sum.Latest)
	assert.Equal(t, 95.0, sum.Previous)
	assert.Equal(t, 5.0, sum.Change)
	// 変化率は最新値に対する比率
	assert.InDelta(t, 0.05, sum.ChangeRatio, 1e-12)
	assert.True(t, sum.Time.Equal(s.At(2).Time))

	latest, err := r.LatestPrice()
	require.NoError(t, err)
	assert.Equal(t, 100.0, latest)
	prev, err := r.PreviousPrice()
	require.NoError(t, err)
	assert.Equal(t, 95.0, prev)
}

// TestIndicatorReport_SummaryInsufficientData は1点のみの系列でErrInsufficientDataが返ることを検証します。
func TestIndicatorReport_SummaryInsufficientData(t *testing.T) {
	t.Parallel()

	s, err := entity.NewPriceSeries("AAPL", points(100))
	require.NoError(t, err)
	r, err := entity.Assemble(s, alignedRSI(s), alignedMACD(s))
	require.NoError(t, err)

	_, err = r.Summary()
	assert.ErrorIs(t, err, domain.ErrInsufficientData)
	_, err = r.LatestPrice()
	assert.ErrorIs(t, err, domain.ErrInsufficientData)
}

func TestMACDSeries_WarmUp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 33, entity.MACDSeries{Fast: 12, Slow: 26, Signal: 9}.WarmUp())
	assert.Equal(t, 0, entity.MACDSeries{}.WarmUp())
	// 上限付近のspanでも負値に折り返さない
	assert.Equal(t, math.MaxInt, entity.MACDSeries{Fast: 1, Slow: math.MaxInt, Signal: math.MaxInt}.WarmUp())
}
