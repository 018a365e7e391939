package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/guregu/null/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeiq/internal/feature/indicators/domain/entity"
)

// TestNewSummaryResponse_Display は現在値と変化の表示文字列が小数2桁で整形されることを検証します。
func TestNewSummaryResponse_Display(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		summary   entity.PriceSummary
		wantPrice string
		wantDelta string
	}{
		{
			name:      "gain",
			summary:   entity.PriceSummary{Latest: 105, Previous: 100, Change: 5, ChangeRatio: 5.0 / 105},
			wantPrice: "$105.00",
			wantDelta: "5.00 (4.76%)",
		},
		{
			name:      "loss",
			summary:   entity.PriceSummary{Latest: 64123.456, Previous: 65000, Change: -876.544, ChangeRatio: -876.544 / 64123.456},
			wantPrice: "$64123.46",
			wantDelta: "-876.54 (-1.37%)",
		},
		{
			name:      "unchanged",
			summary:   entity.PriceSummary{Latest: 10, Previous: 10},
			wantPrice: "$10.00",
			wantDelta: "0.00 (0.00%)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NewSummaryResponse(tt.summary)
			assert.Equal(t, tt.wantPrice, got.DisplayPrice)
			assert.Equal(t, tt.wantDelta, got.DisplayDelta)
		})
	}
}

// TestNewReportResponse_JSON は日付の形式と未定義値がnullとしてエンコードされることを検証します。
func TestNewReportResponse_JSON(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	s, err := entity.NewPriceSeries("AAPL", []entity.PricePoint{{Time: t0, Close: 10}})
	require.NoError(t, err)
	r, err := entity.Assemble(s,
		entity.RSISeries{Period: 14, Points: []entity.RSIPoint{{Time: t0}}},
		entity.MACDSeries{Fast: 12, Slow: 26, Signal: 9, Points: []entity.MACDPoint{
			{Time: t0, MACD: null.FloatFrom(0), Signal: null.FloatFrom(0), Histogram: null.FloatFrom(0)},
		}},
	)
	require.NoError(t, err)

	b, err := json.Marshal(NewReportResponse(r, nil))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"symbol": "AAPL",
		"rsi": {"period": 14, "overbought": 70, "oversold": 30},
		"macd": {"fast": 12, "slow": 26, "signal": 9, "warm_up": 33},
		"points": [{"date": "2024-01-02", "close": 10, "rsi": null, "macd": 0, "signal": 0, "histogram": 0}],
		"summary": null
	}`, string(b))
}
