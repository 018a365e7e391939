// Package dto defines data transfer objects for the indicators HTTP API.
package dto

import (
	"github.com/guregu/null/v6"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"tradeiq/internal/feature/indicators/domain/entity"
)

// RSI guide levels drawn on the RSI chart.
const (
	RSIOverbought = 70
	RSIOversold   = 30
)

// ReportResponse is the aligned price/RSI/MACD payload consumed by the chart renderer.
type ReportResponse struct {
	Symbol  string           `json:"symbol"`
	RSI     RSIMeta          `json:"rsi"`
	MACD    MACDMeta         `json:"macd"`
	Points  []ReportPoint    `json:"points"`
	Summary *SummaryResponse `json:"summary"`
}

// RSIMeta describes the RSI parameters and its guide lines.
type RSIMeta struct {
	Period     int `json:"period"`
	Overbought int `json:"overbought"`
	Oversold   int `json:"oversold"`
}

// MACDMeta describes the MACD spans and the first conventionally stable index.
type MACDMeta struct {
	Fast   int `json:"fast"`
	Slow   int `json:"slow"`
	Signal int `json:"signal"`
	WarmUp int `json:"warm_up"`
}

// ReportPoint is one row of the aligned report. Undefined values encode as null.
type ReportPoint struct {
	Date      openapi_types.Date `json:"date"`
	Close     float64            `json:"close"`
	RSI       null.Float         `json:"rsi"`
	MACD      null.Float         `json:"macd"`
	Signal    null.Float         `json:"signal"`
	Histogram null.Float         `json:"histogram"`
}

// SummaryResponse is the current price metric with display strings.
type SummaryResponse struct {
	Date         openapi_types.Date `json:"date"`
	Latest       float64            `json:"latest"`
	Previous     float64            `json:"previous"`
	Change       float64            `json:"change"`
	ChangeRatio  float64            `json:"change_ratio"`
	DisplayPrice string             `json:"display_price"` // e.g. "$105.00"
	DisplayDelta string             `json:"display_delta"` // e.g. "5.00 (4.76%)"
}

// ErrorResponse is the common error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewReportResponse converts a report into its wire form.
// summary may be nil when the series has fewer than two points.
func NewReportResponse(r entity.IndicatorReport, summary *entity.PriceSummary) ReportResponse {
	out := ReportResponse{
		Symbol: r.Series.Symbol(),
		RSI: RSIMeta{
			Period:     r.RSI.Period,
			Overbought: RSIOverbought,
			Oversold:   RSIOversold,
		},
		MACD: MACDMeta{
			Fast:   r.MACD.Fast,
			Slow:   r.MACD.Slow,
			Signal: r.MACD.Signal,
			WarmUp: r.MACD.WarmUp(),
		},
		Points: make([]ReportPoint, 0, r.Len()),
	}
	for i := 0; i < r.Len(); i++ {
		p := r.Series.At(i)
		m := r.MACD.Points[i]
		out.Points = append(out.Points, ReportPoint{
			Date:      openapi_types.Date{Time: p.Time},
			Close:     p.Close,
			RSI:       r.RSI.Points[i].Value,
			MACD:      m.MACD,
			Signal:    m.Signal,
			Histogram: m.Histogram,
		})
	}
	if summary != nil {
		s := NewSummaryResponse(*summary)
		out.Summary = &s
	}
	return out
}

// NewSummaryResponse converts a price summary, formatting money and percentage with two decimals.
func NewSummaryResponse(s entity.PriceSummary) SummaryResponse {
	change := decimal.NewFromFloat(s.Change)
	pct := decimal.NewFromFloat(s.ChangeRatio).Mul(decimal.NewFromInt(100))
	return SummaryResponse{
		Date:         openapi_types.Date{Time: s.Time},
		Latest:       s.Latest,
		Previous:     s.Previous,
		Change:       s.Change,
		ChangeRatio:  s.ChangeRatio,
		DisplayPrice: "$" + decimal.NewFromFloat(s.Latest).StringFixed(2),
		DisplayDelta: change.StringFixed(2) + " (" + pct.StringFixed(2) + "%)",
	}
}
