// Package dto defines data transfer objects for the candles HTTP API.
package dto

import (
	openapi_types "github.com/oapi-codegen/runtime/types"

	"tradeiq/internal/feature/candles/domain/entity"
)

// CandleResponse はロウソク足データのレスポンスDTOです。
type CandleResponse struct {
	Time   openapi_types.Date `json:"time"`   // 日付 (YYYY-MM-DD)
	Open   float64            `json:"open"`   // 始値
	High   float64            `json:"high"`   // 高値
	Low    float64            `json:"low"`    // 安値
	Close  float64            `json:"close"`  // 終値
	Volume int64              `json:"volume"` // 出来高
}

// ErrorResponse は共通のエラーレスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewCandleResponses はエンティティをレスポンスDTOに変換します。
func NewCandleResponses(candles []entity.Candle) []CandleResponse {
	out := make([]CandleResponse, 0, len(candles))
	for _, x := range candles {
		out = append(out, CandleResponse{
			Time:   openapi_types.Date{Time: x.Time.UTC()},
			Open:   x.Open,
			High:   x.High,
			Low:    x.Low,
			Close:  x.Close,
			Volume: x.Volume,
		})
	}
	return out
}
