// Package dto defines the Yahoo Finance chart API response payloads.
package dto

// ChartResponse is the JSON body of /v8/finance/chart/{symbol}.
// Quote arrays are index-aligned with Timestamp; holidays and gaps appear as null.
type ChartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *ChartError   `json:"error"`
	} `json:"chart"`
}

// ChartResult is the series for one symbol.
type ChartResult struct {
	Meta struct {
		Symbol   string `json:"symbol"`
		Currency string `json:"currency"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []Quote `json:"quote"`
	} `json:"indicators"`
}

// Quote holds OHLCV columns.
type Quote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

// ChartError is set when Yahoo rejects the request (e.g. unknown symbol).
type ChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
