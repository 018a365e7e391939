// Package dto defines the Twelve Data API response payloads.
package dto

// TimeSeriesResponse is the JSON body of the time_series endpoint.
// Values are newest first and every number is encoded as a string.
type TimeSeriesResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Meta    Meta        `json:"meta"`
	Values  []ValueItem `json:"values"`
}

// Meta describes the returned series.
type Meta struct {
	Symbol   string `json:"symbol"`
	Interval string `json:"interval"`
	Currency string `json:"currency,omitempty"`
}

// ValueItem is one bar. Volume is absent for some asset classes such as forex.
type ValueItem struct {
	Datetime string `json:"datetime"`
	Open     string `json:"open"`
	High     string `json:"high"`
	Low      string `json:"low"`
	Close    string `json:"close"`
	Volume   string `json:"volume,omitempty"`
}
