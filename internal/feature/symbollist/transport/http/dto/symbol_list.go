// Package dto defines data transfer objects for the symbollist HTTP API.
package dto

import "tradeiq/internal/feature/symbollist/domain/entity"

// SymbolItem is one watchlist entry in the API response.
type SymbolItem struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Market string `json:"market,omitempty"`
}

// ErrorResponse is the error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewSymbolItems converts entities, always returning a non-nil slice.
func NewSymbolItems(symbols []entity.Symbol) []SymbolItem {
	out := make([]SymbolItem, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, SymbolItem{Code: s.Code, Name: s.Name, Market: s.Market})
	}
	return out
}
