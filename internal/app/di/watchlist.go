package di

import (
	"tradeiq/internal/feature/symbollist/domain/entity"
	"tradeiq/internal/platform/config"
)

// SymbolsFromWatchlist converts watchlist file entries into symbols in file order.
func SymbolsFromWatchlist(w *config.Watchlist) []entity.Symbol {
	if w == nil {
		return nil
	}
	out := make([]entity.Symbol, 0, len(w.Symbols))
	for i, e := range w.Symbols {
		out = append(out, entity.Symbol{
			Code:     e.Code,
			Name:     e.Name,
			Market:   e.Market,
			IsActive: e.IsActive(),
			SortKey:  i + 1,
		})
	}
	return out
}
