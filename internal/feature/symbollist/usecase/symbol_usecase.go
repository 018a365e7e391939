// Package usecase implements the watchlist operations.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"tradeiq/internal/feature/symbollist/domain/entity"
)

// SymbolRepository abstracts the persistence layer for watchlist symbols.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	ListActive(ctx context.Context, market string) ([]entity.Symbol, error)
	ListActiveCodes(ctx context.Context) ([]string, error)
	UpsertAll(ctx context.Context, symbols []entity.Symbol) error
}

// SymbolUsecase provides watchlist operations.
type SymbolUsecase struct {
	repo SymbolRepository
}

// NewSymbolUsecase creates a new SymbolUsecase with the given repository.
func NewSymbolUsecase(r SymbolRepository) *SymbolUsecase {
	return &SymbolUsecase{repo: r}
}

// ListActiveSymbols はアクティブな銘柄を返します。marketは大文字小文字を区別しません。
func (u *SymbolUsecase) ListActiveSymbols(ctx context.Context, market string) ([]entity.Symbol, error) {
	return u.repo.ListActive(ctx, strings.ToUpper(strings.TrimSpace(market)))
}

// ActiveCodes はインジェスト対象となる銘柄コードを返します。
func (u *SymbolUsecase) ActiveCodes(ctx context.Context) ([]string, error) {
	return u.repo.ListActiveCodes(ctx)
}

// Seed は銘柄を正規化して一括登録し、登録件数を返します。
// SortKeyが未指定(0)の銘柄には入力順の位置(1始まり)を割り当てます。
func (u *SymbolUsecase) Seed(ctx context.Context, symbols []entity.Symbol) (int, error) {
	out := make([]entity.Symbol, 0, len(symbols))
	seen := make(map[string]struct{}, len(symbols))
	for i, s := range symbols {
		if err := s.Normalize(); err != nil {
			return 0, fmt.Errorf("seed entry %d: %w", i, err)
		}
		if _, dup := seen[s.Code]; dup {
			return 0, fmt.Errorf("seed entry %d: duplicate code %s", i, s.Code)
		}
		seen[s.Code] = struct{}{}
		if s.SortKey == 0 {
			s.SortKey = i + 1
		}
		out = append(out, s)
	}
	if err := u.repo.UpsertAll(ctx, out); err != nil {
		return 0, err
	}
	return len(out), nil
}
