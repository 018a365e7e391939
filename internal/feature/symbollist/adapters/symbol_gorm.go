// Package adapters はsymbollistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"fmt"

	"tradeiq/internal/feature/symbollist/domain/entity"
	"tradeiq/internal/feature/symbollist/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SymbolStore はSymbolRepositoryのgorm実装です。PostgresとSQLiteの両方で動作します。
type SymbolStore struct {
	db *gorm.DB
}

var _ usecase.SymbolRepository = (*SymbolStore)(nil)

// NewSymbolStore は指定されたDB接続でSymbolStoreを生成します。
func NewSymbolStore(db *gorm.DB) *SymbolStore {
	return &SymbolStore{db: db}
}

// Migrate はsymbolsテーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entity.Symbol{}); err != nil {
		return fmt.Errorf("migrate symbols: %w", err)
	}
	return nil
}

// ListActive はsort_key順(同順位はcode順)にアクティブな銘柄を返します。
// marketが空でなければその市場に絞り込みます。
func (r *SymbolStore) ListActive(ctx context.Context, market string) ([]entity.Symbol, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if market != "" {
		q = q.Where("market = ?", market)
	}
	var symbols []entity.Symbol
	if err := q.Order("sort_key ASC").Order("code ASC").Find(&symbols).Error; err != nil {
		return nil, fmt.Errorf("list active symbols: %w", err)
	}
	return symbols, nil
}

// ListActiveCodes はsort_key順にアクティブな銘柄のコードのみを返します。
func (r *SymbolStore) ListActiveCodes(ctx context.Context) ([]string, error) {
	var codes []string
	if err := r.db.WithContext(ctx).
		Model(&entity.Symbol{}).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Order("code ASC").
		Pluck("code", &codes).Error; err != nil {
		return nil, fmt.Errorf("list active codes: %w", err)
	}
	return codes, nil
}

// UpsertAll はcodeをキーに銘柄を一括で登録・更新します。
func (r *SymbolStore) UpsertAll(ctx context.Context, symbols []entity.Symbol) error {
	if len(symbols) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "market", "is_active", "sort_key", "updated_at"}),
		}).
		Create(&symbols).Error
	if err != nil {
		return fmt.Errorf("upsert symbols: %w", err)
	}
	return nil
}
