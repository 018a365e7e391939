// Package adapters implements candle persistence with gorm.
package adapters

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tradeiq/internal/feature/candles/domain/entity"
	"tradeiq/internal/feature/candles/usecase"
)

// upsertBatchSize bounds the number of rows per INSERT statement.
const upsertBatchSize = 500

// CandleStore persists candles in a relational database (Postgres or SQLite).
type CandleStore struct {
	db *gorm.DB
}

var (
	_ usecase.CandleRepository = (*CandleStore)(nil)
	_ usecase.CandleWriter     = (*CandleStore)(nil)
)

// NewCandleStore returns a store backed by db.
func NewCandleStore(db *gorm.DB) *CandleStore {
	return &CandleStore{db: db}
}

// CandleModel is the table row for a candle. (symbol, interval, time) is unique.
type CandleModel struct {
	ID       uint      `gorm:"primaryKey"`
	Symbol   string    `gorm:"size:32;not null;uniqueIndex:candle_sym_int_time,priority:1"`
	Interval string    `gorm:"size:16;not null;uniqueIndex:candle_sym_int_time,priority:2"`
	Time     time.Time `gorm:"not null;uniqueIndex:candle_sym_int_time,priority:3"`

	Open   float64 `gorm:"not null"`
	High   float64 `gorm:"not null"`
	Low    float64 `gorm:"not null"`
	Close  float64 `gorm:"not null"`
	Volume int64   `gorm:"not null;default:0"`
}

func (CandleModel) TableName() string {
	return "candles"
}

// Migrate creates or updates the candles table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&CandleModel{}); err != nil {
		return fmt.Errorf("migrate candles: %w", err)
	}
	return nil
}

func toModel(e entity.Candle) CandleModel {
	return CandleModel{
		Symbol:   e.Symbol,
		Interval: e.Interval,
		Time:     e.Time.UTC(),
		Open:     e.Open,
		High:     e.High,
		Low:      e.Low,
		Close:    e.Close,
		Volume:   e.Volume,
	}
}

func toEntity(m CandleModel) entity.Candle {
	return entity.Candle{
		Symbol:   m.Symbol,
		Interval: m.Interval,
		Time:     m.Time.UTC(),
		Open:     m.Open,
		High:     m.High,
		Low:      m.Low,
		Close:    m.Close,
		Volume:   m.Volume,
	}
}

// UpsertBatch inserts candles, overwriting OHLCV of rows that already exist.
func (s *CandleStore) UpsertBatch(ctx context.Context, candles []entity.Candle) error {
	if len(candles) == 0 {
		return nil
	}
	ms := make([]CandleModel, 0, len(candles))
	for _, e := range candles {
		ms = append(ms, toModel(e))
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "interval"}, {Name: "time"}},
		DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "volume"}),
	}).CreateInBatches(&ms, upsertBatchSize).Error
	if err != nil {
		return fmt.Errorf("upsert %d candles: %w", len(ms), err)
	}
	return nil
}

// Find returns up to outputsize of the most recent candles, newest first.
// outputsize <= 0 returns every stored candle.
func (s *CandleStore) Find(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error) {
	var rows []CandleModel
	q := s.db.WithContext(ctx).
		Where(&CandleModel{Symbol: symbol, Interval: interval}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "time"}, Desc: true})
	if outputsize > 0 {
		q = q.Limit(outputsize)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find candles %s/%s: %w", symbol, interval, err)
	}
	out := make([]entity.Candle, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}
