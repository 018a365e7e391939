// Package adapters はindicatorsフィーチャーの外部データソースへのアダプターを提供します。
package adapters

import (
	"context"
	"fmt"
	"sort"
	"time"

	candleentity "tradeiq/internal/feature/candles/domain/entity"
	"tradeiq/internal/feature/indicators/domain"
	"tradeiq/internal/feature/indicators/domain/entity"
	"tradeiq/internal/feature/indicators/usecase"
)

// DailyInterval はダッシュボードが扱う時間足です。
const DailyInterval = "1day"

// CandleReader はローソク足を読み出すデータソースです（DBストア、外部API、キャッシュ付きのいずれか）。
type CandleReader interface {
	Find(ctx context.Context, symbol, interval string, outputsize int) ([]candleentity.Candle, error)
}

// CandleReaderFunc は関数をCandleReaderとして扱うためのアダプターです。
// 例: CandleReaderFunc(market.GetTimeSeries)
type CandleReaderFunc func(ctx context.Context, symbol, interval string, outputsize int) ([]candleentity.Candle, error)

// Find はf(ctx, symbol, interval, outputsize)を呼び出します。
func (f CandleReaderFunc) Find(ctx context.Context, symbol, interval string, outputsize int) ([]candleentity.Candle, error) {
	return f(ctx, symbol, interval, outputsize)
}

// CandleSeriesFetcher はローソク足を直近days日分の終値系列に変換するSeriesFetcher実装です。
type CandleSeriesFetcher struct {
	reader CandleReader
	now    func() time.Time
}

var _ usecase.SeriesFetcher = (*CandleSeriesFetcher)(nil)

// NewCandleSeriesFetcher は指定されたデータソースでCandleSeriesFetcherを生成します。
func NewCandleSeriesFetcher(reader CandleReader) *CandleSeriesFetcher {
	return &CandleSeriesFetcher{reader: reader, now: time.Now}
}

// FetchSeries はデータソースから日足を取得し、昇順に並べ替えて対象期間で絞り込みます。
// 取得に関する失敗はすべて*domain.FetchErrorとして返します。
func (f *CandleSeriesFetcher) FetchSeries(ctx context.Context, symbol string, days int) (entity.PriceSeries, error) {
	if days <= 0 {
		return entity.PriceSeries{}, fmt.Errorf("%w: days must be positive, got %d", domain.ErrInvalidParameter, days)
	}

	// 営業日数は暦日数以下なので、days件取得すれば期間をカバーできる
	candles, err := f.reader.Find(ctx, symbol, DailyInterval, days)
	if err != nil {
		return entity.PriceSeries{}, &domain.FetchError{Symbol: symbol, Err: err}
	}

	start := f.now().AddDate(0, 0, -days)
	sorted := make([]candleentity.Candle, len(candles))
	copy(sorted, candles)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })

	points := make([]entity.PricePoint, 0, len(sorted))
	for _, c := range sorted {
		if c.Time.Before(start) {
			continue
		}
		points = append(points, entity.PricePoint{Time: c.Time, Close: c.Close})
	}
	if len(points) == 0 {
		return entity.PriceSeries{}, &domain.FetchError{Symbol: symbol, Err: domain.ErrNoData}
	}

	series, err := entity.NewPriceSeries(symbol, points)
	if err != nil {
		return entity.PriceSeries{}, &domain.FetchError{Symbol: symbol, Err: err}
	}
	return series, nil
}
