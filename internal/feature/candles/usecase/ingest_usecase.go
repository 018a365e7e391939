package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"tradeiq/internal/feature/candles/domain/entity"
)

const (
	ingestOutputSize = 400 // 1回のリクエストで取得するデータ件数（日足で最大期間365日をカバー）
)

// ingestIntervals はデータ取得の対象となる時間足のリストです。
var ingestIntervals = []string{entity.IntervalDay, entity.IntervalWeek, entity.IntervalMonth}

// MarketRepository は株価データを取得するリポジトリのインターフェイスです。
// 外部 API の実装を抽象化します。
type MarketRepository interface {
	GetTimeSeries(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error)
}

// CandleWriter はローソク足データを永続化するレイヤーを抽象化します。
type CandleWriter interface {
	UpsertBatch(ctx context.Context, candles []entity.Candle) error
}

// Limiter は外部APIの呼び出し頻度を制限します。
type Limiter interface {
	Wait(ctx context.Context) error
}

// IngestSummary は取り込み結果の集計です。
type IngestSummary struct {
	Succeeded int // 成功した (銘柄, 時間足) の数
	Failed    int // 失敗した (銘柄, 時間足) の数
	Candles   int // 保存したローソク足の件数
}

// IngestUsecase は外部APIからデータを取得し、データベースに永続化するユースケースを定義します。
type IngestUsecase struct {
	market  MarketRepository
	candle  CandleWriter
	limiter Limiter
}

// NewIngestUsecase は新しい IngestUsecase を作成します。
func NewIngestUsecase(market MarketRepository, candle CandleWriter, limiter Limiter) *IngestUsecase {
	return &IngestUsecase{market: market, candle: candle, limiter: limiter}
}

// ingestOne は指定された銘柄と時間足の時系列データを外部リポジトリから取得し、
// 有効なものだけをデータベースに一括で挿入（または更新）します。
func (iu *IngestUsecase) ingestOne(ctx context.Context, symbol, interval string, outputsize int) (int, error) {
	cs, err := iu.market.GetTimeSeries(ctx, symbol, interval, outputsize)
	if err != nil {
		return 0, fmt.Errorf("fetch %s/%s: %w", symbol, interval, err)
	}

	// 取得したデータに銘柄コードと時間足を設定し、欠損バーを除外
	valid := make([]entity.Candle, 0, len(cs))
	for _, c := range cs {
		c.Symbol = symbol
		c.Interval = interval
		if err := c.Validate(); err != nil {
			slog.Warn("skipping invalid candle", "error", err)
			continue
		}
		valid = append(valid, c)
	}
	if err := iu.candle.UpsertBatch(ctx, valid); err != nil {
		return 0, fmt.Errorf("store %s/%s: %w", symbol, interval, err)
	}
	return len(valid), nil
}

// IngestAll は指定された全銘柄の時系列データを複数の時間足（日足, 週足, 月足）で取得し、
// データベースに永続化します。APIのレートリミットを考慮して、リクエスト間に待機します。
// 個別の失敗はログに出力して処理を続けます。エラーを返すのはコンテキストが終了した場合のみです。
func (iu *IngestUsecase) IngestAll(ctx context.Context, symbols []string) (IngestSummary, error) {
	var sum IngestSummary
	for _, s := range symbols {
		for _, interval := range ingestIntervals {
			if err := iu.limiter.Wait(ctx); err != nil {
				return sum, err
			}
			n, err := iu.ingestOne(ctx, s, interval, ingestOutputSize)
			if err != nil {
				if ctx.Err() != nil {
					return sum, ctx.Err()
				}
				sum.Failed++
				slog.Error("failed to ingest data", "symbol", s, "interval", interval, "error", err)
				continue
			}
			sum.Succeeded++
			sum.Candles += n
		}
	}
	slog.Info("ingest finished", "symbols", len(symbols), "succeeded", sum.Succeeded, "failed", sum.Failed, "candles", sum.Candles)
	return sum, nil
}
