// Package usecase はテクニカル指標レポート生成のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"tradeiq/internal/feature/indicators/calculator"
	"tradeiq/internal/feature/indicators/domain"
	"tradeiq/internal/feature/indicators/domain/entity"
)

const (
	// DefaultDays はレポート対象期間（暦日）のデフォルト値です。
	DefaultDays = 90
	// MinDays はレポート対象期間の下限です。
	MinDays = 30
	// MaxDays はレポート対象期間の上限です。
	MaxDays = 365
)

// SeriesFetcher は銘柄の終値系列を取得する外部コラボレーターです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type SeriesFetcher interface {
	// FetchSeries は直近days日分の終値系列を時系列昇順で返します。
	FetchSeries(ctx context.Context, symbol string, days int) (entity.PriceSeries, error)
}

// ComputeObserver は指標計算の所要時間とレポート生成結果を記録します。
type ComputeObserver interface {
	ObserveCompute(indicator string, d time.Duration)
	IncReport(result string)
}

// ReportQuery はレポート生成の入力パラメータです。ゼロ値はデフォルトに置き換えられます。
type ReportQuery struct {
	Symbol    string
	Days      int
	RSIPeriod int
	MACD      calculator.MACDParams
}

// ReportUsecase は価格系列の取得、RSI・MACDの計算、レポートの組み立てを行います。
type ReportUsecase struct {
	fetcher  SeriesFetcher
	observer ComputeObserver
}

// NewReportUsecase はReportUsecaseの新しいインスタンスを生成します。observerはnilでも構いません。
func NewReportUsecase(fetcher SeriesFetcher, observer ComputeObserver) *ReportUsecase {
	return &ReportUsecase{fetcher: fetcher, observer: observer}
}

// BuildReport は指定された銘柄の価格系列を取得し、RSIとMACDを並行に計算してレポートを返します。
func (u *ReportUsecase) BuildReport(ctx context.Context, q ReportQuery) (entity.IndicatorReport, error) {
	q, err := normalize(q)
	if err != nil {
		u.incReport("invalid")
		return entity.IndicatorReport{}, err
	}

	series, err := u.fetcher.FetchSeries(ctx, q.Symbol, q.Days)
	if err != nil {
		u.incReport("fetch_error")
		return entity.IndicatorReport{}, err
	}

	// RSIとMACDは同じ不変の系列を読むだけなので並行に計算できる
	var (
		rsi  entity.RSISeries
		macd entity.MACDSeries
	)
	g := new(errgroup.Group)
	g.Go(func() error {
		start := time.Now()
		defer u.observe("rsi", start)
		var err error
		rsi, err = calculator.RSI(series, q.RSIPeriod)
		return err
	})
	g.Go(func() error {
		start := time.Now()
		defer u.observe("macd", start)
		var err error
		macd, err = calculator.MACD(series, q.MACD)
		return err
	})
	if err := g.Wait(); err != nil {
		u.incReport("compute_error")
		return entity.IndicatorReport{}, err
	}

	report, err := entity.Assemble(series, rsi, macd)
	if err != nil {
		u.incReport("alignment_error")
		return entity.IndicatorReport{}, err
	}
	u.incReport("ok")
	return report, nil
}

// GetQuote は直近の終値と前回終値からの変化を返します。2点未満の場合はErrInsufficientDataです。
func (u *ReportUsecase) GetQuote(ctx context.Context, symbol string, days int) (entity.PriceSummary, error) {
	q, err := normalize(ReportQuery{Symbol: symbol, Days: days})
	if err != nil {
		return entity.PriceSummary{}, err
	}
	series, err := u.fetcher.FetchSeries(ctx, q.Symbol, q.Days)
	if err != nil {
		return entity.PriceSummary{}, err
	}
	return entity.SummarizeSeries(series)
}

// normalize はシンボルを正規化し、未指定のパラメータにデフォルト値を設定します。
func normalize(q ReportQuery) (ReportQuery, error) {
	q.Symbol = strings.ToUpper(strings.TrimSpace(q.Symbol))
	if q.Symbol == "" {
		return q, fmt.Errorf("%w: symbol is required", domain.ErrInvalidParameter)
	}

	switch {
	case q.Days <= 0:
		q.Days = DefaultDays
	case q.Days < MinDays:
		q.Days = MinDays
	case q.Days > MaxDays:
		q.Days = MaxDays
	}

	if q.RSIPeriod == 0 {
		q.RSIPeriod = calculator.DefaultRSIPeriod
	}

	def := calculator.DefaultMACDParams()
	if q.MACD.Fast == 0 {
		q.MACD.Fast = def.Fast
	}
	if q.MACD.Slow == 0 {
		q.MACD.Slow = def.Slow
	}
	if q.MACD.Signal == 0 {
		q.MACD.Signal = def.Signal
	}
	return q, nil
}

func (u *ReportUsecase) observe(indicator string, start time.Time) {
	if u.observer != nil {
		u.observer.ObserveCompute(indicator, time.Since(start))
	}
}

func (u *ReportUsecase) incReport(result string) {
	if u.observer != nil {
		u.observer.IncReport(result)
	}
}
