package di

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	candleentity "tradeiq/internal/feature/candles/domain/entity"
	candleusecase "tradeiq/internal/feature/candles/usecase"
	indicatorusecase "tradeiq/internal/feature/indicators/usecase"
	symbolentity "tradeiq/internal/feature/symbollist/domain/entity"
	"tradeiq/internal/platform/config"
	"tradeiq/internal/platform/metrics"
	"tradeiq/internal/shared/ratelimiter"
)

// testConfig はSQLiteの一時ファイルとRedis無効の設定を返します。
func testConfig(t *testing.T, source string) *config.Config {
	t.Helper()

	cfg := &config.Config{}
	cfg.Market.Source = source
	cfg.Market.Timeout = time.Second
	cfg.Market.CacheTTL = time.Hour
	cfg.DB.Driver = "sqlite"
	cfg.DB.SQLitePath = filepath.Join(t.TempDir(), "tradeiq.db")
	cfg.DB.Migrate = true
	cfg.Ingest.Hour = 8
	cfg.Ingest.TimeZone = "UTC"
	return cfg
}

// fakeMarket は直近n日分の日足を返すMarketRepositoryです。
type fakeMarket struct {
	days int
	err  error
}

func (f fakeMarket) GetTimeSeries(_ context.Context, symbol, interval string, _ int) ([]candleentity.Candle, error) {
	if f.err != nil {
		return nil, f.err
	}
	if interval != candleentity.IntervalDay {
		return nil, nil
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	out := make([]candleentity.Candle, 0, f.days)
	for i := f.days; i >= 1; i-- {
		price := 100 + float64(f.days-i)
		out = append(out, candleentity.Candle{
			Time: today.AddDate(0, 0, -i), Open: price, High: price, Low: price, Close: price,
		})
	}
	return out, nil
}

// TestNew はDB接続・マイグレーション・各ユースケースが組み立てられることを検証します。
func TestNew(t *testing.T) {
	t.Parallel()

	c, err := New(context.Background(), testConfig(t, config.SourceYahoo), metrics.New())
	require.NoError(t, err)
	t.Cleanup(c.Close)

	assert.Nil(t, c.Redis)
	assert.NotNil(t, c.Reports)
	assert.NotNil(t, c.CandlesUC)
	assert.NotNil(t, c.Symbols)
	assert.NotNil(t, c.Ingest)
	assert.Contains(t, c.Checks, "db")
	assert.NotContains(t, c.Checks, "redis")
	require.NoError(t, c.Checks["db"](context.Background()))
}

// TestNew_UnreachableRedis はRedisに接続できない場合もキャッシュなしで起動することを検証します。
func TestNew_UnreachableRedis(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, config.SourceStore)
	cfg.Redis.Host = "127.0.0.1"
	cfg.Redis.Port = "1"

	c, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	assert.Nil(t, c.Redis)
	assert.NotContains(t, c.Checks, "redis")
}

// TestContainer_IngestThenReport はウォッチリストの取り込み後にストアからレポートを生成できることを検証します。
func TestContainer_IngestThenReport(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, err := New(ctx, testConfig(t, config.SourceStore), nil)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	c.Ingest = candleusecase.NewIngestUsecase(fakeMarket{days: 60}, c.Candles, ratelimiter.NewRateLimiter(0, 0))
	_, err = c.Symbols.Seed(ctx, []symbolentity.Symbol{{Code: "btc-usd", IsActive: true}})
	require.NoError(t, err)

	require.NoError(t, c.RunIngest(ctx))

	report, err := c.Reports.BuildReport(ctx, indicatorusecase.ReportQuery{Symbol: "btc-usd", Days: 30})
	require.NoError(t, err)
	assert.Equal(t, 29, report.Series.Len(), "the bar exactly 30 days back starts before the window")

	summary, err := report.Summary()
	require.NoError(t, err)
	assert.Equal(t, 159.0, summary.Latest)
	assert.Equal(t, 158.0, summary.Previous)
}

// TestContainer_RunIngest_Errors は空のウォッチリストと全件失敗の扱いを検証します。
func TestContainer_RunIngest_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, err := New(ctx, testConfig(t, config.SourceStore), nil)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	c.Ingest = candleusecase.NewIngestUsecase(fakeMarket{err: errors.New("upstream down")}, c.Candles, ratelimiter.NewRateLimiter(0, 0))
	assert.NoError(t, c.RunIngest(ctx), "empty watchlist is not an error")

	_, err = c.Symbols.Seed(ctx, []symbolentity.Symbol{{Code: "AAPL", IsActive: true}})
	require.NoError(t, err)
	assert.ErrorContains(t, c.RunIngest(ctx), "all 3 fetches failed")
}

// TestSymbolsFromWatchlist は設定ファイルの順序がSortKeyになることを検証します。
func TestSymbolsFromWatchlist(t *testing.T) {
	t.Parallel()

	inactive := false
	w := &config.Watchlist{Symbols: []config.WatchlistEntry{
		{Code: "BTC-USD", Name: "Bitcoin", Market: "CRYPTO"},
		{Code: "DOGE-USD", Name: "Dogecoin", Market: "CRYPTO", Active: &inactive},
	}}

	got := SymbolsFromWatchlist(w)
	assert.Equal(t, []symbolentity.Symbol{
		{Code: "BTC-USD", Name: "Bitcoin", Market: "CRYPTO", IsActive: true, SortKey: 1},
		{Code: "DOGE-USD", Name: "Dogecoin", Market: "CRYPTO", IsActive: false, SortKey: 2},
	}, got)
	assert.Nil(t, SymbolsFromWatchlist(nil))
}

// TestNewUpstream は設定に応じたデータソース名を返すことを検証します。
func TestNewUpstream(t *testing.T) {
	t.Parallel()

	for source, want := range map[string]string{
		config.SourceYahoo:      "yahoo",
		config.SourceStore:      "yahoo",
		config.SourceTwelveData: "twelvedata",
	} {
		_, got, err := NewUpstream(testConfig(t, source))
		require.NoError(t, err)
		assert.Equal(t, want, got, source)
	}

	_, _, err := NewUpstream(testConfig(t, "bogus"))
	assert.Error(t, err)
}
