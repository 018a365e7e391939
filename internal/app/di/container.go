package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	candleadapters "tradeiq/internal/feature/candles/adapters"
	candleentity "tradeiq/internal/feature/candles/domain/entity"
	candleusecase "tradeiq/internal/feature/candles/usecase"
	indicatoradapters "tradeiq/internal/feature/indicators/adapters"
	indicatorusecase "tradeiq/internal/feature/indicators/usecase"
	symboladapters "tradeiq/internal/feature/symbollist/adapters"
	symbolusecase "tradeiq/internal/feature/symbollist/usecase"
	"tradeiq/internal/platform/cache"
	"tradeiq/internal/platform/config"
	infradb "tradeiq/internal/platform/db"
	"tradeiq/internal/platform/http/handler"
	"tradeiq/internal/platform/metrics"
	infraredis "tradeiq/internal/platform/redis"
	"tradeiq/internal/shared/ratelimiter"
)

// Container holds the wired application graph shared by the server and the CLI.
type Container struct {
	Config  *config.Config
	DB      *gorm.DB
	Redis   *redis.Client // nil when caching is disabled or unavailable
	Metrics *metrics.Metrics

	Market  candleusecase.MarketRepository
	Candles *cache.CachingCandleRepository

	Reports   *indicatorusecase.ReportUsecase
	CandlesUC *candleusecase.CandlesUsecase
	Symbols   *symbolusecase.SymbolUsecase
	Ingest    *candleusecase.IngestUsecase

	Checks map[string]handler.Checker
}

// New opens the database and Redis, runs migrations when enabled, and wires every use case.
// A Redis failure is logged and the application continues without a cache.
func New(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (*Container, error) {
	gdb, err := infradb.Open(ctx, infradb.Config{
		Driver:     cfg.DB.Driver,
		DSN:        cfg.DB.DSN,
		Host:       cfg.DB.Host,
		Port:       cfg.DB.Port,
		User:       cfg.DB.User,
		Password:   cfg.DB.Password,
		Name:       cfg.DB.Name,
		SSLMode:    cfg.DB.SSLMode,
		SQLitePath: cfg.DB.SQLitePath,
	})
	if err != nil {
		return nil, err
	}
	c := &Container{
		Config:  cfg,
		DB:      gdb,
		Metrics: m,
		Checks:  map[string]handler.Checker{"db": infradb.Ping(gdb)},
	}
	if cfg.DB.Migrate {
		if err := migrate(gdb); err != nil {
			c.Close()
			return nil, err
		}
	}

	if cfg.RedisEnabled() {
		rdb, err := infraredis.NewRedisClient(ctx, infraredis.Config{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			slog.Warn("redis unavailable, running without cache", "addr", cfg.RedisAddr(), "error", err)
		} else {
			c.Redis = rdb
			c.Checks["redis"] = infraredis.Ping(rdb)
		}
	}

	upstream, source, err := NewUpstream(cfg)
	if err != nil {
		c.Close()
		return nil, err
	}
	instrumented := metrics.InstrumentMarket(source, upstream, m)
	c.Market = cache.NewCachingMarketRepository(c.Redis, cfg.Market.CacheTTL, instrumented, source, m)
	c.Candles = cache.NewCachingCandleRepository(c.Redis,
		cache.UntilDaily(cfg.Ingest.Hour, cfg.IngestLocation()),
		candleadapters.NewCandleStore(gdb), "candles", m)

	c.Reports = indicatorusecase.NewReportUsecase(
		indicatoradapters.NewCandleSeriesFetcher(c.reportReader()), m)
	c.CandlesUC = candleusecase.NewCandlesUsecase(c.Candles)
	c.Symbols = symbolusecase.NewSymbolUsecase(symboladapters.NewSymbolStore(gdb))
	c.Ingest = candleusecase.NewIngestUsecase(instrumented, c.Candles,
		ratelimiter.NewRateLimiter(cfg.Market.RateLimit, cfg.Market.RateWindow))

	slog.Info("application wired",
		"market_source", cfg.Market.Source, "upstream", source,
		"db_driver", cfg.DB.Driver, "cache", c.Redis != nil)
	return c, nil
}

func migrate(gdb *gorm.DB) error {
	if err := candleadapters.Migrate(gdb); err != nil {
		return err
	}
	return symboladapters.Migrate(gdb)
}

// reportReader selects where report price series come from.
func (c *Container) reportReader() indicatoradapters.CandleReader {
	if c.Config.Market.Source == config.SourceStore {
		return c.Candles
	}
	return indicatoradapters.CandleReaderFunc(
		func(ctx context.Context, symbol, interval string, outputsize int) ([]candleentity.Candle, error) {
			return c.Market.GetTimeSeries(ctx, symbol, interval, outputsize)
		})
}

// RunIngest fetches every active watchlist symbol into the candle store.
func (c *Container) RunIngest(ctx context.Context) error {
	codes, err := c.Symbols.ActiveCodes(ctx)
	if err != nil {
		return fmt.Errorf("load watchlist: %w", err)
	}
	if len(codes) == 0 {
		slog.Warn("watchlist is empty, nothing to ingest")
		return nil
	}
	sum, err := c.Ingest.IngestAll(ctx, codes)
	if err != nil {
		return err
	}
	if sum.Succeeded == 0 {
		return fmt.Errorf("ingest: all %d fetches failed", sum.Failed)
	}
	return nil
}

// Close releases the database and Redis connections.
func (c *Container) Close() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			slog.Error("failed to close redis client", "error", err)
		}
	}
	if sqlDB, err := c.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}
}
