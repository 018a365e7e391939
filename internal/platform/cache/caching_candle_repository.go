package cache

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"tradeiq/internal/feature/candles/domain/entity"
	"tradeiq/internal/feature/candles/usecase"
)

// CandleStore is the persisted candle repository being decorated.
type CandleStore interface {
	usecase.CandleRepository
	usecase.CandleWriter
}

// CachingCandleRepository decorates a CandleStore with Redis caching.
// Reads are cached per query; writes invalidate every cached query of the
// affected symbol and interval.
type CachingCandleRepository struct {
	inner     CandleStore
	rt        readThrough[[]entity.Candle]
	namespace string
}

var _ CandleStore = (*CachingCandleRepository)(nil)

// NewCachingCandleRepository decorates inner with Redis caching. A nil rdb disables caching.
// A nil ttl defaults to UntilDaily(8, UTC); an empty namespace uses "candles".
func NewCachingCandleRepository(rdb *redis.Client, ttl TTLPolicy, inner CandleStore, namespace string, obs Observer) *CachingCandleRepository {
	if ttl == nil {
		ttl = UntilDaily(8, nil)
	}
	if namespace == "" {
		namespace = "candles"
	}
	return &CachingCandleRepository{
		inner:     inner,
		rt:        newReadThrough[[]entity.Candle](namespace, rdb, ttl, obs),
		namespace: namespace,
	}
}

// UpsertBatch writes candles to the store and invalidates related cache entries.
func (c *CachingCandleRepository) UpsertBatch(ctx context.Context, candles []entity.Candle) error {
	if err := c.inner.UpsertBatch(ctx, candles); err != nil {
		return err
	}
	if c.rt.rdb == nil || len(candles) == 0 {
		return nil
	}

	seen := map[string]struct{}{}
	for _, cd := range candles {
		prefix := c.cacheKeyPrefix(cd.Symbol, cd.Interval)
		if _, ok := seen[prefix]; ok {
			continue
		}
		seen[prefix] = struct{}{}
		if err := c.rt.deleteByPattern(ctx, prefix+"*"); err != nil {
			slog.Warn("cache invalidation failed", "prefix", prefix, "error", err)
		}
	}
	return nil
}

// Find retrieves candles, checking the cache first then falling back to the store.
func (c *CachingCandleRepository) Find(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error) {
	return c.rt.get(ctx, c.cacheKey(symbol, interval, outputsize), func(ctx context.Context) ([]entity.Candle, error) {
		return c.inner.Find(ctx, symbol, interval, outputsize)
	})
}

func (c *CachingCandleRepository) cacheKey(symbol, interval string, outputsize int) string {
	return fmt.Sprintf("%s%d", c.cacheKeyPrefix(symbol, interval), outputsize)
}

func (c *CachingCandleRepository) cacheKeyPrefix(symbol, interval string) string {
	return fmt.Sprintf("%s:%s:%s:", c.namespace, safe(symbol), safe(interval))
}
