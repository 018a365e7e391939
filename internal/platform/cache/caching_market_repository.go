package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tradeiq/internal/feature/candles/domain/entity"
	"tradeiq/internal/feature/candles/usecase"
)

// DefaultMarketTTL keeps live market responses for one hour.
const DefaultMarketTTL = time.Hour

// CachingMarketRepository decorates a live MarketRepository with a Redis TTL cache,
// so repeated dashboard requests for the same symbol do not hit the upstream API.
type CachingMarketRepository struct {
	inner usecase.MarketRepository
	rt    readThrough[[]entity.Candle]
	ns    string
}

var _ usecase.MarketRepository = (*CachingMarketRepository)(nil)

// NewCachingMarketRepository wraps inner. ttl <= 0 uses DefaultMarketTTL.
// source names the upstream and is part of every key, so switching sources never serves stale data.
func NewCachingMarketRepository(rdb *redis.Client, ttl time.Duration, inner usecase.MarketRepository, source string, obs Observer) *CachingMarketRepository {
	if ttl <= 0 {
		ttl = DefaultMarketTTL
	}
	ns := "market:" + safe(source)
	return &CachingMarketRepository{
		inner: inner,
		rt:    newReadThrough[[]entity.Candle](ns, rdb, Fixed(ttl), obs),
		ns:    ns,
	}
}

// GetTimeSeries returns cached candles when present, otherwise fetches and caches them.
func (c *CachingMarketRepository) GetTimeSeries(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error) {
	key := fmt.Sprintf("%s:%s:%s:%d", c.ns, safe(symbol), safe(interval), outputsize)
	return c.rt.get(ctx, key, func(ctx context.Context) ([]entity.Candle, error) {
		return c.inner.GetTimeSeries(ctx, symbol, interval, outputsize)
	})
}
