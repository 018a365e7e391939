// Package cache provides Redis-backed caching decorators for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Lookup results reported to an Observer.
const (
	ResultHit    = "hit"
	ResultMiss   = "miss"
	ResultError  = "error"
	ResultBypass = "bypass"
)

// Observer records the outcome of each cache lookup.
type Observer interface {
	ObserveCache(cache, result string)
}

// readThrough serves JSON values from Redis and falls back to load on a miss.
// Redis failures never fail the call; the loader result is returned instead.
// Loader errors are returned as-is and never cached.
type readThrough[T any] struct {
	name string
	rdb  *redis.Client
	ttl  TTLPolicy
	obs  Observer
	now  func() time.Time
}

func newReadThrough[T any](name string, rdb *redis.Client, ttl TTLPolicy, obs Observer) readThrough[T] {
	return readThrough[T]{name: name, rdb: rdb, ttl: ttl, obs: obs, now: time.Now}
}

func (r readThrough[T]) get(ctx context.Context, key string, load func(context.Context) (T, error)) (T, error) {
	if r.rdb == nil {
		r.observe(ResultBypass)
		return load(ctx)
	}

	b, err := r.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var out T
		if err := json.Unmarshal(b, &out); err == nil {
			r.observe(ResultHit)
			return out, nil
		}
		// Delete corrupted cache entry
		_ = r.rdb.Del(ctx, key).Err()
	case errors.Is(err, redis.Nil):
	default:
		slog.Warn("cache read failed, bypassing", "cache", r.name, "key", key, "error", err)
		r.observe(ResultError)
		return load(ctx)
	}

	r.observe(ResultMiss)
	out, err := load(ctx)
	if err != nil {
		return out, err
	}
	if b, err := json.Marshal(out); err == nil {
		if err := r.rdb.Set(ctx, key, b, r.ttl(r.now())).Err(); err != nil {
			slog.Warn("cache write failed", "cache", r.name, "key", key, "error", err)
		}
	}
	return out, nil
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (r readThrough[T]) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := r.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			return nil
		}
	}
}

func (r readThrough[T]) observe(result string) {
	if r.obs != nil {
		r.obs.ObserveCache(r.name, result)
	}
}
