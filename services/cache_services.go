package services

import (
	"context"
	"time"

	"judgeapi/config"
	"judgeapi/metrics"

	"github.com/redis/go-redis/v9"
)

var cacheClient *redis.Client

// InitCache connects the optional redis cache used for public results
// payloads. Without REDIS_ADDR every lookup is a miss.
func InitCache() {
	if config.RedisAddr == "" {
		return
	}
	cacheClient = redis.NewClient(&redis.Options{Addr: config.RedisAddr})
}

// CacheGet returns a cached payload and whether it was present
func CacheGet(ctx context.Context, key string) (string, bool) {
	if cacheClient == nil {
		return "", false
	}
	val, err := cacheClient.Get(ctx, key).Result()
	if err != nil {
		metrics.CacheMisses.Inc()
		return "", false
	}
	metrics.CacheHits.Inc()
	return val, true
}

// CacheSet stores a payload with a TTL; failures are ignored, the cache is
// purely an optimization.
func CacheSet(ctx context.Context, key, value string, ttl time.Duration) {
	if cacheClient == nil {
		return
	}
	cacheClient.Set(ctx, key, value, ttl)
}

// CacheInvalidate drops a cached payload after a write that affects it
func CacheInvalidate(ctx context.Context, keys ...string) {
	if cacheClient == nil || len(keys) == 0 {
		return
	}
	cacheClient.Del(ctx, keys...)
}
