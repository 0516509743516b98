package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// URLCache caches presigned URLs keyed by storage key. Entries expire
// slightly before the URL itself so a cached URL is always still valid
// when served.
type URLCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, url string, ttl time.Duration)
}

// RedisCache backs URLCache with redis.
type RedisCache struct {
	client *redis.Client
	logger *logrus.Logger
}

// NewRedisCache connects and pings redis. Callers treat a connection
// failure as non-fatal and fall back to NoopCache.
func NewRedisCache(addr, password string, db int, logger *logrus.Logger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{client: client, logger: logger}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, cacheKey(key)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.WithError(err).WithField("key", key).Warn("Redis get failed")
		}
		return "", false
	}
	return val, true
}

func (c *RedisCache) Set(ctx context.Context, key, url string, ttl time.Duration) {
	if err := c.client.Set(ctx, cacheKey(key), url, ttl).Err(); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Redis set failed")
	}
}

// Close releases the underlying connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func cacheKey(storageKey string) string {
	return "signed-url:" + storageKey
}

// NoopCache is the fallback when redis is unavailable; every lookup
// misses and signing happens on each read.
type NoopCache struct{}

func NewNoopCache() *NoopCache {
	return &NoopCache{}
}

func (NoopCache) Get(ctx context.Context, key string) (string, bool) {
	return "", false
}

func (NoopCache) Set(ctx context.Context, key, url string, ttl time.Duration) {}
