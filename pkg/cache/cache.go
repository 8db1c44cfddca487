// Package cache is a small JSON cache on top of Redis. It backs the
// read-through orm.Query.Cache helper and the listing facet lookups.
//
//	cache.Connect()
//	cache.Set("facets:brands", brands, time.Minute)
//
//	var brands []string
//	if cache.Get("facets:brands", &brands) {
//	    // hit
//	}
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shashiranjanraj/luxewheels/config"
	"github.com/shashiranjanraj/luxewheels/pkg/logger"
	"github.com/shashiranjanraj/luxewheels/pkg/metrics"
)

var (
	client *redis.Client
	ctx    = context.Background()
)

// Connect opens the Redis connection using REDIS_ADDR / REDIS_PASSWORD.
// The cache degrades to a no-op when Redis is unreachable; callers fall
// back to the database on every read.
func Connect() error {
	client = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client = nil
		return fmt.Errorf("cache: connect: %w", err)
	}

	logger.Info("cache: connected", "addr", config.RedisAddr())
	return nil
}

// Get fills dest from the cache and reports whether the key was present.
func Get(key string, dest interface{}) bool {
	if client == nil {
		return false
	}

	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		metrics.CacheMisses.Inc()
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Warn("cache: corrupt entry dropped", "key", key, "error", err)
		client.Del(ctx, key)
		metrics.CacheMisses.Inc()
		return false
	}

	metrics.CacheHits.Inc()
	return true
}

// Set stores value under key for ttl. Failures are logged, not returned;
// a cold cache is never an application error.
func Set(key string, value interface{}, ttl time.Duration) {
	if client == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		logger.Warn("cache: marshal failed", "key", key, "error", err)
		return
	}

	if err := client.Set(ctx, key, raw, ttl).Err(); err != nil {
		logger.Warn("cache: set failed", "key", key, "error", err)
	}
}

// Forget removes key from the cache.
func Forget(key string) {
	if client == nil {
		return
	}
	client.Del(ctx, key)
}

// Close releases the Redis connection.
func Close() error {
	if client == nil {
		return nil
	}
	err := client.Close()
	client = nil
	return err
}
