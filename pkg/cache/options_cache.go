// Package cache provides a Redis-backed TTL cache for resolved relationship
// options. Option lookups hit the database per configured relation; forms with
// several select fields over the same resources render much cheaper with a
// short-lived cache in front.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/redis/go-redis/v9"
)

// Config holds Redis connection configuration
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

// OptionsCache caches resolved key->label option maps keyed by a caller-built
// cache key (resource plus filter fingerprint).
type OptionsCache struct {
	rdb    *redis.Client
	logger ectologger.Logger
	ttl    time.Duration
}

// NewOptionsCache creates a new cache client and verifies connectivity.
func NewOptionsCache(cfg Config, logger ectologger.Logger) (*OptionsCache, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = 5 * time.Minute
	}

	logger.Infof("Connected to Redis at %s", addr)

	return &OptionsCache{
		rdb:    rdb,
		logger: logger,
		ttl:    ttl,
	}, nil
}

func (c *OptionsCache) Close() error {
	return c.rdb.Close()
}

// Get returns the cached option map for key. A miss or an unreadable entry
// returns ok=false; cache failures never fail the lookup.
func (c *OptionsCache) Get(ctx context.Context, key string) (map[string]string, bool) {
	raw, err := c.rdb.Get(ctx, cacheKey(key)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.WithContext(ctx).WithError(err).Warn("options cache read failed")
		return nil, false
	}

	options := map[string]string{}
	if err := json.Unmarshal([]byte(raw), &options); err != nil {
		return nil, false
	}

	return options, true
}

// Set stores the option map under key for the configured TTL. Failures are
// logged and swallowed.
func (c *OptionsCache) Set(ctx context.Context, key string, options map[string]string) {
	raw, err := json.Marshal(options)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, cacheKey(key), raw, c.ttl).Err(); err != nil {
		c.logger.WithContext(ctx).WithError(err).Warn("options cache write failed")
	}
}

func cacheKey(key string) string {
	return "fern:options:" + key
}
