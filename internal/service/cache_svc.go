package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ActiveTrendsTTL bounds staleness if an invalidation is ever missed; every
// mutation path invalidates explicitly, so reads normally see latest state.
const ActiveTrendsTTL = time.Minute

const activeTrendsKey = "trends:active"

// CacheService provides a Redis cache-aside layer for the active trends map.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or the
// connection fails, it returns a CacheService with a nil client and all
// cache operations become no-ops.
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetActiveTrends retrieves the cached active trends payload. Returns nil
// if not cached or the cache is disabled.
func (c *CacheService) GetActiveTrends(ctx context.Context) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, activeTrendsKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetActiveTrends stores the active trends payload.
func (c *CacheService) SetActiveTrends(ctx context.Context, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, activeTrendsKey, b, ActiveTrendsTTL).Err()
}

// InvalidateActiveTrends drops the cached payload. Called after every trend
// mutation: votes, regeneration, and image backfill.
func (c *CacheService) InvalidateActiveTrends(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, activeTrendsKey).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
