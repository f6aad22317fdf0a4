package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"

	"weather-api/internal/config"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// CacheService stores JSON-encoded values. Get returns the raw JSON string.
type CacheService interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
	Ping(ctx context.Context) error
}

// NewCacheService returns a Redis-backed cache when a Redis host is configured and an
// in-process cache otherwise.
func NewCacheService(ctx context.Context, cfg *config.CacheConfig) (CacheService, error) {
	if cfg.UseRedis() {
		return NewRedisCacheService(ctx, cfg)
	}
	return NewMemoryCacheService(cfg.DefaultTTL), nil
}

type RedisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(ctx context.Context, cfg *config.CacheConfig) (*RedisCacheService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCacheService{client: client}, nil
}

func (c *RedisCacheService) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return val, err
}

func (c *RedisCacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return c.client.Set(ctx, key, jsonData, expiration).Err()
}

func (c *RedisCacheService) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *RedisCacheService) DeleteByPattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *RedisCacheService) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCacheService) Close() error {
	return c.client.Close()
}

// MemoryCacheService keeps entries in process memory.
type MemoryCacheService struct {
	store *gocache.Cache
}

func NewMemoryCacheService(defaultTTL time.Duration) *MemoryCacheService {
	return &MemoryCacheService{
		store: gocache.New(defaultTTL, 2*defaultTTL),
	}
}

func (c *MemoryCacheService) Get(ctx context.Context, key string) (string, error) {
	val, ok := c.store.Get(key)
	if !ok {
		return "", ErrCacheMiss
	}
	return val.(string), nil
}

func (c *MemoryCacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	if expiration <= 0 {
		expiration = gocache.DefaultExpiration
	}
	c.store.Set(key, string(jsonData), expiration)
	return nil
}

func (c *MemoryCacheService) Delete(ctx context.Context, key string) error {
	c.store.Delete(key)
	return nil
}

// DeleteByPattern removes keys matching a Redis-style glob such as "weather:*".
func (c *MemoryCacheService) DeleteByPattern(ctx context.Context, pattern string) error {
	for key := range c.store.Items() {
		matched, err := path.Match(pattern, key)
		if err != nil {
			return err
		}
		if matched {
			c.store.Delete(key)
		}
	}
	return nil
}

func (c *MemoryCacheService) Ping(ctx context.Context) error {
	return nil
}

// getCached decodes the cached JSON for key into dst. Any failure counts as a miss, and an
// entry that no longer decodes is dropped.
func getCached(ctx context.Context, cache CacheService, key string, dst interface{}) bool {
	if cache == nil {
		return false
	}
	raw, err := cache.Get(ctx, key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		_ = cache.Delete(ctx, key)
		return false
	}
	return true
}
