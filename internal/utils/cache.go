package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"errors"        // Sentinel comparison
	"fmt"           // Key formatting
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache is the read-through cache used by the HTTP handlers
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// Cache key layout
const (
	ProfessionalsPrefix = "users:professionals:"
	ReviewsPrefix       = "reviews:professional:"
)

// ProfessionalReviewsKey caches GET /review/professional/:id
func ProfessionalReviewsKey(professionalID uint) string {
	return fmt.Sprintf("%s%d", ReviewsPrefix, professionalID)
}

// ProfessionalsKey caches the professionals directory, optionally per category
func ProfessionalsKey(categoryID *uint) string {
	if categoryID == nil {
		return ProfessionalsPrefix + "all"
	}
	return fmt.Sprintf("%scategory:%d", ProfessionalsPrefix, *categoryID)
}

// RedisCache stores JSON encoded values in Redis with a fixed TTL
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

// Get retrieves a value from Redis and unmarshals it into dest
func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	val, err := c.rdb.Get(ctx, key).Bytes() // Get value from Redis
	if errors.Is(err, redis.Nil) {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set marshals value to JSON and stores it with the cache TTL
func (c *RedisCache) Set(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

// Delete deletes keys from Redis
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// DeletePrefix removes every key starting with prefix using SCAN
func (c *RedisCache) DeletePrefix(ctx context.Context, prefix string) error {
	iter := c.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return c.Delete(ctx, keys...)
}

// Ping checks the Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// NopCache is used when Redis is not configured; every lookup misses
type NopCache struct{}

func (NopCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (NopCache) Set(context.Context, string, any) error         { return nil }
func (NopCache) Delete(context.Context, ...string) error        { return nil }
func (NopCache) DeletePrefix(context.Context, string) error     { return nil }
