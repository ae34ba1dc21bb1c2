package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisService provides Redis connection and operations. Redis is optional:
// when it is unavailable the server runs without response caching.
type RedisService struct {
	client *redis.Client
}

// NewRedisService connects to Redis and verifies the connection.
func NewRedisService(redisURL string) (*RedisService, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opts.PoolSize = 10
	opts.MinIdleConns = 2
	opts.MaxRetries = 3
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Println("✅ Redis connection established")
	return &RedisService{client: client}, nil
}

// Client returns the underlying Redis client
func (r *RedisService) Client() *redis.Client {
	return r.client
}

// Close closes the Redis connection
func (r *RedisService) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// Ping checks if Redis is healthy
func (r *RedisService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// ResponseCache caches generated assistant responses in Redis with a TTL.
// A nil *ResponseCache is a valid no-op cache.
type ResponseCache struct {
	redis *RedisService
	ttl   time.Duration
}

// NewResponseCache wraps a Redis connection as an assistant response cache.
func NewResponseCache(redis *RedisService, ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &ResponseCache{redis: redis, ttl: ttl}
}

// Get looks up a cached response. Misses and Redis errors both report false.
func (c *ResponseCache) Get(ctx context.Context, key string) (string, bool) {
	value, err := c.redis.client.Get(ctx, "assistant:response:"+key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("⚠️ [CACHE] Redis get failed: %v", err)
		}
		return "", false
	}
	return value, true
}

// Set stores a response. Failures are logged, not returned; caching is
// best-effort.
func (c *ResponseCache) Set(ctx context.Context, key, value string) {
	if err := c.redis.client.Set(ctx, "assistant:response:"+key, value, c.ttl).Err(); err != nil {
		log.Printf("⚠️ [CACHE] Redis set failed: %v", err)
	}
}
