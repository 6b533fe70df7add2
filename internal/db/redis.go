package db

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"mobiwise/internal/config"
)

// RedisClient wraps the Redis client with connection pooling. It backs the
// optional usage-stats repository; the chat proxy works without it.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient creates a new Redis client from the injected configuration.
func NewRedisClient(cfg config.RedisConfig) *RedisClient {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	return &RedisClient{client: client}
}

// Ping checks if Redis is alive.
func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// GetClient returns the underlying Redis client for repository use.
func (r *RedisClient) GetClient() *redis.Client {
	return r.client
}

// Close closes the connection pool.
func (r *RedisClient) Close() error {
	return r.client.Close()
}
