package db

import (
	"testing"
	"time"

	"mobiwise/internal/config"
)

// TestNewRedisClient tests client initialization
func TestNewRedisClient(t *testing.T) {
	tests := []struct {
		name   string
		config config.RedisConfig
	}{
		{
			name: "default config",
			config: config.RedisConfig{
				Host: "localhost",
				Port: 6379,
			},
		},
		{
			name: "custom config with all fields",
			config: config.RedisConfig{
				Host:         "redis.example.com",
				Port:         6380,
				Password:     "secret",
				DB:           1,
				PoolSize:     20,
				DialTimeout:  10 * time.Second,
				ReadTimeout:  5 * time.Second,
				WriteTimeout: 5 * time.Second,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewRedisClient(tt.config)

			if client == nil {
				t.Fatal("Expected non-nil client")
			}
			if client.client == nil {
				t.Error("Expected non-nil underlying Redis client")
			}
			if client.GetClient() == nil {
				t.Error("Expected GetClient to return the underlying client")
			}
		})
	}
}
