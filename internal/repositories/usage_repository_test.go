package repositories

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mobiwise/internal/services"
)

// setupTestRedis creates a test Redis client, skipping when no local Redis
// is available.
func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15, // Use separate DB for testing
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available, skipping: %v", err)
	}

	require.NoError(t, client.FlushDB(ctx).Err())
	return client
}

func TestNewRedisUsageRepository(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	repo := NewRedisUsageRepository(client)
	assert.NotNil(t, repo)
	assert.Equal(t, client, repo.client)
}

func TestRedisUsageRepository_RecordAndSnapshot(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()
	repo := NewRedisUsageRepository(client)
	ctx := context.Background()

	err := repo.RecordRequest(ctx, "gemini-flash-latest", "recommendation", services.TokenUsage{
		PromptTokens:     120,
		CompletionTokens: 340,
		TotalTokens:      460,
	})
	require.NoError(t, err)

	err = repo.RecordRequest(ctx, "gemini-flash-latest", "message", services.TokenUsage{
		PromptTokens:     50,
		CompletionTokens: 80,
		TotalTokens:      130,
	})
	require.NoError(t, err)

	err = repo.RecordFailure(ctx, "gemini-pro-latest")
	require.NoError(t, err)

	snapshot, err := repo.Snapshot(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), snapshot.Requests)
	assert.Equal(t, int64(1), snapshot.Failures)
	assert.Equal(t, int64(170), snapshot.PromptTokens)
	assert.Equal(t, int64(420), snapshot.CompletionTokens)
	assert.Equal(t, int64(2), snapshot.ByModel["gemini-flash-latest"])
	assert.Equal(t, int64(1), snapshot.ByModel["gemini-pro-latest"])
	assert.Equal(t, int64(1), snapshot.ByType["recommendation"])
	assert.Equal(t, int64(1), snapshot.ByType["message"])
}

func TestRedisUsageRepository_EmptySnapshot(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()
	repo := NewRedisUsageRepository(client)

	snapshot, err := repo.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Zero(t, snapshot.Requests)
	assert.Zero(t, snapshot.Failures)
	assert.Empty(t, snapshot.ByModel)
	assert.Empty(t, snapshot.ByType)
}
