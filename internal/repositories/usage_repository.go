package repositories

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"mobiwise/internal/services"
)

const (
	// Redis key layout for usage counters
	statsRequestsKey     = "mobiwise:stats:requests"
	statsFailuresKey     = "mobiwise:stats:failures"
	statsPromptTokensKey = "mobiwise:stats:tokens:prompt"
	statsOutputTokensKey = "mobiwise:stats:tokens:completion"
	statsModelHashKey    = "mobiwise:stats:by_model"
	statsTypeHashKey     = "mobiwise:stats:by_type"
)

// UsageSnapshot is a point-in-time read of the accumulated counters.
type UsageSnapshot struct {
	Requests         int64            `json:"requests"`
	Failures         int64            `json:"failures"`
	PromptTokens     int64            `json:"prompt_tokens"`
	CompletionTokens int64            `json:"completion_tokens"`
	ByModel          map[string]int64 `json:"by_model"`
	ByType           map[string]int64 `json:"by_type"`
}

// UsageRepository records per-request provider usage. Implementations must
// be safe for concurrent use; recording is best effort and callers treat a
// failure here as non-fatal.
type UsageRepository interface {
	RecordRequest(ctx context.Context, model, responseType string, usage services.TokenUsage) error
	RecordFailure(ctx context.Context, model string) error
	Snapshot(ctx context.Context) (*UsageSnapshot, error)
}

// RedisUsageRepository implements UsageRepository on Redis counters. No
// conversation content is ever stored, only aggregate numbers.
type RedisUsageRepository struct {
	client *redis.Client
}

// NewRedisUsageRepository creates a new Redis-backed usage repository.
func NewRedisUsageRepository(client *redis.Client) *RedisUsageRepository {
	return &RedisUsageRepository{client: client}
}

// RecordRequest increments the counters for one successful provider call.
func (r *RedisUsageRepository) RecordRequest(ctx context.Context, model, responseType string, usage services.TokenUsage) error {
	pipe := r.client.TxPipeline()
	pipe.Incr(ctx, statsRequestsKey)
	pipe.IncrBy(ctx, statsPromptTokensKey, int64(usage.PromptTokens))
	pipe.IncrBy(ctx, statsOutputTokensKey, int64(usage.CompletionTokens))
	pipe.HIncrBy(ctx, statsModelHashKey, model, 1)
	pipe.HIncrBy(ctx, statsTypeHashKey, responseType, 1)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record usage: %w", err)
	}
	return nil
}

// RecordFailure increments the failure counter for one failed provider call.
func (r *RedisUsageRepository) RecordFailure(ctx context.Context, model string) error {
	pipe := r.client.TxPipeline()
	pipe.Incr(ctx, statsFailuresKey)
	pipe.HIncrBy(ctx, statsModelHashKey, model, 1)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record failure: %w", err)
	}
	return nil
}

// Snapshot reads all counters.
func (r *RedisUsageRepository) Snapshot(ctx context.Context) (*UsageSnapshot, error) {
	snapshot := &UsageSnapshot{
		ByModel: make(map[string]int64),
		ByType:  make(map[string]int64),
	}

	var err error
	if snapshot.Requests, err = r.getCounter(ctx, statsRequestsKey); err != nil {
		return nil, err
	}
	if snapshot.Failures, err = r.getCounter(ctx, statsFailuresKey); err != nil {
		return nil, err
	}
	if snapshot.PromptTokens, err = r.getCounter(ctx, statsPromptTokensKey); err != nil {
		return nil, err
	}
	if snapshot.CompletionTokens, err = r.getCounter(ctx, statsOutputTokensKey); err != nil {
		return nil, err
	}

	if snapshot.ByModel, err = r.getHashCounters(ctx, statsModelHashKey); err != nil {
		return nil, err
	}
	if snapshot.ByType, err = r.getHashCounters(ctx, statsTypeHashKey); err != nil {
		return nil, err
	}

	return snapshot, nil
}

func (r *RedisUsageRepository) getCounter(ctx context.Context, key string) (int64, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read counter %s: %w", key, err)
	}
	return strconv.ParseInt(val, 10, 64)
}

func (r *RedisUsageRepository) getHashCounters(ctx context.Context, key string) (map[string]int64, error) {
	entries, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read counters %s: %w", key, err)
	}

	counters := make(map[string]int64, len(entries))
	for field, val := range entries {
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			continue
		}
		counters[field] = n
	}
	return counters, nil
}
