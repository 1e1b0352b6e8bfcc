package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/euprava/vrtic-dashboard/internal/domain/providers"
	redisclient "github.com/euprava/vrtic-dashboard/internal/infrastructure/clients/redis"
)

// RedisAdapter implements the KeyValueStore interface using Redis
type RedisAdapter struct {
	client redis.Cmdable
}

// NewRedisAdapter creates a new Redis key-value adapter
func NewRedisAdapter(client *redisclient.Client) providers.KeyValueStore {
	return &RedisAdapter{
		client: client.Client(),
	}
}

// Get retrieves a value from Redis
func (a *RedisAdapter) Get(ctx context.Context, key string) (string, error) {
	result, err := a.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", providers.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return result, nil
}

// Set stores a value in Redis
func (a *RedisAdapter) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := a.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Delete removes a value from Redis
func (a *RedisAdapter) Delete(ctx context.Context, key string) error {
	if err := a.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
