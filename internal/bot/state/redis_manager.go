package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vladimiradmaev/health-tracker/internal/config"
)

// StateTTL expires abandoned conversations.
const StateTTL = 24 * time.Hour

// RedisManager manages user states using Redis
type RedisManager struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisManager connects to Redis and checks the connection.
func NewRedisManager(ctx context.Context, cfg config.RedisConfig) (*RedisManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisManagerWithClient(client), nil
}

// NewRedisManagerWithClient wraps an existing client.
func NewRedisManagerWithClient(client *redis.Client) *RedisManager {
	return &RedisManager{client: client, ttl: StateTTL}
}

func stateKey(userID int64) string {
	return fmt.Sprintf("user:%d:state", userID)
}

func tempKey(userID int64) string {
	return fmt.Sprintf("user:%d:temp", userID)
}

// SetUserState sets the state for a user with TTL
func (m *RedisManager) SetUserState(ctx context.Context, userID int64, state string) error {
	return m.client.Set(ctx, stateKey(userID), state, m.ttl).Err()
}

// GetUserState gets the state for a user
func (m *RedisManager) GetUserState(ctx context.Context, userID int64) (string, error) {
	state, err := m.client.Get(ctx, stateKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return None, nil
	}
	if err != nil {
		return None, err
	}
	return state, nil
}

func (m *RedisManager) ClearUserState(ctx context.Context, userID int64) error {
	return m.client.Del(ctx, stateKey(userID)).Err()
}

// SetTempData stores one field of the user's temp hash and refreshes its TTL.
func (m *RedisManager) SetTempData(ctx context.Context, userID int64, key, value string) error {
	k := tempKey(userID)
	_, err := m.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, k, key, value)
		pipe.Expire(ctx, k, m.ttl)
		return nil
	})
	return err
}

// GetTempData gets temporary data for a user
func (m *RedisManager) GetTempData(ctx context.Context, userID int64, key string) (string, bool, error) {
	value, err := m.client.HGet(ctx, tempKey(userID), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// ClearTempData clears all temporary data for a user
func (m *RedisManager) ClearTempData(ctx context.Context, userID int64) error {
	return m.client.Del(ctx, tempKey(userID)).Err()
}

// Close closes the Redis connection
func (m *RedisManager) Close() error {
	return m.client.Close()
}
