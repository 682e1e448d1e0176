package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shcya/backend/internal/domain/shared"
	"github.com/shcya/backend/internal/infrastructure/config"
)

// DefaultKeyPrefix namespaces guard keys in a shared Redis
const DefaultKeyPrefix = "shcya:submission:"

// RedisSubmissionGuard implements SubmissionGuard with SET NX and a TTL, so
// every API instance sees the same claims.
type RedisSubmissionGuard struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewRedisSubmissionGuard creates a guard on an existing client
func NewRedisSubmissionGuard(client *redis.Client, keyPrefix string) *RedisSubmissionGuard {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &RedisSubmissionGuard{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Claim sets the key only if it does not exist, expiring it after window
func (g *RedisSubmissionGuard) Claim(ctx context.Context, key string, window time.Duration) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.keyPrefix+key, time.Now().UTC().Format(time.RFC3339), window).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim submission key: %w", err)
	}
	return ok, nil
}

// Release deletes the key
func (g *RedisSubmissionGuard) Release(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, g.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release submission key: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (g *RedisSubmissionGuard) Close() error {
	return g.client.Close()
}

// Ensure RedisSubmissionGuard implements SubmissionGuard
var _ shared.SubmissionGuard = (*RedisSubmissionGuard)(nil)
