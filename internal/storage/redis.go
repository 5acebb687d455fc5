package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/storyloom/engine/pkg/generation"
)

const (
	generationKeyPrefix = "generation:"

	// GenerationTTL is how long a stored phase-1 output survives.
	// Generations are working artifacts for downstream phases, not an
	// archive.
	GenerationTTL = 7 * 24 * time.Hour
)

// RedisStorage implements the Storage interface using Redis.
type RedisStorage struct {
	client *redis.Client
	logger *slog.Logger
}

// Ensure RedisStorage implements Storage interface
var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance
func NewRedisStorage(redisURL string, logger *slog.Logger) *RedisStorage {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	return &RedisStorage{
		client: rdb,
		logger: logger,
	}
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	cmd := r.client.Ping(ctx)
	if err := cmd.Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

func (r *RedisStorage) SaveGeneration(ctx context.Context, id uuid.UUID, out *generation.Phase1Output) error {
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to marshal generation: %w", err)
	}

	key := generationKeyPrefix + id.String()
	if err := r.client.Set(ctx, key, data, GenerationTTL).Err(); err != nil {
		r.logger.Error("Redis SET failed", "key", key, "error", err)
		return fmt.Errorf("failed to save generation: %w", err)
	}

	r.logger.Debug("Generation saved", "id", id, "bytes", len(data))
	return nil
}

// LoadGeneration returns the stored output, or nil when the id is
// unknown or expired.
func (r *RedisStorage) LoadGeneration(ctx context.Context, id uuid.UUID) (*generation.Phase1Output, error) {
	key := generationKeyPrefix + id.String()
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		r.logger.Error("Redis GET failed", "key", key, "error", err)
		return nil, fmt.Errorf("failed to load generation: %w", err)
	}

	var out generation.Phase1Output
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal generation %s: %w", id, err)
	}
	return &out, nil
}

// ListGenerations returns the IDs of every stored generation that has
// not yet expired. Order is not defined.
func (r *RedisStorage) ListGenerations(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	iter := r.client.Scan(ctx, 0, generationKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		idStr := strings.TrimPrefix(iter.Val(), generationKeyPrefix)
		id, err := uuid.Parse(idStr)
		if err != nil {
			r.logger.Warn("Skipping malformed generation key", "key", iter.Val())
			continue
		}
		ids = append(ids, id)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	return ids, nil
}

func (r *RedisStorage) DeleteGeneration(ctx context.Context, id uuid.UUID) error {
	key := generationKeyPrefix + id.String()
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Redis DEL failed", "key", key, "error", err)
		return fmt.Errorf("failed to delete generation: %w", err)
	}
	return nil
}
