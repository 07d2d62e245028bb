package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/proforma-service/internal/domain"
	"github.com/proforma-service/internal/domain/repository"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}
	return val > 0, nil
}

func (r *cacheRepository) GetFeasibility(ctx context.Context, key string) ([]domain.FeasibilityResult, error) {
	data, err := r.Get(ctx, key)
	if err != nil || data == nil {
		return nil, err
	}

	results := []domain.FeasibilityResult{}
	if err := json.Unmarshal(data, &results); err != nil {
		r.logger.Error("Failed to unmarshal feasibility results from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("unmarshal feasibility results: %w", err)
	}
	return results, nil
}

func (r *cacheRepository) SetFeasibility(ctx context.Context, key string, results []domain.FeasibilityResult, ttl time.Duration) error {
	if results == nil {
		results = []domain.FeasibilityResult{}
	}
	data, err := json.Marshal(results)
	if err != nil {
		r.logger.Error("Failed to marshal feasibility results", zap.Error(err))
		return fmt.Errorf("marshal feasibility results: %w", err)
	}
	return r.Set(ctx, key, data, ttl)
}
