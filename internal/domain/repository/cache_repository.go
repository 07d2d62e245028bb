package repository

import (
	"context"
	"time"

	"github.com/proforma-service/internal/domain"
)

// CacheRepository - key/value cache in front of feasibility lookups
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// GetFeasibility returns cached results, or nil on a miss
	GetFeasibility(ctx context.Context, key string) ([]domain.FeasibilityResult, error)

	// SetFeasibility caches results under key
	SetFeasibility(ctx context.Context, key string, results []domain.FeasibilityResult, ttl time.Duration) error
}
