// Package cache provides an optional result cache for computed schedules.
// The engine is deterministic, so identical loan parameters always map to the
// same response and cached entries never go stale.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"

	"github.com/iwvelando/raroc-pricing/pkg/cashflow"
	"github.com/redis/go-redis/v9"
)

// Repository is the minimal cache surface the pricing handlers depend on.
type Repository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}

// Key derives a stable cache key from one loan's parameters.
func Key(params cashflow.LoanParameters) (string, error) {
	payload, err := json.Marshal(params)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return "schedule:" + hex.EncodeToString(sum[:]), nil
}

// RedisCache stores entries in a Redis instance.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects a cache to the Redis instance at addr.
func NewRedisCache(addr string) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{client: rdb}
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *RedisCache) Set(ctx context.Context, key string, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

// MemoryCache is a process-local map-backed cache. It is the default backend
// and doubles as the test double.
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]string),
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	return val, ok
}

func (m *MemoryCache) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
