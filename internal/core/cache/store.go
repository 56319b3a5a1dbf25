package cache

import (
	"context"
	"errors"
	"fmt"

	"recipe-parser/internal/infrastructure/config"
)

// ErrMiss 快取未命中
var ErrMiss = errors.New("cache miss")

// Store 解析結果快取
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// StatsProvider 可回報統計資訊的快取
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// Pinger 可檢查後端連線的快取
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewStore 依設定建立快取，停用時回傳 nil
func NewStore(cfg *config.Config) (Store, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	switch cfg.Cache.Backend {
	case "", config.CacheBackendMemory:
		return NewManager(cfg), nil
	case config.CacheBackendRedis:
		store, err := NewRedisStore(&cfg.Cache)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}
