package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"CasinoTracker/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrCacheMiss 键不存在或已过期
var ErrCacheMiss = errors.New("cache: key not found")

// Provider 可插拔缓存：用于对读侧接口的响应做短TTL记忆。
// 缓存不可用时调用方降级为直查，不影响功能。
type Provider interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// NewProvider 按配置选择缓存实现：redis或进程内memory（缺省）
func NewProvider(cfg *config.CacheConfig, logger *logrus.Logger) Provider {
	if cfg.Provider == "redis" && cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.WithError(err).Warn("Redis地址解析失败，退回内存缓存")
			return NewMemoryProvider()
		}
		logger.Info("缓存提供者: redis")
		return &redisProvider{client: redis.NewClient(opts)}
	}
	logger.Info("缓存提供者: memory")
	return NewMemoryProvider()
}

// ========== 进程内存实现 ==========

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

type memoryProvider struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemoryProvider() Provider {
	return &memoryProvider{entries: make(map[string]memoryEntry)}
}

func (m *memoryProvider) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return "", ErrCacheMiss
	}
	if time.Now().After(entry.expiresAt) {
		// 惰性清理过期键
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return "", ErrCacheMiss
	}
	return entry.value, nil
}

func (m *memoryProvider) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	m.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

// ========== Redis实现 ==========

type redisProvider struct {
	client *redis.Client
}

func (r *redisProvider) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return val, err
}

func (r *redisProvider) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}
