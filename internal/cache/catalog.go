// Package cache keeps a read-through copy of the partner catalog in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"subtrack/internal/models"
	"subtrack/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const catalogKey = "catalog:partners"

// RedisClient is the subset of go-redis used here.
type RedisClient interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

// CatalogStore is the authoritative catalog source, normally Postgres.
type CatalogStore interface {
	List(ctx context.Context) ([]*models.PartnerService, error)
}

type CatalogCache struct {
	client RedisClient
	store  CatalogStore
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisClient connects and pings. It returns nil, nil when no address is
// configured so callers can run without Redis.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	if cfg.Addr == "" {
		logger.Info("Redis not configured, catalog cache disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info("Redis connection established", zap.String("addr", cfg.Addr))
	return client, nil
}

// NewCatalogCache wraps store. A nil client makes every read go to the store.
func NewCatalogCache(client RedisClient, store CatalogStore, prefix string, ttl time.Duration, logger *zap.Logger) *CatalogCache {
	return &CatalogCache{
		client: client,
		store:  store,
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
	}
}

// Catalog returns the cached catalog or loads and caches it. Redis failures
// are logged and fall back to the store.
func (c *CatalogCache) Catalog(ctx context.Context) ([]*models.PartnerService, error) {
	if c.client == nil {
		return c.store.List(ctx)
	}

	raw, err := c.client.Get(ctx, c.key()).Result()
	switch {
	case err == nil:
		var partners []*models.PartnerService
		uerr := json.Unmarshal([]byte(raw), &partners)
		if uerr == nil {
			return partners, nil
		}
		c.logger.Warn("Discarding unreadable cached catalog", zap.Error(uerr))
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("Catalog cache read failed", zap.Error(err))
	}

	partners, err := c.store.List(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(partners)
	if err != nil {
		return partners, nil
	}
	if err := c.client.Set(ctx, c.key(), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Catalog cache write failed", zap.Error(err))
	}

	return partners, nil
}

func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.key()).Err()
}

func (c *CatalogCache) key() string {
	return c.prefix + catalogKey
}
