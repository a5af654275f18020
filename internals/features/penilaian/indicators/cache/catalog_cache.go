// Package cache menyimpan katalog indikator per bundle di Redis.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"pkp_monitor_backend/internals/features/penilaian/indicators/model"
)

const keyPrefix = "pkp:catalog:"

type RedisCatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCatalogCache(client *redis.Client, ttl time.Duration) *RedisCatalogCache {
	return &RedisCatalogCache{client: client, ttl: ttl}
}

func key(bundleID uuid.UUID) string {
	return keyPrefix + bundleID.String()
}

// Get: (nil, false, nil) kalau cache miss.
func (c *RedisCatalogCache) Get(ctx context.Context, bundleID uuid.UUID) ([]model.CatalogItem, bool, error) {
	raw, err := c.client.Get(ctx, key(bundleID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var items []model.CatalogItem
	if err := sonic.Unmarshal(raw, &items); err != nil {
		// entri rusak dianggap miss
		_ = c.client.Del(ctx, key(bundleID)).Err()
		return nil, false, nil
	}
	return items, true, nil
}

func (c *RedisCatalogCache) Set(ctx context.Context, bundleID uuid.UUID, items []model.CatalogItem) error {
	raw, err := sonic.Marshal(items)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(bundleID), raw, c.ttl).Err()
}

func (c *RedisCatalogCache) Invalidate(ctx context.Context, bundleID uuid.UUID) error {
	return c.client.Del(ctx, key(bundleID)).Err()
}
