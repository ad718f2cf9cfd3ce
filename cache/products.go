// Package cache provides an optional redis read-through cache for the
// product catalog. A nil *ProductCache is valid and disables caching.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"nambikkai-store/models"
	"nambikkai-store/store"
)

const keyPrefix = "products:"

// ProductCache caches catalog listings keyed by their filter. Entries
// expire after the TTL and every catalog write drops them all.
type ProductCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewProductCache creates a ProductCache over an already-connected
// redis client.
func NewProductCache(rdb *redis.Client, ttl time.Duration, logger zerolog.Logger) *ProductCache {
	return &ProductCache{rdb: rdb, ttl: ttl, logger: logger}
}

// ListKey derives the cache key for a catalog filter.
func ListKey(filter store.ProductFilter) string {
	min, max := "", ""
	if filter.MinPrice != nil {
		min = fmt.Sprintf("%g", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		max = fmt.Sprintf("%g", *filter.MaxPrice)
	}
	return fmt.Sprintf("%slist:%s:%s:%s:%s", keyPrefix, filter.Category, filter.Search, min, max)
}

// GetList returns a cached listing, or ok=false on a miss. Redis
// failures count as misses.
func (c *ProductCache) GetList(ctx context.Context, key string) ([]models.Product, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("product cache read failed")
		return nil, false
	}
	var products []models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("product cache entry corrupt")
		return nil, false
	}
	return products, true
}

// SetList stores a listing under key.
func (c *ProductCache) SetList(ctx context.Context, key string, products []models.Product) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("product cache write failed")
	}
}

// Invalidate drops every cached listing. Called on catalog writes.
func (c *ProductCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	keys, err := c.rdb.Keys(ctx, keyPrefix+"*").Result()
	if err != nil {
		c.logger.Warn().Err(err).Msg("product cache invalidation scan failed")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("product cache invalidation failed")
	}
}
