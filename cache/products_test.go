package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"nambikkai-store/models"
	"nambikkai-store/store"
)

func newTestCache(t *testing.T) (*ProductCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewProductCache(rdb, time.Minute, zerolog.Nop()), srv
}

func sampleListing(name string) []models.Product {
	return []models.Product{{
		ID:       primitive.NewObjectID(),
		Name:     name,
		Category: models.CategoryMillets,
		Price:    100,
	}}
}

func TestListKey(t *testing.T) {
	assert.Equal(t, "products:list::::", ListKey(store.ProductFilter{}))

	min, max := 50.0, 150.5
	filter := store.ProductFilter{Category: "millets", Search: "foxtail", MinPrice: &min, MaxPrice: &max}
	assert.Equal(t, "products:list:millets:foxtail:50:150.5", ListKey(filter))

	// Distinct filters must never collide.
	other := store.ProductFilter{Category: "millets", Search: "foxtail", MinPrice: &min}
	assert.NotEqual(t, ListKey(filter), ListKey(other))
}

func TestCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	key := ListKey(store.ProductFilter{Category: "millets"})

	_, ok := c.GetList(ctx, key)
	assert.False(t, ok)

	listing := sampleListing("Foxtail Millet")
	c.SetList(ctx, key, listing)

	got, ok := c.GetList(ctx, key)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, listing[0].ID, got[0].ID)
	assert.Equal(t, "Foxtail Millet", got[0].Name)
	assert.Equal(t, 100.0, got[0].Price)
}

func TestCacheEntriesExpire(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()
	key := ListKey(store.ProductFilter{})

	c.SetList(ctx, key, sampleListing("Foxtail Millet"))
	_, ok := c.GetList(ctx, key)
	require.True(t, ok)

	srv.FastForward(2 * time.Minute)

	_, ok = c.GetList(ctx, key)
	assert.False(t, ok)
}

// Every catalog write drops all cached listings, so the next read goes
// back to the store.
func TestInvalidateDropsEveryListing(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	all := ListKey(store.ProductFilter{})
	millets := ListKey(store.ProductFilter{Category: "millets"})

	c.SetList(ctx, all, sampleListing("Foxtail Millet"))
	c.SetList(ctx, millets, sampleListing("Little Millet"))

	c.Invalidate(ctx)

	_, ok := c.GetList(ctx, all)
	assert.False(t, ok)
	_, ok = c.GetList(ctx, millets)
	assert.False(t, ok)
}

func TestNilCacheIsDisabled(t *testing.T) {
	var c *ProductCache
	ctx := context.Background()

	products, ok := c.GetList(ctx, "products:list::::")
	assert.False(t, ok)
	assert.Nil(t, products)

	// Writes and invalidation on a nil cache are no-ops, not panics.
	c.SetList(ctx, "products:list::::", nil)
	c.Invalidate(ctx)
}
