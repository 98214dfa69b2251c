package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/scrapworks/reclaimer/internal/domain"
	"github.com/scrapworks/reclaimer/internal/metrics"
	"github.com/scrapworks/reclaimer/internal/repository"
)

// CachedCatalog decorates a repository.Catalog with an expirable LRU cache on
// ItemByID. Catalog data only changes on sync, so a short TTL keeps hot item
// lookups off the database without a manual invalidation path. Negative
// lookups are cached too; dangling references repeat on every aggregation.
type CachedCatalog struct {
	inner repository.Catalog
	lru   *expirable.LRU[string, *domain.Item] // nil value = known missing
}

// NewCachedCatalog wraps inner with an item cache of the given size and TTL
func NewCachedCatalog(inner repository.Catalog, size int, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{
		inner: inner,
		lru:   expirable.NewLRU[string, *domain.Item](size, nil, ttl),
	}
}

var _ repository.Catalog = (*CachedCatalog)(nil)

// ItemByID returns the cached item when present, consulting the inner store on miss
func (c *CachedCatalog) ItemByID(ctx context.Context, id string) (*domain.Item, error) {
	if item, ok := c.lru.Get(id); ok {
		metrics.CatalogItemCacheHits.Inc()
		if item == nil {
			return nil, domain.ErrItemNotFound
		}
		return item, nil
	}
	metrics.CatalogItemCacheMisses.Inc()

	item, err := c.inner.ItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			c.lru.Add(id, nil)
		}
		return nil, err
	}
	c.lru.Add(id, item)
	return item, nil
}

// RecipesFor passes through to the inner store
func (c *CachedCatalog) RecipesFor(ctx context.Context, itemID string) ([]domain.RecipeCost, error) {
	return c.inner.RecipesFor(ctx, itemID)
}

// SalvageOutputsFor passes through to the inner store
func (c *CachedCatalog) SalvageOutputsFor(ctx context.Context, materialID string, excluded []string) ([]domain.YieldRow, error) {
	return c.inner.SalvageOutputsFor(ctx, materialID, excluded)
}

// RecycleOutputsFor passes through to the inner store
func (c *CachedCatalog) RecycleOutputsFor(ctx context.Context, materialID string, excluded []string) ([]domain.YieldRow, error) {
	return c.inner.RecycleOutputsFor(ctx, materialID, excluded)
}

// Purge drops every cached entry; called after a catalog sync
func (c *CachedCatalog) Purge() {
	c.lru.Purge()
}
