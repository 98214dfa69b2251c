package repository

import (
	"context"

	"github.com/scrapworks/reclaimer/internal/domain"
)

// Catalog defines the read-only query interface over the item/recipe store.
// It is the only collaborator the aggregation engine depends on.
type Catalog interface {
	// ItemByID returns the item with the given id, or domain.ErrItemNotFound
	ItemByID(ctx context.Context, id string) (*domain.Item, error)

	// RecipesFor returns the recipe edges (ingredient, quantity) required to craft itemID.
	// An item with no recipe returns an empty slice, not an error.
	RecipesFor(ctx context.Context, itemID string) ([]domain.RecipeCost, error)

	// SalvageOutputsFor returns every salvage edge producing materialID whose
	// source item id is not in excluded, ordered by source item id.
	SalvageOutputsFor(ctx context.Context, materialID string, excluded []string) ([]domain.YieldRow, error)

	// RecycleOutputsFor is SalvageOutputsFor over the recycle edge set.
	RecycleOutputsFor(ctx context.Context, materialID string, excluded []string) ([]domain.YieldRow, error)
}

// CatalogAdmin defines the write interface used by the catalog sync pipeline
type CatalogAdmin interface {
	// UpsertItem inserts or updates a catalog item, reporting whether a row was created
	UpsertItem(ctx context.Context, item *domain.Item) (created bool, err error)

	// ReplaceRecipes swaps the full recipe edge set for itemID
	ReplaceRecipes(ctx context.Context, itemID string, costs []domain.RecipeCost) error

	// ReplaceSalvageOutputs swaps the full salvage edge set for sourceItemID
	ReplaceSalvageOutputs(ctx context.Context, sourceItemID string, outputs map[string]int) error

	// ReplaceRecycleOutputs swaps the full recycle edge set for sourceItemID
	ReplaceRecycleOutputs(ctx context.Context, sourceItemID string, outputs map[string]int) error
}
