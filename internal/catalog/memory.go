package catalog

import (
	"context"
	"sort"

	"github.com/scrapworks/reclaimer/internal/domain"
	"github.com/scrapworks/reclaimer/internal/repository"
)

// MemoryStore is an in-memory repository.Catalog built from a loaded Config.
// The setup tool uses it to dry-run the engine before syncing a catalog. The
// store is immutable after construction and safe for concurrent reads.
type MemoryStore struct {
	items     map[string]domain.Item
	recipes   map[string][]domain.RecipeCost
	salvageBy map[string][]yieldEdge // material id -> producing edges
	recycleBy map[string][]yieldEdge
}

type yieldEdge struct {
	sourceID string
	quantity int
}

// NewMemoryStore builds a MemoryStore from a validated catalog config
func NewMemoryStore(config *Config) *MemoryStore {
	store := &MemoryStore{
		items:     make(map[string]domain.Item, len(config.Items)),
		recipes:   make(map[string][]domain.RecipeCost),
		salvageBy: make(map[string][]yieldEdge),
		recycleBy: make(map[string][]yieldEdge),
	}

	for _, def := range config.Items {
		store.items[def.ID] = def.Item()
	}

	for _, recipe := range config.Recipes {
		costs := make([]domain.RecipeCost, 0, len(recipe.Ingredients))
		for _, edge := range recipe.Ingredients {
			costs = append(costs, domain.RecipeCost{IngredientID: edge.ItemID, Quantity: edge.Quantity})
		}
		store.recipes[recipe.ItemID] = costs
	}

	index := func(target map[string][]yieldEdge, yields []YieldDef) {
		for _, yield := range yields {
			for _, edge := range yield.Outputs {
				target[edge.ItemID] = append(target[edge.ItemID], yieldEdge{
					sourceID: yield.SourceItemID,
					quantity: edge.Quantity,
				})
			}
		}
		// Sorted by source id to match the postgres query ordering
		for materialID := range target {
			edges := target[materialID]
			sort.Slice(edges, func(i, j int) bool { return edges[i].sourceID < edges[j].sourceID })
		}
	}
	index(store.salvageBy, config.Salvage)
	index(store.recycleBy, config.Recycle)

	return store
}

var _ repository.Catalog = (*MemoryStore)(nil)

// ItemByID returns the item with the given id, or domain.ErrItemNotFound
func (s *MemoryStore) ItemByID(_ context.Context, id string) (*domain.Item, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return &item, nil
}

// RecipesFor returns the recipe edges for itemID (empty when not craftable)
func (s *MemoryStore) RecipesFor(_ context.Context, itemID string) ([]domain.RecipeCost, error) {
	return s.recipes[itemID], nil
}

// SalvageOutputsFor returns salvage edges producing materialID, minus excluded sources
func (s *MemoryStore) SalvageOutputsFor(_ context.Context, materialID string, excluded []string) ([]domain.YieldRow, error) {
	return s.outputsFor(s.salvageBy, materialID, excluded)
}

// RecycleOutputsFor returns recycle edges producing materialID, minus excluded sources
func (s *MemoryStore) RecycleOutputsFor(_ context.Context, materialID string, excluded []string) ([]domain.YieldRow, error) {
	return s.outputsFor(s.recycleBy, materialID, excluded)
}

func (s *MemoryStore) outputsFor(index map[string][]yieldEdge, materialID string, excluded []string) ([]domain.YieldRow, error) {
	skip := make(map[string]struct{}, len(excluded))
	for _, id := range excluded {
		skip[id] = struct{}{}
	}

	var rows []domain.YieldRow
	for _, edge := range index[materialID] {
		if _, ok := skip[edge.sourceID]; ok {
			continue
		}
		item, ok := s.items[edge.sourceID]
		if !ok {
			// Dangling edge in the catalog; mirror the store contract and drop it
			continue
		}
		rows = append(rows, domain.YieldRow{SourceItem: item, Quantity: edge.quantity})
	}
	return rows, nil
}
