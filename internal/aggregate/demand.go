package aggregate

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/scrapworks/reclaimer/internal/domain"
	"github.com/scrapworks/reclaimer/internal/logger"
)

// demandResult carries the resolved material demand plus iteration helpers.
// order holds material ids in the final (demand-sorted) output order; every
// later stage iterates maps through it so results stay deterministic.
type demandResult struct {
	materials []domain.MaterialRequirement
	need      map[string]int
	order     []string
	total     int
}

// lookupItem fetches an item through the per-run cache. A dangling reference
// is cached as nil and reported as (nil, nil) so callers can skip the edge.
func (s *service) lookupItem(ctx context.Context, cache map[string]*domain.Item, id string) (*domain.Item, error) {
	if item, ok := cache[id]; ok {
		return item, nil
	}
	item, err := s.repo.ItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			cache[id] = nil
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item %s: %w", id, err)
	}
	cache[id] = item
	return item, nil
}

// shouldIncludeMaterial applies the material-level filters: rarity allow-list
// and the scrappy auto-collected exclusion set.
func shouldIncludeMaterial(material *domain.Item, opts domain.FilterOptions) bool {
	if opts.RarityFilters != nil {
		if _, ok := opts.RarityFilters[material.Rarity]; !ok {
			return false
		}
	}
	if opts.HideScrappyCollected {
		if _, ok := ScrappyCollectedMaterialIDs[material.ID]; ok {
			return false
		}
	}
	return true
}

// resolveDemand walks the recipes of every non-paused bookmark and aggregates
// required quantities per material, tracking which bookmarks need each one.
// Recipe edges pointing at unknown items are skipped, never fatal.
func (s *service) resolveDemand(ctx context.Context, bookmarkedIDs []string, opts domain.FilterOptions, cache map[string]*domain.Item) (*demandResult, error) {
	log := logger.FromContext(ctx)

	need := make(map[string]int)
	materialByID := make(map[string]domain.Item)
	requiredBy := make(map[string][]string)
	requiredBySeen := make(map[string]map[string]struct{})
	var firstSeen []string

	for _, bookmarkID := range bookmarkedIDs {
		if _, paused := opts.PausedBookmarks[bookmarkID]; paused {
			continue
		}

		edges, err := s.repo.RecipesFor(ctx, bookmarkID)
		if err != nil {
			return nil, fmt.Errorf("failed to get recipes for %s: %w", bookmarkID, err)
		}

		for _, edge := range edges {
			material, err := s.lookupItem(ctx, cache, edge.IngredientID)
			if err != nil {
				return nil, err
			}
			if material == nil {
				log.Debug("Skipping recipe edge with unknown ingredient",
					"bookmark", bookmarkID, "ingredient", edge.IngredientID)
				continue
			}
			if !shouldIncludeMaterial(material, opts) {
				continue
			}

			if _, ok := need[material.ID]; !ok {
				firstSeen = append(firstSeen, material.ID)
				materialByID[material.ID] = *material
				requiredBySeen[material.ID] = make(map[string]struct{})
			}
			need[material.ID] += edge.Quantity

			if _, ok := requiredBySeen[material.ID][bookmarkID]; !ok {
				requiredBySeen[material.ID][bookmarkID] = struct{}{}
				requiredBy[material.ID] = append(requiredBy[material.ID], bookmarkID)
			}
		}
	}

	materials := make([]domain.MaterialRequirement, 0, len(firstSeen))
	for _, id := range firstSeen {
		materials = append(materials, domain.MaterialRequirement{
			Material:      materialByID[id],
			TotalQuantity: need[id],
			RequiredBy:    requiredBy[id],
		})
	}

	// Stable sort keeps first-seen order on equal quantities
	sort.SliceStable(materials, func(i, j int) bool {
		return materials[i].TotalQuantity > materials[j].TotalQuantity
	})

	result := &demandResult{
		materials: materials,
		need:      need,
		order:     make([]string, 0, len(materials)),
	}
	for _, m := range materials {
		result.order = append(result.order, m.Material.ID)
		result.total += m.TotalQuantity
	}

	return result, nil
}
