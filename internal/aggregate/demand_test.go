package aggregate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrapworks/reclaimer/internal/domain"
)

func TestShouldIncludeMaterial(t *testing.T) {
	metal := &domain.Item{ID: "metal_parts", Rarity: domain.RarityCommon}
	board := &domain.Item{ID: "electronic_board", Rarity: domain.RarityRare}

	t.Run("nil rarity filter allows everything", func(t *testing.T) {
		opts := domain.FilterOptions{}
		assert.True(t, shouldIncludeMaterial(metal, opts))
		assert.True(t, shouldIncludeMaterial(board, opts))
	})

	t.Run("rarity allow-list", func(t *testing.T) {
		opts := domain.FilterOptions{RarityFilters: map[domain.Rarity]struct{}{domain.RarityRare: {}}}
		assert.False(t, shouldIncludeMaterial(metal, opts))
		assert.True(t, shouldIncludeMaterial(board, opts))
	})

	t.Run("scrappy exclusion", func(t *testing.T) {
		opts := domain.FilterOptions{HideScrappyCollected: true}
		assert.False(t, shouldIncludeMaterial(metal, opts))
		assert.True(t, shouldIncludeMaterial(board, opts))
	})

	t.Run("scrappy off keeps auto-collected materials", func(t *testing.T) {
		opts := domain.FilterOptions{HideScrappyCollected: false}
		assert.True(t, shouldIncludeMaterial(metal, opts))
	})
}

func TestBuildExclusions(t *testing.T) {
	demand := &demandResult{order: []string{"metal_parts", "wires"}}
	opts := domain.FilterOptions{
		HiddenSourceItems: map[string]struct{}{"radio": {}, "battery": {}},
	}

	excluded := buildExclusions([]string{"breacher", "bag"}, demand, opts)

	// bookmarks first, then demanded materials, then hidden ids sorted
	assert.Equal(t, []string{"breacher", "bag", "metal_parts", "wires", "battery", "radio"}, excluded)
}

func TestBuildExclusions_Deduplicates(t *testing.T) {
	demand := &demandResult{order: []string{"metal_parts"}}
	opts := domain.FilterOptions{
		HiddenSourceItems: map[string]struct{}{"metal_parts": {}, "breacher": {}},
	}

	excluded := buildExclusions([]string{"breacher"}, demand, opts)
	assert.Equal(t, []string{"breacher", "metal_parts"}, excluded)
}

func TestResolveDemand_RequiredByDeduplicated(t *testing.T) {
	catalog := NewMockCatalog()
	catalog.AddItem(domain.Item{ID: "metal_parts", Name: "Metal Parts", Rarity: domain.RarityCommon, StackSize: 50})
	catalog.AddItem(domain.Item{ID: "kit", Name: "Kit", Rarity: domain.RarityCommon, StackSize: 1, Craftable: true})
	// two edges from the same recipe onto the same material
	catalog.AddRecipe("kit",
		domain.RecipeCost{IngredientID: "metal_parts", Quantity: 3},
		domain.RecipeCost{IngredientID: "metal_parts", Quantity: 2})

	svc := &service{repo: catalog, normalize: BaseName}
	demand, err := svc.resolveDemand(context.Background(), []string{"kit"}, domain.FilterOptions{}, make(map[string]*domain.Item))
	require.NoError(t, err)

	require.Len(t, demand.materials, 1)
	assert.Equal(t, 5, demand.materials[0].TotalQuantity)
	assert.Equal(t, []string{"kit"}, demand.materials[0].RequiredBy)
	assert.Equal(t, 5, demand.total)
	assert.Equal(t, []string{"metal_parts"}, demand.order)
}

func TestResolveDemand_StableOrderOnEqualQuantities(t *testing.T) {
	catalog := NewMockCatalog()
	catalog.AddItem(domain.Item{ID: "mat_a", Name: "Mat A", Rarity: domain.RarityCommon, StackSize: 50})
	catalog.AddItem(domain.Item{ID: "mat_b", Name: "Mat B", Rarity: domain.RarityCommon, StackSize: 50})
	catalog.AddItem(domain.Item{ID: "kit", Name: "Kit", Rarity: domain.RarityCommon, StackSize: 1, Craftable: true})
	catalog.AddRecipe("kit",
		domain.RecipeCost{IngredientID: "mat_b", Quantity: 4},
		domain.RecipeCost{IngredientID: "mat_a", Quantity: 4})

	svc := &service{repo: catalog, normalize: BaseName}
	demand, err := svc.resolveDemand(context.Background(), []string{"kit"}, domain.FilterOptions{}, make(map[string]*domain.Item))
	require.NoError(t, err)

	// equal quantities keep recipe-edge order
	assert.Equal(t, []string{"mat_b", "mat_a"}, demand.order)
}
