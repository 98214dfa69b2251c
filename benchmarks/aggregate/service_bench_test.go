package aggregate_bench

import (
	"context"
	"fmt"
	"testing"

	"github.com/scrapworks/reclaimer/internal/aggregate"
	"github.com/scrapworks/reclaimer/internal/domain"
)

// --- Stubs (Zero-overhead catalog for benchmarking) ---

// StubCatalog serves a synthetic catalog: every craftable requires all six
// scrappy materials, and each material is produced by a fixed fan-out of
// loot items on both the salvage and recycle side.
type StubCatalog struct {
	fanOut int
}

func (s *StubCatalog) ItemByID(ctx context.Context, id string) (*domain.Item, error) {
	return &domain.Item{
		ID:        id,
		Name:      id,
		Rarity:    domain.RarityCommon,
		Type:      "equipment",
		Value:     500,
		Weight:    1.5,
		StackSize: 5,
		Craftable: true,
	}, nil
}

var benchMaterials = []string{"metal_parts", "plastic_parts", "fabric", "rubber_parts", "wires", "chemicals"}

func (s *StubCatalog) RecipesFor(ctx context.Context, itemID string) ([]domain.RecipeCost, error) {
	costs := make([]domain.RecipeCost, 0, len(benchMaterials))
	for i, materialID := range benchMaterials {
		costs = append(costs, domain.RecipeCost{IngredientID: materialID, Quantity: i + 1})
	}
	return costs, nil
}

func (s *StubCatalog) SalvageOutputsFor(ctx context.Context, materialID string, excluded []string) ([]domain.YieldRow, error) {
	return s.yields(materialID, "salvage", 3), nil
}

func (s *StubCatalog) RecycleOutputsFor(ctx context.Context, materialID string, excluded []string) ([]domain.YieldRow, error) {
	return s.yields(materialID, "recycle", 7), nil
}

func (s *StubCatalog) yields(materialID, side string, quantity int) []domain.YieldRow {
	rows := make([]domain.YieldRow, 0, s.fanOut)
	for i := 0; i < s.fanOut; i++ {
		rows = append(rows, domain.YieldRow{
			SourceItem: domain.Item{
				ID:        fmt.Sprintf("%s_%s_src_%03d", materialID, side, i),
				Name:      fmt.Sprintf("%s %s source %d", materialID, side, i),
				Rarity:    domain.AllRarities[i%len(domain.AllRarities)],
				Type:      "loot",
				Value:     100 * (i + 1),
				Weight:    0.5 * float64(i+1),
				StackSize: 1 + i%10,
			},
			Quantity: quantity,
		})
	}
	return rows
}

// --- Benchmark Functions ---

// BenchmarkAggregate_WideFanOut measures a full aggregation pass where each
// material has many candidate sources, which dominates real-world cost.
func BenchmarkAggregate_WideFanOut(b *testing.B) {
	svc := aggregate.NewService(&StubCatalog{fanOut: 50})
	ctx := context.Background()
	bookmarked := []string{"breacher", "bag", "rig"}
	opts := domain.DefaultFilterOptions()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := svc.Aggregate(ctx, bookmarked, domain.ScoringMaxYield, opts)
		if err != nil {
			b.Fatalf("Aggregate failed: %v", err)
		}
	}
}

// BenchmarkAggregate_ManyBookmarks measures demand resolution and exclusion
// handling across a large bookmark set with a modest source fan-out.
func BenchmarkAggregate_ManyBookmarks(b *testing.B) {
	svc := aggregate.NewService(&StubCatalog{fanOut: 10})
	ctx := context.Background()

	bookmarked := make([]string, 100)
	for i := range bookmarked {
		bookmarked[i] = fmt.Sprintf("craftable_%03d", i)
	}
	opts := domain.DefaultFilterOptions()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := svc.Aggregate(ctx, bookmarked, domain.ScoringWeightConscious, opts)
		if err != nil {
			b.Fatalf("Aggregate failed: %v", err)
		}
	}
}
