package aggregate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrapworks/reclaimer/internal/domain"
)

const scoreDelta = 1e-9

// scoringFixture wires a bare service around a mock catalog holding just the
// demanded materials, so compute* methods can be exercised directly.
func scoringFixture(t *testing.T) (*service, *MockCatalog, map[string]*domain.Item) {
	t.Helper()
	catalog := NewMockCatalog()
	catalog.AddItem(domain.Item{ID: "scrap", Name: "Scrap", Rarity: domain.RarityCommon, Type: "material", Weight: 0.5, StackSize: 50})
	catalog.AddItem(domain.Item{ID: "wires", Name: "Wires", Rarity: domain.RarityUncommon, Type: "material", Weight: 0.1, StackSize: 50})
	return &service{repo: catalog, normalize: BaseName}, catalog, make(map[string]*domain.Item)
}

func TestComputeSalvageScore_MaxYield(t *testing.T) {
	svc, _, cache := scoringFixture(t)
	demand := &demandResult{need: map[string]int{"scrap": 10}, order: []string{"scrap"}, total: 10}

	src := &domain.SalvagingSource{
		Item:          domain.Item{ID: "pipe", Name: "Pipe", Rarity: domain.RarityCommon, Weight: 1.0, StackSize: 10},
		SalvageYields: map[string]int{"scrap": 2},
	}

	score, err := svc.computeSalvageScore(context.Background(), cache, demand, src, domain.ScoringMaxYield)
	require.NoError(t, err)

	// base 2 x (10/10) = 2; yield weight 2x0.5 = 1; rarity 1.0; immediacy 1.2
	// slot bonus: output stack 50 vs source stack 10 -> 1 + (5-1)x0.3 = 2.2
	assert.InDelta(t, 5.28, score, scoreDelta)
}

func TestComputeSalvageScore_WeightConsciousSquaresYieldWeight(t *testing.T) {
	svc, _, cache := scoringFixture(t)
	demand := &demandResult{need: map[string]int{"scrap": 10}, order: []string{"scrap"}, total: 10}

	src := &domain.SalvagingSource{
		Item:          domain.Item{ID: "pipe", Name: "Pipe", Rarity: domain.RarityCommon, Weight: 1.0, StackSize: 10},
		SalvageYields: map[string]int{"scrap": 4},
	}

	maxYield, err := svc.computeSalvageScore(context.Background(), cache, demand, src, domain.ScoringMaxYield)
	require.NoError(t, err)
	weightConscious, err := svc.computeSalvageScore(context.Background(), cache, demand, src, domain.ScoringWeightConscious)
	require.NoError(t, err)

	// yield weight 4x0.5 = 2: divided once vs squared
	assert.InDelta(t, 5.28, maxYield, scoreDelta)
	assert.InDelta(t, 2.64, weightConscious, scoreDelta)
	assert.Less(t, weightConscious, maxYield)
}

func TestComputeSalvageScore_RarityPenalty(t *testing.T) {
	svc, _, cache := scoringFixture(t)
	demand := &demandResult{need: map[string]int{"scrap": 10}, order: []string{"scrap"}, total: 10}

	scoreFor := func(rarity domain.Rarity) float64 {
		src := &domain.SalvagingSource{
			Item:          domain.Item{ID: "pipe", Rarity: rarity, Weight: 1.0, StackSize: 50},
			SalvageYields: map[string]int{"scrap": 2},
		}
		score, err := svc.computeSalvageScore(context.Background(), cache, demand, src, domain.ScoringMaxYield)
		require.NoError(t, err)
		return score
	}

	common := scoreFor(domain.RarityCommon)
	assert.InDelta(t, 0.9*common, scoreFor(domain.RarityUncommon), scoreDelta)
	assert.InDelta(t, 0.8*common, scoreFor(domain.RarityRare), scoreDelta)
	assert.InDelta(t, 0.7*common, scoreFor(domain.RarityEpic), scoreDelta)
	assert.InDelta(t, 0.6*common, scoreFor(domain.RarityLegendary), scoreDelta)
}

func TestComputeSalvageScore_NoDemandedYields(t *testing.T) {
	svc, _, cache := scoringFixture(t)
	demand := &demandResult{need: map[string]int{"scrap": 10}, order: []string{"scrap"}, total: 10}

	src := &domain.SalvagingSource{
		Item:          domain.Item{ID: "pipe", Rarity: domain.RarityCommon, Weight: 1.0, StackSize: 10},
		SalvageYields: map[string]int{},
	}

	score, err := svc.computeSalvageScore(context.Background(), cache, demand, src, domain.ScoringMaxYield)
	require.NoError(t, err)
	assert.Zero(t, score)
}

func TestComputeRecycleScore_MaxYield(t *testing.T) {
	svc, _, cache := scoringFixture(t)
	demand := &demandResult{need: map[string]int{"scrap": 10, "wires": 5}, order: []string{"scrap", "wires"}, total: 15}

	src := &domain.SalvagingSource{
		Item:          domain.Item{ID: "radio", Name: "Broken Radio", Rarity: domain.RarityUncommon, Weight: 2.0, Value: 500, StackSize: 1},
		RecycleYields: map[string]int{"scrap": 3, "wires": 1},
	}

	score, err := svc.computeRecycleScore(context.Background(), cache, demand, src, domain.ScoringMaxYield)
	require.NoError(t, err)

	// base 3x(10/15) + 1x(5/15) = 7/3; /weight 2; rarity 1.05;
	// multi-material 1.15^1; complexity 0.85; slot bonus (50/1) -> 15.7
	expected := (7.0 / 3.0) / 2.0 * 1.05 * 1.15 * 0.85 * 15.7
	assert.InDelta(t, expected, score, scoreDelta)
}

func TestComputeRecycleScore_WeightConscious(t *testing.T) {
	svc, _, cache := scoringFixture(t)
	demand := &demandResult{need: map[string]int{"scrap": 10, "wires": 5}, order: []string{"scrap", "wires"}, total: 15}

	src := &domain.SalvagingSource{
		Item:          domain.Item{ID: "radio", Name: "Broken Radio", Rarity: domain.RarityUncommon, Weight: 2.0, Value: 500, StackSize: 1},
		RecycleYields: map[string]int{"scrap": 3, "wires": 1},
	}

	score, err := svc.computeRecycleScore(context.Background(), cache, demand, src, domain.ScoringWeightConscious)
	require.NoError(t, err)

	// weight squared, then carry penalty 1-2/10 = 0.8 and value bonus
	// 1 + (500/5000)x0.1 = 1.01 on top of the max_yield multipliers
	expected := (7.0 / 3.0) / 4.0 * 1.05 * 1.15 * 0.8 * 1.01 * 0.85 * 15.7
	assert.InDelta(t, expected, score, scoreDelta)
}

func TestComputeRecycleScore_MultiMaterialBonusCompounds(t *testing.T) {
	svc, catalog, cache := scoringFixture(t)
	catalog.AddItem(domain.Item{ID: "chems", Name: "Chems", Rarity: domain.RarityUncommon, Weight: 0.3, StackSize: 50})

	demand := &demandResult{
		need:  map[string]int{"scrap": 10, "wires": 10, "chems": 10},
		order: []string{"scrap", "wires", "chems"},
		total: 30,
	}

	scoreFor := func(yields map[string]int) float64 {
		src := &domain.SalvagingSource{
			Item:          domain.Item{ID: "unit", Rarity: domain.RarityCommon, Weight: 1.0, StackSize: 50},
			RecycleYields: yields,
		}
		score, err := svc.computeRecycleScore(context.Background(), cache, demand, src, domain.ScoringMaxYield)
		require.NoError(t, err)
		return score
	}

	one := scoreFor(map[string]int{"scrap": 3})
	two := scoreFor(map[string]int{"scrap": 2, "wires": 1})
	three := scoreFor(map[string]int{"scrap": 1, "wires": 1, "chems": 1})

	// same total yield and uniform demand share, so only the 1.15^(n-1)
	// compounding separates the scores
	assert.InDelta(t, one*1.15, two, scoreDelta)
	assert.InDelta(t, one*1.15*1.15, three, scoreDelta)
}

func TestComputeRecycleScore_ZeroWeightGuard(t *testing.T) {
	svc, _, cache := scoringFixture(t)
	demand := &demandResult{need: map[string]int{"scrap": 10}, order: []string{"scrap"}, total: 10}

	src := &domain.SalvagingSource{
		Item:          domain.Item{ID: "feather", Rarity: domain.RarityCommon, Weight: 0, StackSize: 50},
		RecycleYields: map[string]int{"scrap": 2},
	}

	score, err := svc.computeRecycleScore(context.Background(), cache, demand, src, domain.ScoringMaxYield)
	require.NoError(t, err)
	assert.Greater(t, score, 0.0)

	// weightless items divide by 1, never by zero
	expected := 2.0 * 1.0 * 1.0 * 0.85
	assert.InDelta(t, expected, score, scoreDelta)
}

func TestCarryWeightPenalty(t *testing.T) {
	assert.InDelta(t, 1.0, carryWeightPenalty(0), scoreDelta)
	assert.InDelta(t, 0.6, carryWeightPenalty(4), scoreDelta)
	assert.InDelta(t, 0.3, carryWeightPenalty(7), scoreDelta)
	// floored at 30% no matter how heavy
	assert.InDelta(t, 0.3, carryWeightPenalty(15), scoreDelta)
	assert.InDelta(t, 0.3, carryWeightPenalty(100), scoreDelta)
}

func TestValueBonus(t *testing.T) {
	assert.InDelta(t, 1.0, valueBonus(0), scoreDelta)
	assert.InDelta(t, 1.05, valueBonus(2500), scoreDelta)
	assert.InDelta(t, 1.1, valueBonus(5000), scoreDelta)
	// capped at +30%
	assert.InDelta(t, 1.3, valueBonus(15000), scoreDelta)
	assert.InDelta(t, 1.3, valueBonus(1000000), scoreDelta)
}

func TestSlotEfficiencyBonus_NeverBelowOne(t *testing.T) {
	svc, catalog, cache := scoringFixture(t)
	catalog.AddItem(domain.Item{ID: "brick", Name: "Brick", Rarity: domain.RarityCommon, Weight: 1.0, StackSize: 1})

	demand := &demandResult{need: map[string]int{"brick": 5}, order: []string{"brick"}, total: 5}

	// yields stack far worse than the source item itself
	representative := domain.Item{ID: "crate", StackSize: 50}
	bonus, err := svc.slotEfficiencyBonus(context.Background(), cache, map[string]int{"brick": 2}, demand, representative)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, bonus, scoreDelta)
}

func TestSlotEfficiencyBonus_WeightedByQuantity(t *testing.T) {
	svc, catalog, cache := scoringFixture(t)
	catalog.AddItem(domain.Item{ID: "gem", Name: "Gem", Rarity: domain.RarityRare, Weight: 0.1, StackSize: 100})

	demand := &demandResult{need: map[string]int{"scrap": 5, "gem": 5}, order: []string{"scrap", "gem"}, total: 10}

	representative := domain.Item{ID: "box", StackSize: 10}
	bonus, err := svc.slotEfficiencyBonus(context.Background(), cache, map[string]int{"scrap": 3, "gem": 1}, demand, representative)
	require.NoError(t, err)

	// avg output stack (3x50 + 1x100)/4 = 62.5; efficiency 6.25
	assert.InDelta(t, 1.0+(6.25-1.0)*SlotEfficiencyStep, bonus, scoreDelta)
}

func TestSlotEfficiencyBonus_NoYields(t *testing.T) {
	svc, _, cache := scoringFixture(t)
	demand := &demandResult{need: map[string]int{"scrap": 5}, order: []string{"scrap"}, total: 5}

	bonus, err := svc.slotEfficiencyBonus(context.Background(), cache, map[string]int{}, demand, domain.Item{ID: "box", StackSize: 10})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, bonus, scoreDelta)
}
