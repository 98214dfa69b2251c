package aggregate

import (
	"context"
	"math"

	"github.com/scrapworks/reclaimer/internal/domain"
)

// averageYields divides group yield totals by member count (rounded to nearest
// integer), keeping only materials still present in the demand set. Iteration
// runs in demand order for determinism.
func averageYields(totals map[string]int, memberCount int, demand *demandResult) map[string]int {
	avg := make(map[string]int)
	for _, materialID := range demand.order {
		total, ok := totals[materialID]
		if !ok {
			continue
		}
		avg[materialID] = int(math.Round(float64(total) / float64(memberCount)))
	}
	return avg
}

// demandWeightedBase sums yieldAmount x (userNeeds/totalDemand) per material
func demandWeightedBase(yields map[string]int, demand *demandResult) float64 {
	if demand.total == 0 {
		return 0
	}
	base := 0.0
	for _, materialID := range demand.order {
		quantity, ok := yields[materialID]
		if !ok {
			continue
		}
		base += float64(quantity) * float64(demand.need[materialID]) / float64(demand.total)
	}
	return base
}

// slotEfficiencyBonus rewards sources whose yields stack better than the
// source itself. Output stack sizes are weighted by yield quantity; the bonus
// never drops a score below its pre-bonus value.
func (s *service) slotEfficiencyBonus(ctx context.Context, cache map[string]*domain.Item, yields map[string]int, demand *demandResult, representative domain.Item) (float64, error) {
	totalQuantity := 0
	weightedStack := 0.0
	for _, materialID := range demand.order {
		quantity, ok := yields[materialID]
		if !ok || quantity <= 0 {
			continue
		}
		stackSize := 1
		material, err := s.lookupItem(ctx, cache, materialID)
		if err != nil {
			return 0, err
		}
		if material != nil {
			stackSize = material.EffectiveStackSize()
		}
		weightedStack += float64(quantity) * float64(stackSize)
		totalQuantity += quantity
	}
	if totalQuantity == 0 {
		return 1.0, nil
	}

	avgOutputStack := weightedStack / float64(totalQuantity)
	slotEfficiency := avgOutputStack / float64(representative.EffectiveStackSize())
	return math.Max(1.0, 1.0+(slotEfficiency-1.0)*SlotEfficiencyStep), nil
}

// carryWeightPenalty progressively discounts heavy items, floored at 30%
func carryWeightPenalty(weight float64) float64 {
	return math.Max(CarryWeightPenaltyFloor, 1.0-weight/CarryWeightPenaltyDivisor)
}

// valueBonus gives high sell-value items a small boost, capped at +30%
func valueBonus(value int) float64 {
	return math.Min(ValueBonusCap, 1.0+(float64(value)/ValueBonusDivisor)*ValueBonusStep)
}

// scoreGroup turns a tier group into a scored SalvagingSource, or nil when the
// group has no usable yield against the current demand.
//
// The representative is the first member seen; its weight, value, rarity and
// stack size feed the formulas even though yields are averaged across the
// whole group. That asymmetry matches live behavior and is kept on purpose.
func (s *service) scoreGroup(ctx context.Context, cache map[string]*domain.Item, demand *demandResult, g *sourceGroup, method domain.ScoringMethod) (*domain.SalvagingSource, error) {
	representative := g.members[0]

	salvageYields := averageYields(g.salvageTotals, len(g.members), demand)
	recycleYields := averageYields(g.recycleTotals, len(g.members), demand)
	if len(salvageYields) == 0 && len(recycleYields) == 0 {
		return nil, nil
	}

	src := &domain.SalvagingSource{
		Item:          representative,
		BaseName:      g.baseName,
		SalvageYields: salvageYields,
		RecycleYields: recycleYields,
	}

	salvageScore, err := s.computeSalvageScore(ctx, cache, demand, src, method)
	if err != nil {
		return nil, err
	}
	src.SalvageScore = salvageScore

	recycleScore, err := s.computeRecycleScore(ctx, cache, demand, src, method)
	if err != nil {
		return nil, err
	}
	src.RecycleScore = recycleScore

	if src.SalvageScore == 0 && src.RecycleScore == 0 {
		return nil, nil
	}
	return src, nil
}

func (s *service) computeSalvageScore(ctx context.Context, cache map[string]*domain.Item, demand *demandResult, src *domain.SalvagingSource, method domain.ScoringMethod) (float64, error) {
	base := demandWeightedBase(src.SalvageYields, demand)
	if base == 0 {
		return 0, nil
	}

	// Weight of the materials carried away after salvaging; falls back to the
	// source item's own weight when there are no salvage yields to weigh.
	totalYieldWeight := 0.0
	for _, materialID := range demand.order {
		quantity, ok := src.SalvageYields[materialID]
		if !ok {
			continue
		}
		material, err := s.lookupItem(ctx, cache, materialID)
		if err != nil {
			return 0, err
		}
		if material != nil {
			totalYieldWeight += float64(quantity) * material.Weight
		}
	}
	if totalYieldWeight == 0 {
		totalYieldWeight = src.Item.Weight
	}
	if totalYieldWeight <= 0 {
		totalYieldWeight = 1
	}

	weightFactor := totalYieldWeight
	if method == domain.ScoringWeightConscious {
		// Squaring punishes heavy yields far harder for weight-sensitive players
		weightFactor = totalYieldWeight * totalYieldWeight
	}

	score := base / weightFactor * rarityPenalty(src.Item.Rarity) * SalvageImmediacyBonus

	bonus, err := s.slotEfficiencyBonus(ctx, cache, src.SalvageYields, demand, src.Item)
	if err != nil {
		return 0, err
	}
	return score * bonus, nil
}

func (s *service) computeRecycleScore(ctx context.Context, cache map[string]*domain.Item, demand *demandResult, src *domain.SalvagingSource, method domain.ScoringMethod) (float64, error) {
	base := demandWeightedBase(src.RecycleYields, demand)
	if base == 0 {
		return 0, nil
	}

	weight := src.Item.Weight
	if weight <= 0 {
		weight = 1
	}

	multiMaterial := math.Pow(MultiMaterialBonusBase, float64(len(src.RecycleYields)-1))

	var score float64
	if method == domain.ScoringWeightConscious {
		score = base / (weight * weight) * rarityBonus(src.Item.Rarity) * multiMaterial *
			carryWeightPenalty(src.Item.Weight) * valueBonus(src.Item.Value) * RecycleComplexityPenalty
	} else {
		score = base / weight * rarityBonus(src.Item.Rarity) * multiMaterial * RecycleComplexityPenalty
	}

	bonus, err := s.slotEfficiencyBonus(ctx, cache, src.RecycleYields, demand, src.Item)
	if err != nil {
		return 0, err
	}
	return score * bonus, nil
}

func rarityPenalty(r domain.Rarity) float64 {
	if p, ok := salvageRarityPenalty[r]; ok {
		return p
	}
	return 1.0
}

func rarityBonus(r domain.Rarity) float64 {
	if b, ok := recycleRarityBonus[r]; ok {
		return b
	}
	return 1.0
}
