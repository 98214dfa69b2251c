package aggregate

import (
	"regexp"

	"github.com/scrapworks/reclaimer/internal/domain"
)

// Scoring constants. These are fixed contract values tuned against live player
// feedback; changing any of them changes every recommendation in the app.
const (
	// RecyclingThreshold is the minimum recycleScore/salvageScore ratio before
	// carrying an item back to base beats salvaging it on the spot
	RecyclingThreshold = 2.0

	// SalvageImmediacyBonus is a flat reward for salvaging's lower effort
	SalvageImmediacyBonus = 1.2

	// RecycleComplexityPenalty reflects the extra steps recycling requires
	RecycleComplexityPenalty = 0.85

	// MultiMaterialBonusBase compounds per extra distinct recycle material: base^(n-1)
	MultiMaterialBonusBase = 1.15

	// SlotEfficiencyStep scales how much better-stacking yields raise a score
	SlotEfficiencyStep = 0.3

	// CarryWeightPenaltyFloor caps how hard heavy items are discounted
	CarryWeightPenaltyFloor = 0.3

	// CarryWeightPenaltyDivisor: penalty = 1 - weight/divisor
	CarryWeightPenaltyDivisor = 10.0

	// ValueBonusCap caps the sell-value bonus at +30%
	ValueBonusCap = 1.3

	// ValueBonusDivisor and ValueBonusStep: bonus = 1 + (value/divisor)*step
	ValueBonusDivisor = 5000.0
	ValueBonusStep    = 0.1
)

// salvageRarityPenalty favors common items for field salvaging; rarer gear is
// scarcer and better used elsewhere.
var salvageRarityPenalty = map[domain.Rarity]float64{
	domain.RarityCommon:    1.0,
	domain.RarityUncommon:  0.9,
	domain.RarityRare:      0.8,
	domain.RarityEpic:      0.7,
	domain.RarityLegendary: 0.6,
}

// recycleRarityBonus is the inverse lean: rarer items tend to yield more
// diverse materials and are worth the carry back to base.
var recycleRarityBonus = map[domain.Rarity]float64{
	domain.RarityCommon:    1.0,
	domain.RarityUncommon:  1.05,
	domain.RarityRare:      1.10,
	domain.RarityEpic:      1.15,
	domain.RarityLegendary: 1.25,
}

// ScrappyCollectedMaterialIDs are the six low-value materials the Scrappy
// companion harvests automatically; players tracking them manually just see
// noise, so the hide-scrappy filter removes them from demand entirely.
var ScrappyCollectedMaterialIDs = map[string]struct{}{
	"metal_parts":   {},
	"plastic_parts": {},
	"fabric":        {},
	"rubber_parts":  {},
	"wires":         {},
	"chemicals":     {},
}

// TierNormalizer maps a display name to its tier-group base name.
// The default strips trailing roman-numeral tier suffixes; it is pluggable
// because the suffix convention belongs to the external catalog, not to us.
type TierNormalizer func(name string) string

var tierSuffixPattern = regexp.MustCompile(`(\s+(?:IV|III|II|I))+$`)

// BaseName strips a trailing " I"/" II"/" III"/" IV" tier suffix from an item
// display name, so "Anvil III" and "Anvil" group together.
func BaseName(name string) string {
	return tierSuffixPattern.ReplaceAllString(name, "")
}
