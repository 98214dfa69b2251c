package domain

// ScoringMethod selects the weighting applied by the dual scoring engine
type ScoringMethod string

const (
	// ScoringMaxYield weights scores purely by demand-weighted yield
	ScoringMaxYield ScoringMethod = "max_yield"
	// ScoringWeightConscious punishes heavy yields and heavy carry items far more aggressively
	ScoringWeightConscious ScoringMethod = "weight_conscious"
)

// Valid reports whether m is a known scoring method
func (m ScoringMethod) Valid() bool {
	return m == ScoringMaxYield || m == ScoringWeightConscious
}

// FilterOptions controls which materials and sources are considered by an
// aggregation run. It is owned by the caller and never mutates catalog data.
type FilterOptions struct {
	HideScrappyCollected bool
	RarityFilters        map[Rarity]struct{}
	HiddenSourceItems    map[string]struct{}
	PausedBookmarks      map[string]struct{}
}

// DefaultFilterOptions returns options with all five rarities enabled and no exclusions
func DefaultFilterOptions() FilterOptions {
	rarities := make(map[Rarity]struct{}, len(AllRarities))
	for _, r := range AllRarities {
		rarities[r] = struct{}{}
	}
	return FilterOptions{
		RarityFilters:     rarities,
		HiddenSourceItems: make(map[string]struct{}),
		PausedBookmarks:   make(map[string]struct{}),
	}
}

// MaterialRequirement is the aggregated demand for one base material across
// all non-paused bookmarks. TotalQuantity is always > 0.
type MaterialRequirement struct {
	Material      Item     `json:"material"`
	TotalQuantity int      `json:"total_quantity"`
	RequiredBy    []string `json:"required_by"` // bookmark item ids, first-seen order
}

// SalvagingSource is one tier group of catalog items that yields demanded
// materials. Item is the representative (first tier variant seen); yields are
// per-material averages across the group, restricted to demanded materials.
type SalvagingSource struct {
	Item          Item           `json:"item"`
	BaseName      string         `json:"base_name"`
	SalvageYields map[string]int `json:"salvage_yields"`
	RecycleYields map[string]int `json:"recycle_yields"`
	SalvageScore  float64        `json:"salvage_score"`
	RecycleScore  float64        `json:"recycle_score"`
}

// AggregatedMaterialsData is the complete, immutable output of one aggregation
// run. It is fully recomputed on every input change.
type AggregatedMaterialsData struct {
	Materials         []MaterialRequirement `json:"materials"`           // sorted by TotalQuantity desc
	SalvageSources    []SalvagingSource     `json:"salvage_sources"`     // sorted by SalvageScore desc
	RecycleSources    []SalvagingSource     `json:"recycle_sources"`     // sorted by RecycleScore desc
	MaterialToSources map[string][]string   `json:"material_to_sources"` // material id -> ordered unique source ids
	SourceToMaterials map[string][]string   `json:"source_to_materials"` // source id -> ordered unique material ids
}
