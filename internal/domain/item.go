package domain

// Rarity represents the ordered quality tier of a catalog item
type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityUncommon  Rarity = "UNCOMMON"
	RarityRare      Rarity = "RARE"
	RarityEpic      Rarity = "EPIC"
	RarityLegendary Rarity = "LEGENDARY"
)

// AllRarities lists every rarity tier in ascending order
var AllRarities = []Rarity{
	RarityCommon,
	RarityUncommon,
	RarityRare,
	RarityEpic,
	RarityLegendary,
}

// Valid reports whether r is one of the five known tiers
func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

// Item represents an immutable catalog record.
// ID is the stable string key used throughout the system; display names carry
// tier suffixes ("Anvil II") and are only used for tier grouping and rendering.
type Item struct {
	ID        string  `json:"item_id" db:"item_id"`
	Name      string  `json:"name" db:"name"`
	Rarity    Rarity  `json:"rarity" db:"rarity"`
	Type      string  `json:"item_type" db:"item_type"`
	Value     int     `json:"value" db:"value"`
	Weight    float64 `json:"weight" db:"weight"`
	StackSize int     `json:"stack_size,omitempty" db:"stack_size"` // 0 means unspecified
	Craftable bool    `json:"craftable" db:"craftable"`
}

// EffectiveStackSize returns the stack size, defaulting to 1 when unspecified
func (i Item) EffectiveStackSize() int {
	if i.StackSize <= 0 {
		return 1
	}
	return i.StackSize
}
