package domain

import "time"

// BookmarkEntry is one wanted item in a player's persisted bookmark set.
// Paused bookmarks are kept but contribute no material demand.
type BookmarkEntry struct {
	ItemID    string    `json:"item_id"`
	Paused    bool      `json:"paused"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// PlannerSettings holds a player's persisted filter and scoring preferences
type PlannerSettings struct {
	HideScrappyCollected bool          `json:"hide_scrappy_collected"`
	RarityFilters        []Rarity      `json:"rarity_filters"`
	ScoringMethod        ScoringMethod `json:"scoring_method"`
}

// DefaultPlannerSettings returns settings with all rarities visible and
// max-yield scoring, matching a fresh player profile.
func DefaultPlannerSettings() PlannerSettings {
	return PlannerSettings{
		RarityFilters: append([]Rarity(nil), AllRarities...),
		ScoringMethod: ScoringMaxYield,
	}
}
