package domain

// RecipeCost represents a single material requirement for crafting an item
type RecipeCost struct {
	IngredientID string `json:"ingredient_id"`
	Quantity     int    `json:"quantity"`
}

// YieldRow is one salvage or recycle output edge, joined with its source item.
// Salvaging/recycling SourceItem produces Quantity units of the queried material.
type YieldRow struct {
	SourceItem Item `json:"source_item"`
	Quantity   int  `json:"quantity"`
}
