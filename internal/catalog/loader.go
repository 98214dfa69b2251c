package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/scrapworks/reclaimer/internal/domain"
	"github.com/scrapworks/reclaimer/internal/logger"
	"github.com/scrapworks/reclaimer/internal/repository"
	"github.com/scrapworks/reclaimer/internal/validation"
)

// Sentinel errors for catalog loading
var (
	ErrDuplicateItemID = errors.New("duplicate item id")
	ErrUnknownItemRef  = errors.New("reference to unknown item")
	ErrInvalidCatalog  = errors.New("invalid catalog")
)

// Schema paths
const (
	CatalogSchemaPath = "configs/schemas/catalog.schema.json"
)

// Config represents the JSON catalog file: the full item set plus recipe,
// salvage and recycle edge lists.
type Config struct {
	Version     string `json:"version"`
	Description string `json:"description"`

	Items   []ItemDef   `json:"items"`
	Recipes []RecipeDef `json:"recipes"`
	Salvage []YieldDef  `json:"salvage"`
	Recycle []YieldDef  `json:"recycle"`
}

// ItemDef represents a single item definition in the JSON
type ItemDef struct {
	ID        string  `json:"item_id"`
	Name      string  `json:"name"`
	Rarity    string  `json:"rarity"`
	Type      string  `json:"item_type"`
	Value     int     `json:"value"`
	Weight    float64 `json:"weight"`
	StackSize int     `json:"stack_size,omitempty"`
	Craftable bool    `json:"craftable,omitempty"`
}

// RecipeDef lists the ingredients required to craft one item
type RecipeDef struct {
	ItemID      string      `json:"item_id"`
	Ingredients []EdgeCount `json:"ingredients"`
}

// YieldDef lists the materials one item yields when salvaged or recycled
type YieldDef struct {
	SourceItemID string      `json:"source_item_id"`
	Outputs      []EdgeCount `json:"outputs"`
}

// EdgeCount is one (item, quantity) pair inside a recipe or yield definition
type EdgeCount struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// Item converts an ItemDef to the domain type
func (d ItemDef) Item() domain.Item {
	stackSize := d.StackSize
	if stackSize <= 0 {
		stackSize = 1
	}
	return domain.Item{
		ID:        d.ID,
		Name:      d.Name,
		Rarity:    domain.Rarity(d.Rarity),
		Type:      d.Type,
		Value:     d.Value,
		Weight:    d.Weight,
		StackSize: stackSize,
		Craftable: d.Craftable,
	}
}

// Loader handles loading and validating the catalog configuration
type Loader interface {
	Load(path string) (*Config, error)
	Validate(config *Config) error
	SyncToDatabase(ctx context.Context, config *Config, repo repository.CatalogAdmin) (*SyncResult, error)
}

// SyncResult contains the result of syncing the catalog to the database
type SyncResult struct {
	ItemsInserted int
	ItemsUpdated  int
	EdgesReplaced int
}

type catalogLoader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &catalogLoader{
		schemaValidator: validation.NewSchemaValidator(),
	}
}

// Load reads and parses a catalog JSON file
func (l *catalogLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	// Validate against schema first
	if err := l.schemaValidator.ValidateBytes(data, CatalogSchemaPath); err != nil {
		return nil, fmt.Errorf("schema validation failed for %s: %w", path, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	return &config, nil
}

// Validate checks the catalog configuration for errors beyond what the JSON
// schema can express: duplicate ids, unknown rarities, dangling edges.
func (l *catalogLoader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidCatalog)
	}

	known := make(map[string]struct{}, len(config.Items))
	for _, def := range config.Items {
		if def.ID == "" {
			return fmt.Errorf("%w: item with empty id (name %q)", ErrInvalidCatalog, def.Name)
		}
		if _, ok := known[def.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateItemID, def.ID)
		}
		known[def.ID] = struct{}{}

		if !domain.Rarity(def.Rarity).Valid() {
			return fmt.Errorf("%w: item %s has unknown rarity %q", ErrInvalidCatalog, def.ID, def.Rarity)
		}
		if def.Weight < 0 || def.Value < 0 {
			return fmt.Errorf("%w: item %s has negative weight or value", ErrInvalidCatalog, def.ID)
		}
	}

	checkEdges := func(kind, owner string, edges []EdgeCount) error {
		if _, ok := known[owner]; !ok {
			return fmt.Errorf("%w: %s entry for %s", ErrUnknownItemRef, kind, owner)
		}
		for _, edge := range edges {
			if _, ok := known[edge.ItemID]; !ok {
				return fmt.Errorf("%w: %s edge %s -> %s", ErrUnknownItemRef, kind, owner, edge.ItemID)
			}
			if edge.Quantity <= 0 {
				return fmt.Errorf("%w: %s edge %s -> %s has non-positive quantity", ErrInvalidCatalog, kind, owner, edge.ItemID)
			}
		}
		return nil
	}

	for _, recipe := range config.Recipes {
		if err := checkEdges("recipe", recipe.ItemID, recipe.Ingredients); err != nil {
			return err
		}
	}
	for _, yield := range config.Salvage {
		if err := checkEdges("salvage", yield.SourceItemID, yield.Outputs); err != nil {
			return err
		}
	}
	for _, yield := range config.Recycle {
		if err := checkEdges("recycle", yield.SourceItemID, yield.Outputs); err != nil {
			return err
		}
	}

	return nil
}

// SyncToDatabase upserts all items and replaces all edge sets in the database
func (l *catalogLoader) SyncToDatabase(ctx context.Context, config *Config, repo repository.CatalogAdmin) (*SyncResult, error) {
	log := logger.FromContext(ctx)
	result := &SyncResult{}

	for _, def := range config.Items {
		item := def.Item()
		created, err := repo.UpsertItem(ctx, &item)
		if err != nil {
			return nil, fmt.Errorf("failed to sync item %s: %w", def.ID, err)
		}
		if created {
			result.ItemsInserted++
		} else {
			result.ItemsUpdated++
		}
	}

	for _, recipe := range config.Recipes {
		costs := make([]domain.RecipeCost, 0, len(recipe.Ingredients))
		for _, edge := range recipe.Ingredients {
			costs = append(costs, domain.RecipeCost{IngredientID: edge.ItemID, Quantity: edge.Quantity})
		}
		if err := repo.ReplaceRecipes(ctx, recipe.ItemID, costs); err != nil {
			return nil, err
		}
		result.EdgesReplaced += len(costs)
	}

	for _, yield := range config.Salvage {
		if err := repo.ReplaceSalvageOutputs(ctx, yield.SourceItemID, edgeMap(yield.Outputs)); err != nil {
			return nil, err
		}
		result.EdgesReplaced += len(yield.Outputs)
	}
	for _, yield := range config.Recycle {
		if err := repo.ReplaceRecycleOutputs(ctx, yield.SourceItemID, edgeMap(yield.Outputs)); err != nil {
			return nil, err
		}
		result.EdgesReplaced += len(yield.Outputs)
	}

	log.Info("Catalog synced",
		"items_inserted", result.ItemsInserted,
		"items_updated", result.ItemsUpdated,
		"edges_replaced", result.EdgesReplaced)
	return result, nil
}

func edgeMap(edges []EdgeCount) map[string]int {
	out := make(map[string]int, len(edges))
	for _, edge := range edges {
		out[edge.ItemID] += edge.Quantity
	}
	return out
}
