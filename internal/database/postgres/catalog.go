package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scrapworks/reclaimer/internal/domain"
)

// CatalogRepository implements repository.Catalog and repository.CatalogAdmin
// for PostgreSQL
type CatalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

const itemColumns = "item_id, name, rarity, item_type, value, weight, stack_size, craftable"

func scanItem(row pgx.Row) (*domain.Item, error) {
	var item domain.Item
	err := row.Scan(&item.ID, &item.Name, &item.Rarity, &item.Type,
		&item.Value, &item.Weight, &item.StackSize, &item.Craftable)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ItemByID retrieves an item by id
func (r *CatalogRepository) ItemByID(ctx context.Context, id string) (*domain.Item, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+itemColumns+" FROM items WHERE item_id = $1", id)

	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// RecipesFor retrieves the recipe edges required to craft itemID
func (r *CatalogRepository) RecipesFor(ctx context.Context, itemID string) ([]domain.RecipeCost, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT ingredient_id, quantity FROM recipes WHERE item_id = $1 ORDER BY ingredient_id",
		itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipes: %w", err)
	}
	defer rows.Close()

	var costs []domain.RecipeCost
	for rows.Next() {
		var cost domain.RecipeCost
		if err := rows.Scan(&cost.IngredientID, &cost.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan recipe row: %w", err)
		}
		costs = append(costs, cost)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recipe rows: %w", err)
	}
	return costs, nil
}

// SalvageOutputsFor retrieves salvage edges producing materialID, excluding the given source ids
func (r *CatalogRepository) SalvageOutputsFor(ctx context.Context, materialID string, excluded []string) ([]domain.YieldRow, error) {
	return r.outputsFor(ctx, "salvage_outputs", materialID, excluded)
}

// RecycleOutputsFor retrieves recycle edges producing materialID, excluding the given source ids
func (r *CatalogRepository) RecycleOutputsFor(ctx context.Context, materialID string, excluded []string) ([]domain.YieldRow, error) {
	return r.outputsFor(ctx, "recycle_outputs", materialID, excluded)
}

func (r *CatalogRepository) outputsFor(ctx context.Context, table, materialID string, excluded []string) ([]domain.YieldRow, error) {
	if excluded == nil {
		excluded = []string{}
	}
	// table is one of two compile-time constants, never user input
	query := fmt.Sprintf(`
		SELECT i.item_id, i.name, i.rarity, i.item_type, i.value, i.weight, i.stack_size, i.craftable, o.quantity
		FROM %s o
		JOIN items i ON i.item_id = o.source_item_id
		WHERE o.material_id = $1 AND NOT (o.source_item_id = ANY($2))
		ORDER BY o.source_item_id`, table)

	rows, err := r.pool.Query(ctx, query, materialID, excluded)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", table, err)
	}
	defer rows.Close()

	var result []domain.YieldRow
	for rows.Next() {
		var yr domain.YieldRow
		err := rows.Scan(&yr.SourceItem.ID, &yr.SourceItem.Name, &yr.SourceItem.Rarity,
			&yr.SourceItem.Type, &yr.SourceItem.Value, &yr.SourceItem.Weight,
			&yr.SourceItem.StackSize, &yr.SourceItem.Craftable, &yr.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		result = append(result, yr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s rows: %w", table, err)
	}
	return result, nil
}

// UpsertItem inserts or updates a catalog item, reporting whether a row was created
func (r *CatalogRepository) UpsertItem(ctx context.Context, item *domain.Item) (bool, error) {
	var created bool
	err := r.pool.QueryRow(ctx, `
		INSERT INTO items (item_id, name, rarity, item_type, value, weight, stack_size, craftable)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (item_id) DO UPDATE SET
			name = EXCLUDED.name,
			rarity = EXCLUDED.rarity,
			item_type = EXCLUDED.item_type,
			value = EXCLUDED.value,
			weight = EXCLUDED.weight,
			stack_size = EXCLUDED.stack_size,
			craftable = EXCLUDED.craftable,
			updated_at = NOW()
		RETURNING (xmax = 0)`,
		item.ID, item.Name, item.Rarity, item.Type, item.Value,
		item.Weight, item.StackSize, item.Craftable).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("failed to upsert item %s: %w", item.ID, err)
	}
	return created, nil
}

// ReplaceRecipes swaps the full recipe edge set for itemID
func (r *CatalogRepository) ReplaceRecipes(ctx context.Context, itemID string, costs []domain.RecipeCost) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec(ctx, "DELETE FROM recipes WHERE item_id = $1", itemID); err != nil {
		return fmt.Errorf("failed to clear recipes for %s: %w", itemID, err)
	}
	for _, cost := range costs {
		_, err := tx.Exec(ctx,
			"INSERT INTO recipes (item_id, ingredient_id, quantity) VALUES ($1, $2, $3)",
			itemID, cost.IngredientID, cost.Quantity)
		if err != nil {
			return fmt.Errorf("failed to insert recipe edge for %s: %w", itemID, err)
		}
	}
	return tx.Commit(ctx)
}

// ReplaceSalvageOutputs swaps the full salvage edge set for sourceItemID
func (r *CatalogRepository) ReplaceSalvageOutputs(ctx context.Context, sourceItemID string, outputs map[string]int) error {
	return r.replaceOutputs(ctx, "salvage_outputs", sourceItemID, outputs)
}

// ReplaceRecycleOutputs swaps the full recycle edge set for sourceItemID
func (r *CatalogRepository) ReplaceRecycleOutputs(ctx context.Context, sourceItemID string, outputs map[string]int) error {
	return r.replaceOutputs(ctx, "recycle_outputs", sourceItemID, outputs)
}

func (r *CatalogRepository) replaceOutputs(ctx context.Context, table, sourceItemID string, outputs map[string]int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE source_item_id = $1", table), sourceItemID); err != nil {
		return fmt.Errorf("failed to clear %s for %s: %w", table, sourceItemID, err)
	}

	materialIDs := make([]string, 0, len(outputs))
	for materialID := range outputs {
		materialIDs = append(materialIDs, materialID)
	}
	sort.Strings(materialIDs)

	for _, materialID := range materialIDs {
		_, err := tx.Exec(ctx,
			fmt.Sprintf("INSERT INTO %s (source_item_id, material_id, quantity) VALUES ($1, $2, $3)", table),
			sourceItemID, materialID, outputs[materialID])
		if err != nil {
			return fmt.Errorf("failed to insert %s edge for %s: %w", table, sourceItemID, err)
		}
	}
	return tx.Commit(ctx)
}
