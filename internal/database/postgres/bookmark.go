package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scrapworks/reclaimer/internal/domain"
	"github.com/scrapworks/reclaimer/internal/repository"
)

// BookmarkRepository implements repository.Bookmark for PostgreSQL
type BookmarkRepository struct {
	pool *pgxpool.Pool
}

// NewBookmarkRepository creates a new BookmarkRepository
func NewBookmarkRepository(pool *pgxpool.Pool) repository.Bookmark {
	return &BookmarkRepository{pool: pool}
}

// AddBookmark inserts a bookmark; adding an existing one reports ErrBookmarkAlreadyExists
func (r *BookmarkRepository) AddBookmark(ctx context.Context, userID, itemID string) error {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO bookmarks (user_id, item_id) VALUES ($1, $2)
		ON CONFLICT (user_id, item_id) DO NOTHING`,
		userID, itemID)
	if err != nil {
		return fmt.Errorf("failed to add bookmark: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookmarkAlreadyExists
	}
	return nil
}

// RemoveBookmark deletes a bookmark; removing a missing one reports ErrBookmarkNotFound
func (r *BookmarkRepository) RemoveBookmark(ctx context.Context, userID, itemID string) error {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM bookmarks WHERE user_id = $1 AND item_id = $2", userID, itemID)
	if err != nil {
		return fmt.Errorf("failed to remove bookmark: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookmarkNotFound
	}
	return nil
}

// SetBookmarkPaused toggles the paused flag on an existing bookmark
func (r *BookmarkRepository) SetBookmarkPaused(ctx context.Context, userID, itemID string, paused bool) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE bookmarks SET paused = $3 WHERE user_id = $1 AND item_id = $2",
		userID, itemID, paused)
	if err != nil {
		return fmt.Errorf("failed to update bookmark: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookmarkNotFound
	}
	return nil
}

// ListBookmarks returns the user's bookmarks in creation order
func (r *BookmarkRepository) ListBookmarks(ctx context.Context, userID string) ([]domain.BookmarkEntry, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT item_id, paused, created_at FROM bookmarks WHERE user_id = $1 ORDER BY created_at, item_id",
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer rows.Close()

	var entries []domain.BookmarkEntry
	for rows.Next() {
		var entry domain.BookmarkEntry
		if err := rows.Scan(&entry.ItemID, &entry.Paused, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bookmark rows: %w", err)
	}
	return entries, nil
}

// HideSourceItem adds an item to the user's hidden-source set (idempotent)
func (r *BookmarkRepository) HideSourceItem(ctx context.Context, userID, itemID string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO hidden_sources (user_id, item_id) VALUES ($1, $2)
		ON CONFLICT (user_id, item_id) DO NOTHING`,
		userID, itemID)
	if err != nil {
		return fmt.Errorf("failed to hide source item: %w", err)
	}
	return nil
}

// UnhideSourceItem removes an item from the user's hidden-source set (idempotent)
func (r *BookmarkRepository) UnhideSourceItem(ctx context.Context, userID, itemID string) error {
	_, err := r.pool.Exec(ctx,
		"DELETE FROM hidden_sources WHERE user_id = $1 AND item_id = $2", userID, itemID)
	if err != nil {
		return fmt.Errorf("failed to unhide source item: %w", err)
	}
	return nil
}

// ListHiddenSources returns the user's hidden source item ids
func (r *BookmarkRepository) ListHiddenSources(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT item_id FROM hidden_sources WHERE user_id = $1 ORDER BY item_id", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list hidden sources: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan hidden source row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read hidden source rows: %w", err)
	}
	return ids, nil
}

// GetSettings returns the user's planner settings, or nil if never saved
func (r *BookmarkRepository) GetSettings(ctx context.Context, userID string) (*domain.PlannerSettings, error) {
	var settings domain.PlannerSettings
	var rarities []string
	err := r.pool.QueryRow(ctx, `
		SELECT hide_scrappy_collected, rarity_filters, scoring_method
		FROM planner_settings WHERE user_id = $1`, userID).
		Scan(&settings.HideScrappyCollected, &rarities, &settings.ScoringMethod)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get planner settings: %w", err)
	}

	settings.RarityFilters = make([]domain.Rarity, 0, len(rarities))
	for _, r := range rarities {
		settings.RarityFilters = append(settings.RarityFilters, domain.Rarity(r))
	}
	return &settings, nil
}

// UpsertSettings inserts or replaces the user's planner settings
func (r *BookmarkRepository) UpsertSettings(ctx context.Context, userID string, settings domain.PlannerSettings) error {
	rarities := make([]string, 0, len(settings.RarityFilters))
	for _, rar := range settings.RarityFilters {
		rarities = append(rarities, string(rar))
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO planner_settings (user_id, hide_scrappy_collected, rarity_filters, scoring_method)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			hide_scrappy_collected = EXCLUDED.hide_scrappy_collected,
			rarity_filters = EXCLUDED.rarity_filters,
			scoring_method = EXCLUDED.scoring_method,
			updated_at = NOW()`,
		userID, settings.HideScrappyCollected, rarities, string(settings.ScoringMethod))
	if err != nil {
		return fmt.Errorf("failed to upsert planner settings: %w", err)
	}
	return nil
}
