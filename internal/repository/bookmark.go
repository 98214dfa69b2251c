package repository

import (
	"context"

	"github.com/scrapworks/reclaimer/internal/domain"
)

// Bookmark defines persistence for per-user bookmark sets, hidden sources and
// planner settings. Catalog data itself is never written through this interface.
type Bookmark interface {
	AddBookmark(ctx context.Context, userID, itemID string) error
	RemoveBookmark(ctx context.Context, userID, itemID string) error
	SetBookmarkPaused(ctx context.Context, userID, itemID string, paused bool) error
	ListBookmarks(ctx context.Context, userID string) ([]domain.BookmarkEntry, error)

	HideSourceItem(ctx context.Context, userID, itemID string) error
	UnhideSourceItem(ctx context.Context, userID, itemID string) error
	ListHiddenSources(ctx context.Context, userID string) ([]string, error)

	// GetSettings returns nil (no error) when the user has never saved settings
	GetSettings(ctx context.Context, userID string) (*domain.PlannerSettings, error)
	UpsertSettings(ctx context.Context, userID string, settings domain.PlannerSettings) error
}
