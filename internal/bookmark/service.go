package bookmark

import (
	"context"
	"fmt"

	"github.com/scrapworks/reclaimer/internal/concurrency"
	"github.com/scrapworks/reclaimer/internal/domain"
	"github.com/scrapworks/reclaimer/internal/logger"
	"github.com/scrapworks/reclaimer/internal/metrics"
	"github.com/scrapworks/reclaimer/internal/repository"
)

// Service defines the interface for managing a player's persisted planner
// state: wanted-item bookmarks, hidden sources and filter settings.
type Service interface {
	AddBookmark(ctx context.Context, userID, itemID string) error
	RemoveBookmark(ctx context.Context, userID, itemID string) error
	PauseBookmark(ctx context.Context, userID, itemID string) error
	ResumeBookmark(ctx context.Context, userID, itemID string) error
	ListBookmarks(ctx context.Context, userID string) ([]domain.BookmarkEntry, error)

	HideSource(ctx context.Context, userID, itemID string) error
	UnhideSource(ctx context.Context, userID, itemID string) error
	ListHiddenSources(ctx context.Context, userID string) ([]string, error)

	GetSettings(ctx context.Context, userID string) (domain.PlannerSettings, error)
	UpdateSettings(ctx context.Context, userID string, settings domain.PlannerSettings) error

	// AggregationInputs assembles the aggregation engine's inputs from the
	// user's persisted state.
	AggregationInputs(ctx context.Context, userID string) ([]string, domain.ScoringMethod, domain.FilterOptions, error)
}

type service struct {
	repo        repository.Bookmark
	catalog     repository.Catalog
	lockManager *concurrency.LockManager
}

// NewService creates a new bookmark service. The catalog is used to reject
// bookmarks and hidden sources for ids that do not exist. Mutations on the
// same user are serialized through the lock manager.
func NewService(repo repository.Bookmark, catalog repository.Catalog, lockManager *concurrency.LockManager) Service {
	return &service{repo: repo, catalog: catalog, lockManager: lockManager}
}

func (s *service) validateItem(ctx context.Context, itemID string) error {
	if itemID == "" {
		return fmt.Errorf("%w: empty item id", domain.ErrInvalidInput)
	}
	if _, err := s.catalog.ItemByID(ctx, itemID); err != nil {
		return err
	}
	return nil
}

func (s *service) AddBookmark(ctx context.Context, userID, itemID string) error {
	log := logger.FromContext(ctx)

	if err := s.validateItem(ctx, itemID); err != nil {
		return err
	}

	userLock := s.lockManager.GetLock(userID)
	userLock.Lock()
	defer userLock.Unlock()

	if err := s.repo.AddBookmark(ctx, userID, itemID); err != nil {
		return err
	}

	metrics.BookmarksAdded.Inc()
	log.Info("Bookmark added", "user_id", userID, "item_id", itemID)
	return nil
}

func (s *service) RemoveBookmark(ctx context.Context, userID, itemID string) error {
	log := logger.FromContext(ctx)

	userLock := s.lockManager.GetLock(userID)
	userLock.Lock()
	defer userLock.Unlock()

	if err := s.repo.RemoveBookmark(ctx, userID, itemID); err != nil {
		return err
	}

	metrics.BookmarksRemoved.Inc()
	log.Info("Bookmark removed", "user_id", userID, "item_id", itemID)
	return nil
}

func (s *service) PauseBookmark(ctx context.Context, userID, itemID string) error {
	return s.setPaused(ctx, userID, itemID, true)
}

func (s *service) ResumeBookmark(ctx context.Context, userID, itemID string) error {
	return s.setPaused(ctx, userID, itemID, false)
}

func (s *service) setPaused(ctx context.Context, userID, itemID string, paused bool) error {
	userLock := s.lockManager.GetLock(userID)
	userLock.Lock()
	defer userLock.Unlock()

	return s.repo.SetBookmarkPaused(ctx, userID, itemID, paused)
}

func (s *service) ListBookmarks(ctx context.Context, userID string) ([]domain.BookmarkEntry, error) {
	return s.repo.ListBookmarks(ctx, userID)
}

func (s *service) HideSource(ctx context.Context, userID, itemID string) error {
	if err := s.validateItem(ctx, itemID); err != nil {
		return err
	}

	userLock := s.lockManager.GetLock(userID)
	userLock.Lock()
	defer userLock.Unlock()

	return s.repo.HideSourceItem(ctx, userID, itemID)
}

func (s *service) UnhideSource(ctx context.Context, userID, itemID string) error {
	userLock := s.lockManager.GetLock(userID)
	userLock.Lock()
	defer userLock.Unlock()

	return s.repo.UnhideSourceItem(ctx, userID, itemID)
}

func (s *service) ListHiddenSources(ctx context.Context, userID string) ([]string, error) {
	return s.repo.ListHiddenSources(ctx, userID)
}

// GetSettings returns the user's saved settings, or defaults when never saved
func (s *service) GetSettings(ctx context.Context, userID string) (domain.PlannerSettings, error) {
	settings, err := s.repo.GetSettings(ctx, userID)
	if err != nil {
		return domain.PlannerSettings{}, err
	}
	if settings == nil {
		return domain.DefaultPlannerSettings(), nil
	}
	return *settings, nil
}

func (s *service) UpdateSettings(ctx context.Context, userID string, settings domain.PlannerSettings) error {
	if !settings.ScoringMethod.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidScoringMethod, settings.ScoringMethod)
	}
	for _, r := range settings.RarityFilters {
		if !r.Valid() {
			return fmt.Errorf("%w: unknown rarity %q", domain.ErrInvalidInput, r)
		}
	}
	userLock := s.lockManager.GetLock(userID)
	userLock.Lock()
	defer userLock.Unlock()

	return s.repo.UpsertSettings(ctx, userID, settings)
}

// AggregationInputs resolves (bookmark ids, scoring method, filter options)
// from the user's persisted state. Paused bookmarks stay in the id list and
// land in FilterOptions.PausedBookmarks, matching how the engine treats them.
func (s *service) AggregationInputs(ctx context.Context, userID string) ([]string, domain.ScoringMethod, domain.FilterOptions, error) {
	entries, err := s.repo.ListBookmarks(ctx, userID)
	if err != nil {
		return nil, "", domain.FilterOptions{}, err
	}

	hidden, err := s.repo.ListHiddenSources(ctx, userID)
	if err != nil {
		return nil, "", domain.FilterOptions{}, err
	}

	settings, err := s.GetSettings(ctx, userID)
	if err != nil {
		return nil, "", domain.FilterOptions{}, err
	}

	ids := make([]string, 0, len(entries))
	opts := domain.DefaultFilterOptions()
	opts.HideScrappyCollected = settings.HideScrappyCollected

	if settings.RarityFilters != nil {
		opts.RarityFilters = make(map[domain.Rarity]struct{}, len(settings.RarityFilters))
		for _, r := range settings.RarityFilters {
			opts.RarityFilters[r] = struct{}{}
		}
	}

	for _, entry := range entries {
		ids = append(ids, entry.ItemID)
		if entry.Paused {
			opts.PausedBookmarks[entry.ItemID] = struct{}{}
		}
	}
	for _, id := range hidden {
		opts.HiddenSourceItems[id] = struct{}{}
	}

	return ids, settings.ScoringMethod, opts, nil
}
