package aggregate

import (
	"context"
	"fmt"
	"time"

	"github.com/scrapworks/reclaimer/internal/domain"
	"github.com/scrapworks/reclaimer/internal/logger"
	"github.com/scrapworks/reclaimer/internal/metrics"
	"github.com/scrapworks/reclaimer/internal/repository"
)

// Service defines the interface for the materials aggregation engine
type Service interface {
	// Aggregate resolves the material demand of the bookmarked items and
	// scores every catalog item that can supply those materials, partitioned
	// into salvage-now and recycle-at-base recommendations.
	//
	// The computation is synchronous, pure over its inputs, and fully re-run
	// on every call; callers own change detection and debouncing. Empty
	// inputs produce empty (not nil) result lists, never an error.
	Aggregate(ctx context.Context, bookmarkedIDs []string, method domain.ScoringMethod, opts domain.FilterOptions) (*domain.AggregatedMaterialsData, error)
}

type service struct {
	repo      repository.Catalog
	normalize TierNormalizer
}

// NewService creates a new aggregation service using the default tier
// normalizer (trailing roman-numeral suffix stripping).
func NewService(repo repository.Catalog) Service {
	return NewServiceWithNormalizer(repo, BaseName)
}

// NewServiceWithNormalizer creates a service with a custom tier-group
// normalization function, for catalogs with different naming conventions.
func NewServiceWithNormalizer(repo repository.Catalog, normalize TierNormalizer) Service {
	if normalize == nil {
		normalize = BaseName
	}
	return &service{repo: repo, normalize: normalize}
}

func (s *service) Aggregate(ctx context.Context, bookmarkedIDs []string, method domain.ScoringMethod, opts domain.FilterOptions) (*domain.AggregatedMaterialsData, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	if s.repo == nil {
		return nil, domain.ErrCatalogNotLoaded
	}
	if method == "" {
		method = domain.ScoringMaxYield
	}
	if !method.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidScoringMethod, method)
	}

	bookmarks := uniqueStrings(bookmarkedIDs)

	// Per-run item lookup cache; discarded when the call returns
	cache := make(map[string]*domain.Item)

	demand, err := s.resolveDemand(ctx, bookmarks, opts, cache)
	if err != nil {
		log.Error("Failed to resolve material demand", "error", err)
		return nil, err
	}

	groups, err := s.discoverSources(ctx, demand, bookmarks, opts)
	if err != nil {
		log.Error("Failed to discover sources", "error", err)
		return nil, err
	}

	scored := make([]domain.SalvagingSource, 0, len(groups))
	for _, g := range groups {
		src, err := s.scoreGroup(ctx, cache, demand, g, method)
		if err != nil {
			log.Error("Failed to score source group", "error", err, "base_name", g.baseName)
			return nil, err
		}
		if src != nil {
			scored = append(scored, *src)
		}
	}

	salvage, recycle := partitionSources(scored)
	materialToSources, sourceToMaterials := buildIndices(salvage, recycle, demand.order)

	duration := time.Since(start)
	metrics.AggregationsTotal.WithLabelValues(string(method)).Inc()
	metrics.AggregationDuration.Observe(duration.Seconds())
	metrics.AggregationMaterialsResolved.Observe(float64(len(demand.materials)))
	metrics.AggregationSourcesScored.Observe(float64(len(scored)))

	log.Info("Aggregation completed",
		"bookmarks", len(bookmarks),
		"materials", len(demand.materials),
		"salvage_sources", len(salvage),
		"recycle_sources", len(recycle),
		"scoring_method", method,
		"duration_ms", duration.Milliseconds())

	return &domain.AggregatedMaterialsData{
		Materials:         demand.materials,
		SalvageSources:    salvage,
		RecycleSources:    recycle,
		MaterialToSources: materialToSources,
		SourceToMaterials: sourceToMaterials,
	}, nil
}

// uniqueStrings deduplicates ids preserving first-seen order
func uniqueStrings(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
