package aggregate

import (
	"context"
	"fmt"
	"sort"

	"github.com/scrapworks/reclaimer/internal/domain"
)

// sourceGroup accumulates the tier variants of one base item ("Anvil I/II/III")
// along with per-material salvage and recycle yield totals across the group.
// Multiple tiers are the same loot source to a player and must be listed once.
type sourceGroup struct {
	baseName      string
	members       []domain.Item
	memberIDs     map[string]struct{}
	salvageTotals map[string]int
	recycleTotals map[string]int
}

func (g *sourceGroup) addMember(item domain.Item) {
	if _, ok := g.memberIDs[item.ID]; ok {
		return
	}
	g.memberIDs[item.ID] = struct{}{}
	g.members = append(g.members, item)
}

// buildExclusions assembles the set of item ids that can never be a source:
// the bookmarks themselves, the demanded materials, and user-hidden items.
func buildExclusions(bookmarkedIDs []string, demand *demandResult, opts domain.FilterOptions) []string {
	seen := make(map[string]struct{})
	excluded := make([]string, 0, len(bookmarkedIDs)+len(demand.order)+len(opts.HiddenSourceItems))

	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		excluded = append(excluded, id)
	}

	for _, id := range bookmarkedIDs {
		add(id)
	}
	for _, id := range demand.order {
		add(id)
	}

	hidden := make([]string, 0, len(opts.HiddenSourceItems))
	for id := range opts.HiddenSourceItems {
		hidden = append(hidden, id)
	}
	sort.Strings(hidden)
	for _, id := range hidden {
		add(id)
	}

	return excluded
}

// discoverSources finds every non-excluded item that salvages or recycles into
// a demanded material and folds tier variants into groups. Group order follows
// first discovery, which itself follows the demand-sorted material order.
func (s *service) discoverSources(ctx context.Context, demand *demandResult, bookmarkedIDs []string, opts domain.FilterOptions) ([]*sourceGroup, error) {
	excluded := buildExclusions(bookmarkedIDs, demand, opts)

	var groups []*sourceGroup
	groupIndex := make(map[string]*sourceGroup)

	groupFor := func(item domain.Item) *sourceGroup {
		base := s.normalize(item.Name)
		g, ok := groupIndex[base]
		if !ok {
			g = &sourceGroup{
				baseName:      base,
				memberIDs:     make(map[string]struct{}),
				salvageTotals: make(map[string]int),
				recycleTotals: make(map[string]int),
			}
			groupIndex[base] = g
			groups = append(groups, g)
		}
		g.addMember(item)
		return g
	}

	for _, materialID := range demand.order {
		salvageRows, err := s.repo.SalvageOutputsFor(ctx, materialID, excluded)
		if err != nil {
			return nil, fmt.Errorf("failed to get salvage outputs for %s: %w", materialID, err)
		}
		for _, row := range salvageRows {
			g := groupFor(row.SourceItem)
			g.salvageTotals[materialID] += row.Quantity
		}

		recycleRows, err := s.repo.RecycleOutputsFor(ctx, materialID, excluded)
		if err != nil {
			return nil, fmt.Errorf("failed to get recycle outputs for %s: %w", materialID, err)
		}
		for _, row := range recycleRows {
			g := groupFor(row.SourceItem)
			g.recycleTotals[materialID] += row.Quantity
		}
	}

	return groups, nil
}
