package handler

import (
	"net/http"

	"github.com/scrapworks/reclaimer/internal/aggregate"
	"github.com/scrapworks/reclaimer/internal/bookmark"
	"github.com/scrapworks/reclaimer/internal/domain"
	"github.com/scrapworks/reclaimer/internal/logger"
)

// AggregateFilters mirrors domain.FilterOptions in wire form
type AggregateFilters struct {
	HideScrappyCollected bool     `json:"hide_scrappy_collected"`
	RarityFilters        []string `json:"rarity_filters" validate:"omitempty,dive,oneof=COMMON UNCOMMON RARE EPIC LEGENDARY"`
	HiddenSourceItems    []string `json:"hidden_source_items"`
	PausedBookmarks      []string `json:"paused_bookmarks"`
}

// AggregateRequest is the stateless aggregation request: all inputs in the body.
// An empty bookmark set is valid and produces an empty result.
type AggregateRequest struct {
	BookmarkedIDs []string          `json:"bookmarked_ids"`
	ScoringMethod string            `json:"scoring_method" validate:"omitempty,oneof=max_yield weight_conscious"`
	Filters       *AggregateFilters `json:"filters"`
}

// FilterOptions converts the wire filters to domain form. A nil filter block
// and a nil rarity list both mean "no restriction".
func (f *AggregateFilters) FilterOptions() domain.FilterOptions {
	opts := domain.DefaultFilterOptions()
	if f == nil {
		return opts
	}

	opts.HideScrappyCollected = f.HideScrappyCollected
	if f.RarityFilters != nil {
		opts.RarityFilters = make(map[domain.Rarity]struct{}, len(f.RarityFilters))
		for _, r := range f.RarityFilters {
			opts.RarityFilters[domain.Rarity(r)] = struct{}{}
		}
	}
	for _, id := range f.HiddenSourceItems {
		opts.HiddenSourceItems[id] = struct{}{}
	}
	for _, id := range f.PausedBookmarks {
		opts.PausedBookmarks[id] = struct{}{}
	}
	return opts
}

// HandleAggregate runs a stateless aggregation over the inputs in the request body
func HandleAggregate(svc aggregate.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req AggregateRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Aggregate"); err != nil {
			return
		}

		result, err := svc.Aggregate(r.Context(),
			req.BookmarkedIDs,
			domain.ScoringMethod(req.ScoringMethod),
			req.Filters.FilterOptions())
		if err != nil {
			log.Error("Failed to aggregate materials", "error", err, "bookmarks", len(req.BookmarkedIDs))
			respondServiceError(w, err, ErrMsgAggregateFailed)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleUserAggregate runs an aggregation over a user's persisted bookmarks and settings
func HandleUserAggregate(bookmarkSvc bookmark.Service, aggregateSvc aggregate.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		ids, method, opts, err := bookmarkSvc.AggregationInputs(r.Context(), userID)
		if err != nil {
			log.Error("Failed to assemble aggregation inputs", "error", err, "user_id", userID)
			respondServiceError(w, err, ErrMsgAggregateFailed)
			return
		}

		result, err := aggregateSvc.Aggregate(r.Context(), ids, method, opts)
		if err != nil {
			log.Error("Failed to aggregate materials", "error", err, "user_id", userID)
			respondServiceError(w, err, ErrMsgAggregateFailed)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}
