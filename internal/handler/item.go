package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/scrapworks/reclaimer/internal/logger"
	"github.com/scrapworks/reclaimer/internal/repository"
)

// HandleGetItem returns a single catalog item by id
func HandleGetItem(catalog repository.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID := chi.URLParam(r, "itemID")
		if itemID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
			return
		}

		item, err := catalog.ItemByID(r.Context(), itemID)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to get item", "error", err, "item_id", itemID)
			respondServiceError(w, err, ErrMsgGetItemFailed)
			return
		}

		respondJSON(w, http.StatusOK, item)
	}
}
