package handler

import (
	"net/http"

	"github.com/scrapworks/reclaimer/internal/bookmark"
	"github.com/scrapworks/reclaimer/internal/domain"
	"github.com/scrapworks/reclaimer/internal/logger"
)

// BookmarkRequest covers add/remove/pause/resume and hide/unhide operations
type BookmarkRequest struct {
	UserID string `json:"user_id" validate:"required"`
	ItemID string `json:"item_id" validate:"required"`
}

// SettingsRequest updates a user's planner settings
type SettingsRequest struct {
	UserID               string   `json:"user_id" validate:"required"`
	HideScrappyCollected bool     `json:"hide_scrappy_collected"`
	RarityFilters        []string `json:"rarity_filters" validate:"omitempty,dive,oneof=COMMON UNCOMMON RARE EPIC LEGENDARY"`
	ScoringMethod        string   `json:"scoring_method" validate:"required,oneof=max_yield weight_conscious"`
}

// BookmarkListResponse wraps a user's bookmark entries
type BookmarkListResponse struct {
	Bookmarks []domain.BookmarkEntry `json:"bookmarks"`
}

// HiddenSourcesResponse wraps a user's hidden source ids
type HiddenSourcesResponse struct {
	HiddenSources []string `json:"hidden_sources"`
}

// HandleAddBookmark adds a wanted item to the user's bookmark set
func HandleAddBookmark(svc bookmark.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BookmarkRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Add bookmark"); err != nil {
			return
		}
		if err := svc.AddBookmark(r.Context(), req.UserID, req.ItemID); err != nil {
			logger.FromContext(r.Context()).Error("Failed to add bookmark", "error", err, "item_id", req.ItemID)
			respondServiceError(w, err, ErrMsgAddBookmarkFailed)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "bookmark added"})
	}
}

// HandleRemoveBookmark removes a wanted item from the user's bookmark set
func HandleRemoveBookmark(svc bookmark.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BookmarkRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Remove bookmark"); err != nil {
			return
		}
		if err := svc.RemoveBookmark(r.Context(), req.UserID, req.ItemID); err != nil {
			logger.FromContext(r.Context()).Error("Failed to remove bookmark", "error", err, "item_id", req.ItemID)
			respondServiceError(w, err, ErrMsgRemoveBookmarkFailed)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "bookmark removed"})
	}
}

// HandlePauseBookmark pauses a bookmark so it stops contributing demand
func HandlePauseBookmark(svc bookmark.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BookmarkRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Pause bookmark"); err != nil {
			return
		}
		if err := svc.PauseBookmark(r.Context(), req.UserID, req.ItemID); err != nil {
			logger.FromContext(r.Context()).Error("Failed to pause bookmark", "error", err, "item_id", req.ItemID)
			respondServiceError(w, err, ErrMsgPauseBookmarkFailed)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "bookmark paused"})
	}
}

// HandleResumeBookmark resumes a paused bookmark
func HandleResumeBookmark(svc bookmark.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BookmarkRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Resume bookmark"); err != nil {
			return
		}
		if err := svc.ResumeBookmark(r.Context(), req.UserID, req.ItemID); err != nil {
			logger.FromContext(r.Context()).Error("Failed to resume bookmark", "error", err, "item_id", req.ItemID)
			respondServiceError(w, err, ErrMsgPauseBookmarkFailed)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "bookmark resumed"})
	}
}

// HandleListBookmarks returns the user's bookmark set
func HandleListBookmarks(svc bookmark.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}
		entries, err := svc.ListBookmarks(r.Context(), userID)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to list bookmarks", "error", err, "user_id", userID)
			respondServiceError(w, err, ErrMsgListBookmarksFailed)
			return
		}
		if entries == nil {
			entries = []domain.BookmarkEntry{}
		}
		respondJSON(w, http.StatusOK, BookmarkListResponse{Bookmarks: entries})
	}
}

// HandleHideSource hides an item from source recommendations
func HandleHideSource(svc bookmark.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BookmarkRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Hide source"); err != nil {
			return
		}
		if err := svc.HideSource(r.Context(), req.UserID, req.ItemID); err != nil {
			logger.FromContext(r.Context()).Error("Failed to hide source", "error", err, "item_id", req.ItemID)
			respondServiceError(w, err, ErrMsgHideSourceFailed)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "source hidden"})
	}
}

// HandleUnhideSource restores a hidden source item
func HandleUnhideSource(svc bookmark.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BookmarkRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Unhide source"); err != nil {
			return
		}
		if err := svc.UnhideSource(r.Context(), req.UserID, req.ItemID); err != nil {
			logger.FromContext(r.Context()).Error("Failed to unhide source", "error", err, "item_id", req.ItemID)
			respondServiceError(w, err, ErrMsgUnhideSourceFailed)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "source unhidden"})
	}
}

// HandleListHiddenSources returns the user's hidden source ids
func HandleListHiddenSources(svc bookmark.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}
		ids, err := svc.ListHiddenSources(r.Context(), userID)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to list hidden sources", "error", err, "user_id", userID)
			respondServiceError(w, err, ErrMsgListHiddenFailed)
			return
		}
		if ids == nil {
			ids = []string{}
		}
		respondJSON(w, http.StatusOK, HiddenSourcesResponse{HiddenSources: ids})
	}
}

// HandleGetSettings returns the user's planner settings (defaults when unset)
func HandleGetSettings(svc bookmark.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}
		settings, err := svc.GetSettings(r.Context(), userID)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to get settings", "error", err, "user_id", userID)
			respondServiceError(w, err, ErrMsgGetSettingsFailed)
			return
		}
		respondJSON(w, http.StatusOK, settings)
	}
}

// HandleUpdateSettings replaces the user's planner settings
func HandleUpdateSettings(svc bookmark.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SettingsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update settings"); err != nil {
			return
		}

		settings := domain.PlannerSettings{
			HideScrappyCollected: req.HideScrappyCollected,
			ScoringMethod:        domain.ScoringMethod(req.ScoringMethod),
		}
		for _, r := range req.RarityFilters {
			settings.RarityFilters = append(settings.RarityFilters, domain.Rarity(r))
		}

		if err := svc.UpdateSettings(r.Context(), req.UserID, settings); err != nil {
			logger.FromContext(r.Context()).Error("Failed to update settings", "error", err, "user_id", req.UserID)
			respondServiceError(w, err, ErrMsgUpdateSettingsFailed)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "settings updated"})
	}
}
