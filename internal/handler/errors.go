package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Aggregation error messages
	ErrMsgAggregateFailed = "Failed to aggregate materials"

	// Bookmark error messages
	ErrMsgAddBookmarkFailed    = "Failed to add bookmark"
	ErrMsgRemoveBookmarkFailed = "Failed to remove bookmark"
	ErrMsgPauseBookmarkFailed  = "Failed to update bookmark"
	ErrMsgListBookmarksFailed  = "Failed to list bookmarks"
	ErrMsgHideSourceFailed     = "Failed to hide source item"
	ErrMsgUnhideSourceFailed   = "Failed to unhide source item"
	ErrMsgListHiddenFailed     = "Failed to list hidden sources"
	ErrMsgGetSettingsFailed    = "Failed to get settings"
	ErrMsgUpdateSettingsFailed = "Failed to update settings"

	// Item error messages
	ErrMsgGetItemFailed = "Failed to get item"
)
