package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Item errors
	ErrMsgItemNotFound = "item not found"

	// Catalog errors
	ErrMsgCatalogNotLoaded = "catalog not loaded"

	// Bookmark errors
	ErrMsgBookmarkNotFound      = "bookmark not found"
	ErrMsgBookmarkAlreadyExists = "bookmark already exists"

	// Aggregation errors
	ErrMsgInvalidScoringMethod = "invalid scoring method"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Item errors
	ErrItemNotFound = errors.New(ErrMsgItemNotFound)

	// Catalog errors
	ErrCatalogNotLoaded = errors.New(ErrMsgCatalogNotLoaded)

	// Bookmark errors
	ErrBookmarkNotFound      = errors.New(ErrMsgBookmarkNotFound)
	ErrBookmarkAlreadyExists = errors.New(ErrMsgBookmarkAlreadyExists)

	// Aggregation errors
	ErrInvalidScoringMethod = errors.New(ErrMsgInvalidScoringMethod)

	// Input errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
