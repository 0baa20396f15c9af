package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages
const (
	// Catalog errors
	ErrMsgItemNotFound     = "item not found"
	ErrMsgRecipeNotFound   = "recipe not found"
	ErrMsgCategoryNotFound = "search category not found"

	// Import errors
	ErrMsgMalformedRow = "malformed import row"

	// Market errors
	ErrMsgSnapshotUnavailable = "market snapshot unavailable"
	ErrMsgFetchFailed         = "market fetch failed"
	ErrMsgResponseShape       = "unexpected pricing response shape"
)

// Common domain errors.
// Wrap these with fmt.Errorf("%w: ...", domain.ErrXxx) for additional context.
var (
	// Catalog errors. A lookup miss on a caller-supplied id is a hard error,
	// never silently recovered.
	ErrItemNotFound     = errors.New(ErrMsgItemNotFound)
	ErrRecipeNotFound   = errors.New(ErrMsgRecipeNotFound)
	ErrCategoryNotFound = errors.New(ErrMsgCategoryNotFound)

	// Import errors. A field that fails to parse aborts the whole build;
	// ingestion never proceeds with partially-typed data.
	ErrMalformedRow = errors.New(ErrMsgMalformedRow)

	// Market errors
	ErrSnapshotUnavailable = errors.New(ErrMsgSnapshotUnavailable)
	ErrFetchFailed         = errors.New(ErrMsgFetchFailed)
	ErrResponseShape       = errors.New(ErrMsgResponseShape)
)
