package inkcms

import "errors"

// Sentinel errors returned by the listing engine. Handlers translate
// them to HTTP status codes; callers match with errors.Is.
var (
	// ErrNotFound is returned when a content item, tag or category
	// reference cannot be resolved by id or slug.
	ErrNotFound = errors.New("inkcms: not found")

	// ErrInvalidPage is returned for a non-positive page number or a
	// grid page length that would make windowing impossible.
	ErrInvalidPage = errors.New("inkcms: invalid page")

	// ErrInvalidFilterField is returned when a grid ordering references
	// an unknown column or a field outside the sortable allowlist.
	ErrInvalidFilterField = errors.New("inkcms: invalid filter field")

	// ErrInvalidDateComponents is returned for calendar values that do
	// not form a valid date (month 13, day 32, day without month).
	ErrInvalidDateComponents = errors.New("inkcms: invalid date components")
)
