package inkcms

import (
	"fmt"
	"strconv"
	"time"
)

// FilterKind selects the single predicate dimension of a listing
// request. Public listings always add "status = PUBLISHED" on top.
type FilterKind int

const (
	// FilterNone lists all published posts.
	FilterNone FilterKind = iota
	// FilterDateRange restricts by publication date interval.
	FilterDateRange
	// FilterTag restricts to posts carrying a tag.
	FilterTag
	// FilterCategory restricts to posts under a category.
	FilterCategory
	// FilterQuery ranks posts by full-text relevance.
	FilterQuery
)

// Filter is the predicate of a listing request. Exactly one dimension
// is active, selected by Kind; the matching field carries its value.
// Filters are built per request and discarded with the response.
type Filter struct {
	Kind  FilterKind
	Range TimeRange // FilterDateRange
	Ref   string    // FilterTag, FilterCategory: numeric id or slug
	Query string    // FilterQuery
}

// PageResult is one window of a listing. TotalPages is always
// ceil(TotalElements/PageSize) and Items never exceeds PageSize.
type PageResult struct {
	Items         []ContentItem
	PageNumber    int
	PageSize      int
	TotalElements int
	TotalPages    int
}

// IsFirst reports whether this is the first page.
func (p PageResult) IsFirst() bool { return p.PageNumber <= 1 }

// IsLast reports whether this is the last page.
func (p PageResult) IsLast() bool { return p.PageNumber >= p.TotalPages }

func newPageResult(items []ContentItem, pageNumber, pageSize, total int) PageResult {
	pages := 0
	if pageSize > 0 {
		pages = (total + pageSize - 1) / pageSize
	}
	return PageResult{
		Items:         items,
		PageNumber:    pageNumber,
		PageSize:      pageSize,
		TotalElements: total,
		TotalPages:    pages,
	}
}

// ContentSource is the storage collaborator consumed by the listing
// engine. Implementations return windows ordered by publication date
// descending together with the total match count, and resolve tag and
// category references by id or slug (ErrNotFound when absent).
type ContentSource interface {
	PublishedWindow(offset, limit int) ([]ContentItem, int, error)
	PublishedBetween(start, end time.Time, offset, limit int) ([]ContentItem, int, error)
	PublishedByTag(tagID int64, offset, limit int) ([]ContentItem, int, error)
	PublishedByCategory(categoryID int64, offset, limit int) ([]ContentItem, int, error)
	ContentByIDs(ids []int64) ([]ContentItem, error)
	ContentGridWindow(kind ContentKind, offset, limit int, order []SortKey) ([]ContentItem, int, error)
	TagByID(id int64) (Tag, error)
	TagBySlug(slug string) (Tag, error)
	CategoryByID(id int64) (Category, error)
	CategoryBySlug(slug string) (Category, error)
}

// SearchIndex is the full-text collaborator: given a query string it
// returns one ranked window of content ids plus the total match count.
// Index maintenance is the collaborator's own responsibility.
type SearchIndex interface {
	Search(query string, offset, limit int) (ids []int64, total int, err error)
}

// Listing dispatches filter specifications to the storage or search
// collaborator and produces consistent page results. It is stateless
// and read-only; every call re-queries the collaborators.
type Listing struct {
	source ContentSource
	index  SearchIndex
}

// NewListing creates a Listing over the given collaborators.
func NewListing(source ContentSource, index SearchIndex) *Listing {
	return &Listing{source: source, index: index}
}

// List returns one page of published posts matching the filter,
// ordered by publication date descending (relevance order for
// full-text queries). Page numbers are 1-based; page < 1 fails with
// ErrInvalidPage. Exactly one dispatch branch executes per call.
func (l *Listing) List(f Filter, page, pageSize int) (PageResult, error) {
	if page < 1 {
		return PageResult{}, fmt.Errorf("%w: page %d", ErrInvalidPage, page)
	}
	if pageSize < 1 {
		return PageResult{}, fmt.Errorf("%w: page size %d", ErrInvalidPage, pageSize)
	}
	offset := pageSize * (page - 1)

	var (
		items []ContentItem
		total int
		err   error
	)
	switch f.Kind {
	case FilterNone:
		items, total, err = l.source.PublishedWindow(offset, pageSize)
	case FilterDateRange:
		if f.Range.IsZero() {
			items, total, err = l.source.PublishedWindow(offset, pageSize)
		} else {
			items, total, err = l.source.PublishedBetween(f.Range.Start, f.Range.End, offset, pageSize)
		}
	case FilterTag:
		var tag Tag
		tag, err = l.ResolveTag(f.Ref)
		if err == nil {
			items, total, err = l.source.PublishedByTag(tag.ID, offset, pageSize)
		}
	case FilterCategory:
		var category Category
		category, err = l.ResolveCategory(f.Ref)
		if err == nil {
			items, total, err = l.source.PublishedByCategory(category.ID, offset, pageSize)
		}
	case FilterQuery:
		var ids []int64
		ids, total, err = l.index.Search(f.Query, offset, pageSize)
		if err == nil {
			// Ranked order from the index is preserved; items are not
			// re-sorted by date.
			items, err = l.source.ContentByIDs(ids)
		}
	default:
		return PageResult{}, fmt.Errorf("%w: unknown filter kind %d", ErrInvalidFilterField, f.Kind)
	}
	if err != nil {
		return PageResult{}, err
	}
	return newPageResult(items, page, pageSize, total), nil
}

// ListGrid returns one window for the admin grid. Unlike public
// listings it is 0-based, sorts by the normalized ordering, and applies
// no status restriction: the back office sees drafts too.
func (l *Listing) ListGrid(kind ContentKind, page GridPage) (PageResult, error) {
	items, total, err := l.source.ContentGridWindow(kind, page.Offset(), page.Size, page.Order)
	if err != nil {
		return PageResult{}, err
	}
	return newPageResult(items, page.Index+1, page.Size, total), nil
}

// ResolveTag resolves a tag reference. Numeric-looking input is
// treated as an id, anything else as a slug.
func (l *Listing) ResolveTag(ref string) (Tag, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return l.source.TagByID(id)
	}
	return l.source.TagBySlug(ref)
}

// ResolveCategory resolves a category reference by id or slug.
func (l *Listing) ResolveCategory(ref string) (Category, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return l.source.CategoryByID(id)
	}
	return l.source.CategoryBySlug(ref)
}
