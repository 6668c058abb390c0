package inkcms

import "time"

// ContentStatus is the publication state of a content item.
type ContentStatus string

const (
	StatusDraft     ContentStatus = "DRAFT"
	StatusPublished ContentStatus = "PUBLISHED"
)

// ContentKind distinguishes blog posts from static pages. Both live in
// the same content table; only posts appear in date/taxonomy listings.
type ContentKind string

const (
	KindPost ContentKind = "post"
	KindPage ContentKind = "page"
)

// ContentItem is the core publishable unit stored in SQLite and handed
// to templates. PublishedAt is set exactly once, when the item first
// transitions to PUBLISHED; it is never derived from CreatedAt.
type ContentItem struct {
	ID          int64         `json:"id"`
	Kind        ContentKind   `json:"kind"`
	Title       string        `json:"title"`
	Body        string        `json:"body"`
	Status      ContentStatus `json:"status"`
	Slug        string        `json:"slug"` // unique; may be empty until published
	Author      string        `json:"author"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	PublishedAt *time.Time    `json:"publishedAt"`
	Tags        []Tag         `json:"tags,omitempty"`
	Categories  []Category    `json:"categories,omitempty"`
}

// Tag labels content items. Reference data: the listing engine only
// reads tags, it never creates or mutates them.
type Tag struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// Category groups content items into an optional hierarchy.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ParentID    *int64 `json:"parentId"`
}

// Comment is a reader comment on a content item. Comments have no
// publish step, so there is no published timestamp.
type Comment struct {
	ID          int64     `json:"id"`
	ContentID   int64     `json:"contentId"`
	ContentSlug string    `json:"contentSlug"`
	Body        string    `json:"body"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Site        string    `json:"site"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MonthCount is one bucket of the archive aggregation: how many posts
// were published in a calendar month.
type MonthCount struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}
