package inkcms

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// sqlTimeLayout is the fixed-width UTC timestamp format used for every
// time column. Fixed width keeps lexicographic ordering identical to
// chronological ordering, so range predicates and ORDER BY work on the
// raw text.
const sqlTimeLayout = "2006-01-02T15:04:05.000000000Z"

func storeTime(t time.Time) string {
	return t.UTC().Format(sqlTimeLayout)
}

func parseStoreTime(s string) (time.Time, error) {
	return time.Parse(sqlTimeLayout, s)
}

const contentColumns = "id, kind, title, body, status, slug, author, created_at, updated_at, published_at"

// Store wraps a SQLite database and implements the storage collaborator
// contracts: ContentSource, SiteSource and FeedSource.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the
// data directory exists, and applies schema migrations.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL for concurrent reads, busy timeout so writers wait instead of
	// failing with SQLITE_BUSY, and foreign keys for the join tables.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA foreign_keys=ON;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	if err := runMigrations(db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func scanContent(scan func(dest ...any) error) (ContentItem, error) {
	var (
		item                 ContentItem
		slug, publishedAt    sql.NullString
		createdAt, updatedAt string
	)
	err := scan(&item.ID, &item.Kind, &item.Title, &item.Body, &item.Status,
		&slug, &item.Author, &createdAt, &updatedAt, &publishedAt)
	if err != nil {
		return ContentItem{}, err
	}
	item.Slug = slug.String
	if item.CreatedAt, err = parseStoreTime(createdAt); err != nil {
		return ContentItem{}, err
	}
	if item.UpdatedAt, err = parseStoreTime(updatedAt); err != nil {
		return ContentItem{}, err
	}
	if publishedAt.Valid {
		t, err := parseStoreTime(publishedAt.String)
		if err != nil {
			return ContentItem{}, err
		}
		item.PublishedAt = &t
	}
	return item, nil
}

// queryContent runs a content select, scans all rows, and attaches the
// tag and category sets of the returned items.
func (s *Store) queryContent(query string, args ...any) ([]ContentItem, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ContentItem
	for rows.Next() {
		item, err := scanContent(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.attachTaxonomy(items); err != nil {
		return nil, err
	}
	return items, nil
}

// attachTaxonomy loads the tags and categories of the given items with
// one query per relation.
func (s *Store) attachTaxonomy(items []ContentItem) error {
	if len(items) == 0 {
		return nil
	}
	index := make(map[int64]*ContentItem, len(items))
	args := make([]any, 0, len(items))
	for i := range items {
		index[items[i].ID] = &items[i]
		args = append(args, items[i].ID)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(items)), ",")

	if err := s.attachTags(index, placeholders, args); err != nil {
		return err
	}
	return s.attachCategories(index, placeholders, args)
}

func (s *Store) attachTags(index map[int64]*ContentItem, placeholders string, args []any) error {
	rows, err := s.db.Query(`SELECT ct.content_id, t.id, t.name, t.slug, t.description
		FROM content_tags ct JOIN tags t ON t.id = ct.tag_id
		WHERE ct.content_id IN (`+placeholders+`) ORDER BY t.name`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var contentID int64
		var tag Tag
		if err := rows.Scan(&contentID, &tag.ID, &tag.Name, &tag.Slug, &tag.Description); err != nil {
			return err
		}
		item := index[contentID]
		item.Tags = append(item.Tags, tag)
	}
	return rows.Err()
}

func (s *Store) attachCategories(index map[int64]*ContentItem, placeholders string, args []any) error {
	rows, err := s.db.Query(`SELECT cc.content_id, c.id, c.name, c.slug, c.description, c.parent_id
		FROM content_categories cc JOIN categories c ON c.id = cc.category_id
		WHERE cc.content_id IN (`+placeholders+`) ORDER BY c.name`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var contentID int64
		var cat Category
		var parent sql.NullInt64
		if err := rows.Scan(&contentID, &cat.ID, &cat.Name, &cat.Slug, &cat.Description, &parent); err != nil {
			return err
		}
		if parent.Valid {
			cat.ParentID = &parent.Int64
		}
		item := index[contentID]
		item.Categories = append(item.Categories, cat)
	}
	return rows.Err()
}

func (s *Store) countContent(where string, args ...any) (int, error) {
	var total int
	err := s.db.QueryRow("SELECT COUNT(*) FROM content "+where, args...).Scan(&total)
	return total, err
}

// PublishedWindow returns one window of published posts ordered by
// publication date descending, plus the total published post count.
func (s *Store) PublishedWindow(offset, limit int) ([]ContentItem, int, error) {
	const where = "WHERE kind = 'post' AND status = 'PUBLISHED'"
	total, err := s.countContent(where)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.queryContent("SELECT "+contentColumns+" FROM content "+where+
		" ORDER BY published_at DESC LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// PublishedBetween returns one window of posts published inside the
// inclusive [start, end] interval.
func (s *Store) PublishedBetween(start, end time.Time, offset, limit int) ([]ContentItem, int, error) {
	const where = "WHERE kind = 'post' AND status = 'PUBLISHED' AND published_at BETWEEN ? AND ?"
	total, err := s.countContent(where, storeTime(start), storeTime(end))
	if err != nil {
		return nil, 0, err
	}
	items, err := s.queryContent("SELECT "+contentColumns+" FROM content "+where+
		" ORDER BY published_at DESC LIMIT ? OFFSET ?", storeTime(start), storeTime(end), limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// PublishedByTag returns one window of published posts carrying the
// given tag.
func (s *Store) PublishedByTag(tagID int64, offset, limit int) ([]ContentItem, int, error) {
	const where = `WHERE kind = 'post' AND status = 'PUBLISHED'
		AND id IN (SELECT content_id FROM content_tags WHERE tag_id = ?)`
	total, err := s.countContent(where, tagID)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.queryContent("SELECT "+contentColumns+" FROM content "+where+
		" ORDER BY published_at DESC LIMIT ? OFFSET ?", tagID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// PublishedByCategory returns one window of published posts under the
// given category.
func (s *Store) PublishedByCategory(categoryID int64, offset, limit int) ([]ContentItem, int, error) {
	const where = `WHERE kind = 'post' AND status = 'PUBLISHED'
		AND id IN (SELECT content_id FROM content_categories WHERE category_id = ?)`
	total, err := s.countContent(where, categoryID)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.queryContent("SELECT "+contentColumns+" FROM content "+where+
		" ORDER BY published_at DESC LIMIT ? OFFSET ?", categoryID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ContentByIDs returns the items with the given ids, in the order the
// ids were given. Missing ids are skipped, matching the behavior of a
// search hit whose row was deleted between indexing and lookup.
func (s *Store) ContentByIDs(ids []int64) ([]ContentItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	items, err := s.queryContent("SELECT "+contentColumns+" FROM content WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]ContentItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	ordered := make([]ContentItem, 0, len(ids))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			ordered = append(ordered, item)
		}
	}
	return ordered, nil
}

// orderClause builds an ORDER BY fragment from resolved sort keys.
// Field names come from the grid allowlists, never from the request,
// so interpolating them is safe.
func orderClause(order []SortKey, fallback string) string {
	if len(order) == 0 {
		return " ORDER BY " + fallback
	}
	parts := make([]string, len(order))
	for i, key := range order {
		dir := "ASC"
		if key.Desc {
			dir = "DESC"
		}
		parts[i] = key.Field + " " + dir
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

// ContentGridWindow returns one admin-grid window of content of the
// given kind. No status restriction: the grid must see drafts.
func (s *Store) ContentGridWindow(kind ContentKind, offset, limit int, order []SortKey) ([]ContentItem, int, error) {
	total, err := s.countContent("WHERE kind = ?", kind)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.queryContent("SELECT "+contentColumns+" FROM content WHERE kind = ?"+
		orderClause(order, "id ASC")+" LIMIT ? OFFSET ?", kind, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// TagGridWindow returns one admin-grid window of tags.
func (s *Store) TagGridWindow(offset, limit int, order []SortKey) ([]Tag, int, error) {
	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM tags").Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := s.db.Query("SELECT id, name, slug, description FROM tags"+
		orderClause(order, "id ASC")+" LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var tags []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.Description); err != nil {
			return nil, 0, err
		}
		tags = append(tags, t)
	}
	return tags, total, rows.Err()
}

// CategoryGridWindow returns one admin-grid window of categories.
func (s *Store) CategoryGridWindow(offset, limit int, order []SortKey) ([]Category, int, error) {
	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := s.db.Query("SELECT id, name, slug, description, parent_id FROM categories"+
		orderClause(order, "id ASC")+" LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var categories []Category
	for rows.Next() {
		var c Category
		var parent sql.NullInt64
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &parent); err != nil {
			return nil, 0, err
		}
		if parent.Valid {
			c.ParentID = &parent.Int64
		}
		categories = append(categories, c)
	}
	return categories, total, rows.Err()
}

// CommentGridWindow returns one admin-grid window of comments.
func (s *Store) CommentGridWindow(offset, limit int, order []SortKey) ([]Comment, int, error) {
	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM comments").Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := s.db.Query(`SELECT c.id, c.content_id, COALESCE(ct.slug, ''), c.body, c.name, c.email, c.site,
		c.created_at, c.updated_at FROM comments c JOIN content ct ON ct.id = c.content_id`+
		orderClause(order, "c.id ASC")+" LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	comments, err := scanComments(rows)
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func scanComments(rows *sql.Rows) ([]Comment, error) {
	var comments []Comment
	for rows.Next() {
		var cm Comment
		var createdAt, updatedAt string
		if err := rows.Scan(&cm.ID, &cm.ContentID, &cm.ContentSlug, &cm.Body, &cm.Name, &cm.Email, &cm.Site,
			&createdAt, &updatedAt); err != nil {
			return nil, err
		}
		var err error
		if cm.CreatedAt, err = parseStoreTime(createdAt); err != nil {
			return nil, err
		}
		if cm.UpdatedAt, err = parseStoreTime(updatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, cm)
	}
	return comments, rows.Err()
}

// AllPublished returns every published post, newest first. Used by the
// sitemap and the startup index rebuild.
func (s *Store) AllPublished() ([]ContentItem, error) {
	return s.queryContent("SELECT " + contentColumns +
		" FROM content WHERE kind = 'post' AND status = 'PUBLISHED' ORDER BY published_at DESC")
}

// TagByID returns a tag by id, or ErrNotFound.
func (s *Store) TagByID(id int64) (Tag, error) {
	return s.scanTag(s.db.QueryRow("SELECT id, name, slug, description FROM tags WHERE id = ?", id))
}

// TagBySlug returns a tag by slug, or ErrNotFound.
func (s *Store) TagBySlug(slug string) (Tag, error) {
	return s.scanTag(s.db.QueryRow("SELECT id, name, slug, description FROM tags WHERE slug = ?", slug))
}

func (s *Store) scanTag(row *sql.Row) (Tag, error) {
	var t Tag
	err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return Tag{}, ErrNotFound
	}
	return t, err
}

// CategoryByID returns a category by id, or ErrNotFound.
func (s *Store) CategoryByID(id int64) (Category, error) {
	return s.scanCategory(s.db.QueryRow(
		"SELECT id, name, slug, description, parent_id FROM categories WHERE id = ?", id))
}

// CategoryBySlug returns a category by slug, or ErrNotFound.
func (s *Store) CategoryBySlug(slug string) (Category, error) {
	return s.scanCategory(s.db.QueryRow(
		"SELECT id, name, slug, description, parent_id FROM categories WHERE slug = ?", slug))
}

func (s *Store) scanCategory(row *sql.Row) (Category, error) {
	var c Category
	var parent sql.NullInt64
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &parent)
	if errors.Is(err, sql.ErrNoRows) {
		return Category{}, ErrNotFound
	}
	if parent.Valid {
		c.ParentID = &parent.Int64
	}
	return c, err
}

// ContentByRef returns a single published item by numeric id or slug,
// or ErrNotFound.
func (s *Store) ContentByRef(ref string) (ContentItem, error) {
	items, err := s.queryContent("SELECT "+contentColumns+
		" FROM content WHERE status = 'PUBLISHED' AND (slug = ? OR CAST(id AS TEXT) = ?) LIMIT 1", ref, ref)
	if err != nil {
		return ContentItem{}, err
	}
	if len(items) == 0 {
		return ContentItem{}, ErrNotFound
	}
	return items[0], nil
}

// AnyContentByID returns an item regardless of status (for admin).
func (s *Store) AnyContentByID(id int64) (ContentItem, error) {
	items, err := s.queryContent("SELECT "+contentColumns+" FROM content WHERE id = ?", id)
	if err != nil {
		return ContentItem{}, err
	}
	if len(items) == 0 {
		return ContentItem{}, ErrNotFound
	}
	return items[0], nil
}

// CountByMonth returns how many posts were published in each calendar
// month, most recent month first.
func (s *Store) CountByMonth() ([]MonthCount, error) {
	rows, err := s.db.Query(`SELECT CAST(substr(published_at, 1, 4) AS INTEGER) AS y,
		CAST(substr(published_at, 6, 2) AS INTEGER) AS m, COUNT(*)
		FROM content WHERE kind = 'post' AND published_at IS NOT NULL
		GROUP BY y, m ORDER BY y DESC, m DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var counts []MonthCount
	for rows.Next() {
		var mc MonthCount
		if err := rows.Scan(&mc.Year, &mc.Month, &mc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, mc)
	}
	return counts, rows.Err()
}

// CategoriesByName returns all categories, alphabetically.
func (s *Store) CategoriesByName() ([]Category, error) {
	rows, err := s.db.Query("SELECT id, name, slug, description, parent_id FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var categories []Category
	for rows.Next() {
		var c Category
		var parent sql.NullInt64
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &parent); err != nil {
			return nil, err
		}
		if parent.Valid {
			c.ParentID = &parent.Int64
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// StaticPages returns the published static pages, ordered by title.
func (s *Store) StaticPages() ([]ContentItem, error) {
	return s.queryContent("SELECT " + contentColumns +
		" FROM content WHERE kind = 'page' AND status = 'PUBLISHED' ORDER BY title")
}

// Parameters returns all site parameters, with compiled-in defaults
// filling any key absent from storage.
func (s *Store) Parameters() (map[string]string, error) {
	rows, err := s.db.Query("SELECT name, value FROM parameters")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	params := make(map[string]string, len(defaultParameters))
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		params[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for name, value := range defaultParameters {
		if _, ok := params[name]; !ok {
			params[name] = value
		}
	}
	return params, nil
}

// SetParameter stores a site parameter value.
func (s *Store) SetParameter(name, value string) error {
	_, err := s.db.Exec("INSERT INTO parameters (name, value) VALUES (?, ?) "+
		"ON CONFLICT (name) DO UPDATE SET value = excluded.value", name, value)
	return err
}

// CommentsFor returns the comments of a content item, oldest first.
func (s *Store) CommentsFor(contentID int64) ([]Comment, error) {
	rows, err := s.db.Query(`SELECT c.id, c.content_id, COALESCE(ct.slug, ''), c.body, c.name, c.email, c.site,
		c.created_at, c.updated_at FROM comments c JOIN content ct ON ct.id = c.content_id
		WHERE c.content_id = ? ORDER BY c.created_at`, contentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComments(rows)
}

// LatestComments returns the newest comments on published content.
func (s *Store) LatestComments(limit int) ([]Comment, error) {
	rows, err := s.db.Query(`SELECT c.id, c.content_id, COALESCE(ct.slug, ''), c.body, c.name, c.email, c.site,
		c.created_at, c.updated_at FROM comments c JOIN content ct ON ct.id = c.content_id
		WHERE ct.status = 'PUBLISHED' ORDER BY c.created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComments(rows)
}

// AddComment inserts a comment on a published content item. The target
// must exist, or ErrNotFound is returned. Single-row insert, no
// cross-entity locking.
func (s *Store) AddComment(contentID int64, cm Comment) (Comment, error) {
	var slug sql.NullString
	err := s.db.QueryRow("SELECT slug FROM content WHERE id = ? AND status = 'PUBLISHED'", contentID).Scan(&slug)
	if errors.Is(err, sql.ErrNoRows) {
		return Comment{}, ErrNotFound
	}
	if err != nil {
		return Comment{}, err
	}

	now := time.Now().UTC()
	res, err := s.db.Exec(`INSERT INTO comments (content_id, body, name, email, site, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		contentID, cm.Body, cm.Name, cm.Email, cm.Site, storeTime(now), storeTime(now))
	if err != nil {
		return Comment{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Comment{}, err
	}
	cm.ID = id
	cm.ContentID = contentID
	cm.ContentSlug = slug.String
	cm.CreatedAt = now
	cm.UpdatedAt = now
	return cm, nil
}

// SaveContent inserts or updates a content item and synchronizes its
// tag and category sets. PublishedAt is set exactly once, on the first
// transition to PUBLISHED; later edits never touch it.
func (s *Store) SaveContent(item ContentItem) (ContentItem, error) {
	now := time.Now().UTC()
	item.UpdatedAt = now

	var slug any
	if item.Slug != "" {
		slug = item.Slug
	}

	if item.ID == 0 {
		item.CreatedAt = now
		if item.Status == StatusPublished && item.PublishedAt == nil {
			item.PublishedAt = &now
		}
		res, err := s.db.Exec(`INSERT INTO content (kind, title, body, status, slug, author, created_at, updated_at, published_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.Kind, item.Title, item.Body, item.Status, slug, item.Author,
			storeTime(item.CreatedAt), storeTime(item.UpdatedAt), nullableTime(item.PublishedAt))
		if err != nil {
			return ContentItem{}, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return ContentItem{}, err
		}
		item.ID = id
	} else {
		existing, err := s.AnyContentByID(item.ID)
		if err != nil {
			return ContentItem{}, err
		}
		item.CreatedAt = existing.CreatedAt
		item.PublishedAt = existing.PublishedAt
		if item.Status == StatusPublished && item.PublishedAt == nil {
			item.PublishedAt = &now
		}
		_, err = s.db.Exec(`UPDATE content SET kind = ?, title = ?, body = ?, status = ?, slug = ?, author = ?,
			updated_at = ?, published_at = ? WHERE id = ?`,
			item.Kind, item.Title, item.Body, item.Status, slug, item.Author,
			storeTime(item.UpdatedAt), nullableTime(item.PublishedAt), item.ID)
		if err != nil {
			return ContentItem{}, err
		}
	}

	if err := s.syncJoins(item.ID, "content_tags", "tag_id", tagIDs(item.Tags)); err != nil {
		return ContentItem{}, err
	}
	if err := s.syncJoins(item.ID, "content_categories", "category_id", categoryIDs(item.Categories)); err != nil {
		return ContentItem{}, err
	}
	return item, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return storeTime(*t)
}

func tagIDs(tags []Tag) []int64 {
	ids := make([]int64, len(tags))
	for i, t := range tags {
		ids[i] = t.ID
	}
	return ids
}

func categoryIDs(categories []Category) []int64 {
	ids := make([]int64, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
	}
	return ids
}

func (s *Store) syncJoins(contentID int64, table, column string, ids []int64) error {
	if _, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s WHERE content_id = ?", table), contentID); err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := s.db.Exec(fmt.Sprintf("INSERT INTO %s (content_id, %s) VALUES (?, ?)", table, column),
			contentID, id); err != nil {
			return err
		}
	}
	return nil
}

// DeleteContent removes a content item. Comments and join rows follow
// via ON DELETE CASCADE.
func (s *Store) DeleteContent(id int64) error {
	_, err := s.db.Exec("DELETE FROM content WHERE id = ?", id)
	return err
}

// SaveTag inserts or updates a tag. Used by fixtures and the back
// office; the listing engine itself never writes tags.
func (s *Store) SaveTag(t Tag) (Tag, error) {
	if t.ID == 0 {
		res, err := s.db.Exec("INSERT INTO tags (name, slug, description) VALUES (?, ?, ?)",
			t.Name, t.Slug, t.Description)
		if err != nil {
			return Tag{}, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return Tag{}, err
		}
		t.ID = id
		return t, nil
	}
	_, err := s.db.Exec("UPDATE tags SET name = ?, slug = ?, description = ? WHERE id = ?",
		t.Name, t.Slug, t.Description, t.ID)
	return t, err
}

// SaveCategory inserts or updates a category.
func (s *Store) SaveCategory(c Category) (Category, error) {
	var parent any
	if c.ParentID != nil {
		parent = *c.ParentID
	}
	if c.ID == 0 {
		res, err := s.db.Exec("INSERT INTO categories (name, slug, description, parent_id) VALUES (?, ?, ?, ?)",
			c.Name, c.Slug, c.Description, parent)
		if err != nil {
			return Category{}, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return Category{}, err
		}
		c.ID = id
		return c, nil
	}
	_, err := s.db.Exec("UPDATE categories SET name = ?, slug = ?, description = ?, parent_id = ? WHERE id = ?",
		c.Name, c.Slug, c.Description, parent, c.ID)
	return c, err
}

// ContentCount returns the number of content items of a kind.
func (s *Store) ContentCount(kind ContentKind) (int, error) {
	return s.countContent("WHERE kind = ?", kind)
}

// CommentCount returns the total number of comments.
func (s *Store) CommentCount() (int, error) {
	var total int
	err := s.db.QueryRow("SELECT COUNT(*) FROM comments").Scan(&total)
	return total, err
}
