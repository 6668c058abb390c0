package inkcms

import (
	"fmt"
	"strconv"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
)

// Index wraps a Bleve full-text index over content titles and bodies.
// It implements SearchIndex for the listing engine; ranking quality is
// entirely Bleve's business.
type Index struct {
	idx bleve.Index
}

// indexedContent is the document shape stored in the index.
type indexedContent struct {
	Title string
	Body  string
}

// OpenIndex opens or creates the index at path. An empty path opens an
// in-memory index, used by tests and small deployments.
func OpenIndex(path string) (*Index, error) {
	if path == "" {
		idx, err := bleve.NewMemOnly(buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("inkcms: create index: %w", err)
		}
		return &Index{idx: idx}, nil
	}

	idx, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		idx, err = bleve.New(path, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("inkcms: create index: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("inkcms: open index: %w", err)
	}
	return &Index{idx: idx}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	// English analyzer on titles for stemming; standard analyzer on
	// bodies.
	titleMapping := bleve.NewTextFieldMapping()
	titleMapping.Analyzer = "en"

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("Title", titleMapping)
	docMapping.AddFieldMappingsAt("Body", bleve.NewTextFieldMapping())

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("_default", docMapping)
	return indexMapping
}

// Close closes the underlying index.
func (i *Index) Close() error {
	return i.idx.Close()
}

// IndexContent adds or updates a published item in the index. Drafts
// are removed instead, so unpublishing takes an item out of search
// results immediately.
func (i *Index) IndexContent(item ContentItem) error {
	if item.Status != StatusPublished || item.Kind != KindPost {
		return i.RemoveContent(item.ID)
	}
	return i.idx.Index(indexKey(item.ID), indexedContent{Title: item.Title, Body: item.Body})
}

// RemoveContent deletes an item from the index.
func (i *Index) RemoveContent(id int64) error {
	return i.idx.Delete(indexKey(id))
}

// Rebuild replaces the index contents with the given items in one
// batch. Called at startup so the index always reflects the store.
func (i *Index) Rebuild(items []ContentItem) error {
	batch := i.idx.NewBatch()
	for _, item := range items {
		if item.Status != StatusPublished || item.Kind != KindPost {
			continue
		}
		doc := indexedContent{Title: item.Title, Body: item.Body}
		if err := batch.Index(indexKey(item.ID), doc); err != nil {
			return fmt.Errorf("inkcms: batch index %d: %w", item.ID, err)
		}
	}
	if err := i.idx.Batch(batch); err != nil {
		return fmt.Errorf("inkcms: commit index batch: %w", err)
	}
	return nil
}

// Search runs a keyword query over titles and bodies and returns one
// ranked window of content ids plus the total match count.
func (i *Index) Search(query string, offset, limit int) ([]int64, int, error) {
	titleQuery := bleve.NewMatchQuery(query)
	titleQuery.SetField("Title")
	bodyQuery := bleve.NewMatchQuery(query)
	bodyQuery.SetField("Body")

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(titleQuery, bodyQuery), limit, offset, false)
	res, err := i.idx.Search(req)
	if err != nil {
		return nil, 0, fmt.Errorf("inkcms: search: %w", err)
	}

	ids := make([]int64, 0, len(res.Hits))
	for _, hit := range res.Hits {
		id, err := strconv.ParseInt(hit.ID, 10, 64)
		if err != nil {
			return nil, 0, fmt.Errorf("inkcms: malformed index key %q: %w", hit.ID, err)
		}
		ids = append(ids, id)
	}
	return ids, int(res.Total), nil
}

func indexKey(id int64) string {
	return strconv.FormatInt(id, 10)
}
