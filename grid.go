package inkcms

import (
	"fmt"
	"strings"
)

// GridRequest mirrors the request sent by the DataTables javascript
// grid for server-side processing. Draw is opaque to the server and
// echoed back unchanged in the response.
type GridRequest struct {
	Draw    int          `json:"draw"`
	Start   int          `json:"start"`
	Length  int          `json:"length"`
	Search  GridSearch   `json:"search"`
	Columns []GridColumn `json:"columns"`
	Order   []GridOrder  `json:"order"`
}

// GridColumn describes one column of the grid. Data is the field name
// the client binds the column to, and the key ordering entries resolve
// against.
type GridColumn struct {
	Data       string     `json:"data"`
	Name       string     `json:"name"`
	Searchable bool       `json:"searchable"`
	Orderable  bool       `json:"orderable"`
	Search     GridSearch `json:"search"`
}

// GridOrder requests sorting by the column at the given index.
type GridOrder struct {
	Column int    `json:"column"`
	Dir    string `json:"dir"`
}

// GridSearch is a global or per-column search value. Carried for wire
// compatibility; filtering is not applied server side.
type GridSearch struct {
	Value string `json:"value"`
	Regex bool   `json:"regex"`
}

// GridResponse is the server-side processing reply DataTables expects.
type GridResponse struct {
	Draw            int `json:"draw"`
	RecordsTotal    int `json:"recordsTotal"`
	RecordsFiltered int `json:"recordsFiltered"`
	Data            any `json:"data"`
}

// SortKey is one resolved ordering criterion: a storage-layer sort
// column and a direction.
type SortKey struct {
	Field string
	Desc  bool
}

// GridPage is the normalized form of a GridRequest: a 0-based page
// index, a page size, and the resolved ordering in caller priority
// order (first key is the primary sort).
type GridPage struct {
	Index int
	Size  int
	Order []SortKey
}

// Offset returns the 0-based row offset of the page.
func (p GridPage) Offset() int { return p.Index * p.Size }

// Normalize converts the raw grid request into a GridPage. Ordering
// fields resolve through sortable, an explicit allowlist from permitted
// request field names to storage sort columns; anything outside it is
// rejected rather than silently dropped. Pure function of its inputs.
func (r GridRequest) Normalize(sortable map[string]string) (GridPage, error) {
	if r.Length <= 0 {
		return GridPage{}, fmt.Errorf("%w: length %d", ErrInvalidPage, r.Length)
	}
	if r.Start < 0 {
		return GridPage{}, fmt.Errorf("%w: start %d", ErrInvalidPage, r.Start)
	}

	order := make([]SortKey, 0, len(r.Order))
	for _, o := range r.Order {
		if o.Column < 0 || o.Column >= len(r.Columns) {
			return GridPage{}, fmt.Errorf("%w: column index %d", ErrInvalidFilterField, o.Column)
		}
		field := r.Columns[o.Column].Data
		column, ok := sortable[field]
		if !ok {
			return GridPage{}, fmt.Errorf("%w: %q is not sortable", ErrInvalidFilterField, field)
		}
		var desc bool
		switch strings.ToLower(o.Dir) {
		case "asc":
			desc = false
		case "desc":
			desc = true
		default:
			return GridPage{}, fmt.Errorf("%w: direction %q", ErrInvalidFilterField, o.Dir)
		}
		order = append(order, SortKey{Field: column, Desc: desc})
	}

	return GridPage{
		Index: r.Start / r.Length,
		Size:  r.Length,
		Order: order,
	}, nil
}
