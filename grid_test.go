package inkcms

import (
	"errors"
	"testing"
)

var testSortable = map[string]string{
	"id":        "id",
	"title":     "title",
	"createdAt": "created_at",
}

func gridColumns(fields ...string) []GridColumn {
	cols := make([]GridColumn, len(fields))
	for i, f := range fields {
		cols[i] = GridColumn{Data: f, Orderable: true}
	}
	return cols
}

func TestGridNormalize(t *testing.T) {
	req := GridRequest{
		Draw:    7,
		Start:   20,
		Length:  10,
		Columns: gridColumns("id", "title", "createdAt"),
		Order: []GridOrder{
			{Column: 2, Dir: "desc"},
			{Column: 0, Dir: "asc"},
		},
	}

	page, err := req.Normalize(testSortable)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if page.Index != 2 {
		t.Errorf("Index = %d, want 2", page.Index)
	}
	if page.Size != 10 {
		t.Errorf("Size = %d, want 10", page.Size)
	}
	if page.Offset() != 20 {
		t.Errorf("Offset = %d, want 20", page.Offset())
	}
	if len(page.Order) != 2 {
		t.Fatalf("Order length = %d, want 2", len(page.Order))
	}
	if page.Order[0] != (SortKey{Field: "created_at", Desc: true}) {
		t.Errorf("Order[0] = %+v, want created_at desc", page.Order[0])
	}
	if page.Order[1] != (SortKey{Field: "id", Desc: false}) {
		t.Errorf("Order[1] = %+v, want id asc", page.Order[1])
	}
}

// The page index is integer division of start by length, so a start
// that is not a multiple of length truncates down.
func TestGridNormalizePageIndexTruncates(t *testing.T) {
	req := GridRequest{Start: 25, Length: 10}
	page, err := req.Normalize(testSortable)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if page.Index != 2 {
		t.Errorf("Index = %d, want 2", page.Index)
	}
}

func TestGridNormalizeDirectionCaseInsensitive(t *testing.T) {
	req := GridRequest{
		Start:   0,
		Length:  10,
		Columns: gridColumns("title"),
		Order:   []GridOrder{{Column: 0, Dir: "DESC"}},
	}
	page, err := req.Normalize(testSortable)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if !page.Order[0].Desc {
		t.Error("expected DESC to normalize to a descending key")
	}
}

func TestGridNormalizeInvalidPage(t *testing.T) {
	tests := []struct {
		name          string
		start, length int
	}{
		{"zero length", 0, 0},
		{"negative length", 0, -5},
		{"show-all length", 0, -1},
		{"negative start", -10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GridRequest{Start: tt.start, Length: tt.length}.Normalize(testSortable)
			if !errors.Is(err, ErrInvalidPage) {
				t.Errorf("err = %v, want ErrInvalidPage", err)
			}
		})
	}
}

func TestGridNormalizeRejectsUnknownFields(t *testing.T) {
	tests := []struct {
		name string
		req  GridRequest
	}{
		{
			"column index out of range",
			GridRequest{Start: 0, Length: 10, Columns: gridColumns("id"),
				Order: []GridOrder{{Column: 3, Dir: "asc"}}},
		},
		{
			"negative column index",
			GridRequest{Start: 0, Length: 10, Columns: gridColumns("id"),
				Order: []GridOrder{{Column: -1, Dir: "asc"}}},
		},
		{
			"field not in allowlist",
			GridRequest{Start: 0, Length: 10, Columns: gridColumns("password"),
				Order: []GridOrder{{Column: 0, Dir: "asc"}}},
		},
		{
			"bad direction",
			GridRequest{Start: 0, Length: 10, Columns: gridColumns("id"),
				Order: []GridOrder{{Column: 0, Dir: "sideways"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.req.Normalize(testSortable)
			if !errors.Is(err, ErrInvalidFilterField) {
				t.Errorf("err = %v, want ErrInvalidFilterField", err)
			}
		})
	}
}

func TestGridNormalizeNoOrder(t *testing.T) {
	page, err := GridRequest{Start: 0, Length: 25}.Normalize(testSortable)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(page.Order) != 0 {
		t.Errorf("Order = %v, want empty", page.Order)
	}
}
