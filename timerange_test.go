package inkcms

import (
	"errors"
	"testing"
	"time"
)

func TestResolveTimeRangeDay(t *testing.T) {
	tr, err := ResolveTimeRange(2019, 2, 14)
	if err != nil {
		t.Fatalf("ResolveTimeRange failed: %v", err)
	}

	wantStart := time.Date(2019, time.February, 14, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2019, time.February, 14, 23, 59, 59, 999999999, time.UTC)
	if !tr.Start.Equal(wantStart) {
		t.Errorf("Start = %v, want %v", tr.Start, wantStart)
	}
	if !tr.End.Equal(wantEnd) {
		t.Errorf("End = %v, want %v", tr.End, wantEnd)
	}
	if tr.PathPrefix != "/2019/02/14" {
		t.Errorf("PathPrefix = %q, want %q", tr.PathPrefix, "/2019/02/14")
	}
}

func TestResolveTimeRangeMonth(t *testing.T) {
	tr, err := ResolveTimeRange(2019, 2, 0)
	if err != nil {
		t.Fatalf("ResolveTimeRange failed: %v", err)
	}

	wantStart := time.Date(2019, time.February, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2019, time.February, 28, 23, 59, 59, 999999999, time.UTC)
	if !tr.Start.Equal(wantStart) {
		t.Errorf("Start = %v, want %v", tr.Start, wantStart)
	}
	if !tr.End.Equal(wantEnd) {
		t.Errorf("End = %v, want %v", tr.End, wantEnd)
	}
	if tr.PathPrefix != "/2019/02" {
		t.Errorf("PathPrefix = %q, want %q", tr.PathPrefix, "/2019/02")
	}
}

func TestResolveTimeRangeLeapFebruary(t *testing.T) {
	tr, err := ResolveTimeRange(2020, 2, 0)
	if err != nil {
		t.Fatalf("ResolveTimeRange failed: %v", err)
	}
	wantEnd := time.Date(2020, time.February, 29, 23, 59, 59, 999999999, time.UTC)
	if !tr.End.Equal(wantEnd) {
		t.Errorf("End = %v, want %v", tr.End, wantEnd)
	}

	if _, err := ResolveTimeRange(2020, 2, 29); err != nil {
		t.Errorf("Feb 29 of a leap year should be valid, got %v", err)
	}
	if _, err := ResolveTimeRange(2019, 2, 29); !errors.Is(err, ErrInvalidDateComponents) {
		t.Errorf("Feb 29 of a non-leap year should be invalid, got %v", err)
	}
}

// The year-only upper bound is midnight of December 31, not the end of
// the day. Posts published during December 31 fall outside the year
// archive but inside the December archive.
func TestResolveTimeRangeYearBoundIsMidnightOfDec31(t *testing.T) {
	tr, err := ResolveTimeRange(2019, 0, 0)
	if err != nil {
		t.Fatalf("ResolveTimeRange failed: %v", err)
	}

	wantStart := time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2019, time.December, 31, 0, 0, 0, 0, time.UTC)
	if !tr.Start.Equal(wantStart) {
		t.Errorf("Start = %v, want %v", tr.Start, wantStart)
	}
	if !tr.End.Equal(wantEnd) {
		t.Errorf("End = %v, want %v", tr.End, wantEnd)
	}
	if tr.PathPrefix != "/2019" {
		t.Errorf("PathPrefix = %q, want %q", tr.PathPrefix, "/2019")
	}

	noon := time.Date(2019, time.December, 31, 12, 0, 0, 0, time.UTC)
	if !noon.After(tr.End) {
		t.Error("noon of Dec 31 should fall outside the year range")
	}

	dec, err := ResolveTimeRange(2019, 12, 0)
	if err != nil {
		t.Fatalf("ResolveTimeRange failed: %v", err)
	}
	if noon.After(dec.End) {
		t.Error("noon of Dec 31 should fall inside the December range")
	}
}

func TestResolveTimeRangeNone(t *testing.T) {
	tr, err := ResolveTimeRange(0, 0, 0)
	if err != nil {
		t.Fatalf("ResolveTimeRange failed: %v", err)
	}
	if !tr.IsZero() {
		t.Errorf("expected zero range, got %+v", tr)
	}
	if tr.PathPrefix != "/" {
		t.Errorf("PathPrefix = %q, want %q", tr.PathPrefix, "/")
	}
}

func TestResolveTimeRangeZeroPadding(t *testing.T) {
	tr, err := ResolveTimeRange(987, 3, 5)
	if err != nil {
		t.Fatalf("ResolveTimeRange failed: %v", err)
	}
	if tr.PathPrefix != "/0987/03/05" {
		t.Errorf("PathPrefix = %q, want %q", tr.PathPrefix, "/0987/03/05")
	}
}

func TestResolveTimeRangeInvalid(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day int
	}{
		{"negative year", -1, 0, 0},
		{"day without month", 2019, 0, 5},
		{"month zero with year missing day", 0, 3, 0},
		{"month too large", 2019, 13, 0},
		{"month negative", 2019, -2, 0},
		{"day zero padded out of range", 2019, 4, 31},
		{"day negative", 2019, 4, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveTimeRange(tt.year, tt.month, tt.day)
			if !errors.Is(err, ErrInvalidDateComponents) {
				t.Errorf("ResolveTimeRange(%d, %d, %d) err = %v, want ErrInvalidDateComponents",
					tt.year, tt.month, tt.day, err)
			}
		})
	}
}
