package inkcms

import (
	"fmt"
	"time"
)

// TimeRange is an inclusive publication-date interval plus the
// canonical, zero-padded URL path prefix for its granularity. A zero
// TimeRange means "no date restriction".
type TimeRange struct {
	Start      time.Time
	End        time.Time
	PathPrefix string
}

// IsZero reports whether the range carries no date restriction.
func (tr TimeRange) IsZero() bool {
	return tr.Start.IsZero() && tr.End.IsZero()
}

// endOfDay is the last representable instant of a day, the equivalent
// of 23:59:59.999999999.
func endOfDay(d time.Time) time.Time {
	return d.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// ResolveTimeRange computes the publication-date interval for an
// archive listing. Components are given most- to least-significant;
// zero means absent, and a component may only be present when all more
// significant ones are. All instants are UTC.
//
// The year-only upper bound is midnight of December 31, not end of
// day. This mirrors the long-standing listing behavior and means posts
// published during the last day of a year do not appear in that year's
// archive; month and day granularities use a proper end-of-day bound.
func ResolveTimeRange(year, month, day int) (TimeRange, error) {
	switch {
	case year == 0 && month == 0 && day == 0:
		return TimeRange{PathPrefix: "/"}, nil
	case year <= 0:
		return TimeRange{}, fmt.Errorf("%w: year %d", ErrInvalidDateComponents, year)
	case month == 0 && day != 0:
		return TimeRange{}, fmt.Errorf("%w: day without month", ErrInvalidDateComponents)
	case month != 0 && (month < 1 || month > 12):
		return TimeRange{}, fmt.Errorf("%w: month %d", ErrInvalidDateComponents, month)
	}

	switch {
	case day != 0:
		if day < 1 || day > daysInMonth(year, time.Month(month)) {
			return TimeRange{}, fmt.Errorf("%w: day %d of %04d-%02d", ErrInvalidDateComponents, day, year, month)
		}
		start := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		return TimeRange{
			Start:      start,
			End:        endOfDay(start),
			PathPrefix: fmt.Sprintf("/%04d/%02d/%02d", year, month, day),
		}, nil
	case month != 0:
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		last := time.Date(year, time.Month(month), daysInMonth(year, time.Month(month)), 0, 0, 0, 0, time.UTC)
		return TimeRange{
			Start:      start,
			End:        endOfDay(last),
			PathPrefix: fmt.Sprintf("/%04d/%02d", year, month),
		}, nil
	default:
		return TimeRange{
			Start:      time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:        time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
			PathPrefix: fmt.Sprintf("/%04d", year),
		}, nil
	}
}

// daysInMonth returns the number of calendar days in the given month,
// accounting for leap years.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
