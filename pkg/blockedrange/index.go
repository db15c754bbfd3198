// Package blockedrange answers membership questions over a read-only set of
// externally supplied reservations.
package blockedrange

import (
	"fmt"
	"sort"
	"time"

	"github.com/iota-uz/rangepicker/pkg/calendar"
)

// Range is one blocked interval. Start <= End is expected but not enforced;
// the set comes from the host as-is.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (r Range) String() string {
	return fmt.Sprintf("%s .. %s", r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339))
}

// Index wraps one session's snapshot. The input slice is never modified; a
// copy sorted by Start backs the nearest-range lookup.
type Index struct {
	ranges []Range
	sorted []Range
}

func New(ranges []Range) *Index {
	own := make([]Range, len(ranges))
	copy(own, ranges)

	sorted := make([]Range, len(ranges))
	copy(sorted, ranges)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})
	return &Index{ranges: own, sorted: sorted}
}

func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.ranges)
}

// Ranges returns a copy of the snapshot in host order.
func (x *Index) Ranges() []Range {
	if x == nil {
		return nil
	}
	out := make([]Range, len(x.ranges))
	copy(out, x.ranges)
	return out
}

// Contains reports whether t lies in any range, [Start, End] when inclusive
// and (Start, End) otherwise.
func (x *Index) Contains(t time.Time, inclusive bool) bool {
	if x == nil {
		return false
	}
	for _, r := range x.ranges {
		if inclusive {
			if !t.Before(r.Start) && !t.After(r.End) {
				return true
			}
			continue
		}
		if t.After(r.Start) && t.Before(r.End) {
			return true
		}
	}
	return false
}

// ContainsDay reports whether the whole calendar day of day
// (00:00:00 through 23:59:59.999) is covered by a single range.
func (x *Index) ContainsDay(day time.Time) bool {
	if x == nil {
		return false
	}
	startOfDay := calendar.DateOnly(day)
	endOfDay := calendar.EndOfDay(day)
	for _, r := range x.ranges {
		if !startOfDay.Before(r.Start) && !endOfDay.After(r.End) {
			return true
		}
	}
	return false
}

// NearestStartingAfter returns the earliest range whose Start is strictly
// after t.
func (x *Index) NearestStartingAfter(t time.Time) (Range, bool) {
	if x == nil || t.IsZero() {
		return Range{}, false
	}
	i := sort.Search(len(x.sorted), func(i int) bool {
		return x.sorted[i].Start.After(t)
	})
	if i == len(x.sorted) {
		return Range{}, false
	}
	return x.sorted[i], true
}

// TouchesBoundary reports whether a range begins or ends on day's calendar
// day, i.e. the day is only partly blocked and has adjoining reservations.
func (x *Index) TouchesBoundary(day time.Time) bool {
	if x == nil || day.IsZero() {
		return false
	}
	for _, r := range x.ranges {
		if calendar.IsEqualDate(day, r.Start) || calendar.IsEqualDate(day, r.End) {
			return true
		}
	}
	return false
}

// Package-level helpers for callers holding a plain slice.

func IsDateTimeInRange(ranges []Range, t time.Time, inclusive bool) bool {
	return New(ranges).Contains(t, inclusive)
}

func IsDateInRange(ranges []Range, day time.Time) bool {
	return New(ranges).ContainsDay(day)
}

func NearestRangeStartingAfter(ranges []Range, t time.Time) (Range, bool) {
	return New(ranges).NearestStartingAfter(t)
}

func TouchesBoundary(ranges []Range, day time.Time) bool {
	return New(ranges).TouchesBoundary(day)
}
