package services

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/iota-uz/rangepicker/modules/rangepicker/domain"
	"github.com/iota-uz/rangepicker/pkg/blockedrange"
	"github.com/iota-uz/rangepicker/pkg/calendar"
)

const (
	defaultBoundYears = 100
	hoursInDay        = 24
)

// Resolver decides, for one edge, which days and hours may be selected.
// It is stateless apart from the session's blocked-range snapshot.
type Resolver struct {
	utils  calendar.Utils
	clock  clockwork.Clock
	ranges *blockedrange.Index
}

func NewResolver(utils calendar.Utils, clock clockwork.Clock, ranges *blockedrange.Index) *Resolver {
	if utils == nil {
		utils = calendar.Gregorian{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Resolver{utils: utils, clock: clock, ranges: ranges}
}

func (r *Resolver) Ranges() *blockedrange.Index { return r.ranges }

// nowIn is the clock's instant as a wall time in loc.
func (r *Resolver) nowIn(loc *time.Location) time.Time {
	return r.clock.Now().In(loc)
}

func (r *Resolver) EffectiveMinDate(es domain.EdgeState) time.Time {
	if !es.MinDate.IsZero() {
		return es.MinDate
	}
	return r.utils.AddYears(r.clock.Now(), -defaultBoundYears)
}

func (r *Resolver) EffectiveMaxDate(es domain.EdgeState) time.Time {
	if !es.MaxDate.IsZero() {
		return es.MaxDate
	}
	return r.utils.AddYears(r.clock.Now(), defaultBoundYears)
}

// nearestAfterStart is the first blocked range beginning after the start
// selection; the end edge may not reach past its start.
func (r *Resolver) nearestAfterStart(s domain.State) (blockedrange.Range, bool) {
	return r.ranges.NearestStartingAfter(s.Start.SelectedDate)
}

// IsDayDisabled applies the day rules in order and stops at the first hit:
// global bounds, end-before-start, blocked ranges, then the host predicate.
// Zero days are grid placeholders and never disabled.
func (r *Resolver) IsDayDisabled(s domain.State, edge domain.Edge, day time.Time) bool {
	if day.IsZero() {
		return false
	}
	es := s.Edge(edge)
	if !calendar.IsBetweenDates(day, r.EffectiveMinDate(es), r.EffectiveMaxDate(es)) {
		return true
	}

	start := s.Start.SelectedDate
	if edge == domain.EdgeEnd && !start.IsZero() && calendar.IsBeforeDate(day, start) {
		return true
	}

	if edge == domain.EdgeStart {
		if calendar.IsBeforeDate(day, r.nowIn(day.Location())) || r.ranges.ContainsDay(day) {
			return true
		}
	} else if !start.IsZero() {
		if next, ok := r.nearestAfterStart(s); ok && calendar.IsAfterDate(day, next.Start) {
			return true
		}
	}

	if es.ShouldDisableDate != nil {
		return es.ShouldDisableDate(day, s.Edge(edge.Other()).SelectedDate)
	}
	return false
}

// IsInstantDisabled is the hour-granularity counterpart of IsDayDisabled.
// A start may not lie in the past or inside a blocked range; an end must be
// in a later hour slot than the start and may not pass the next blocked range.
func (r *Resolver) IsInstantDisabled(s domain.State, edge domain.Edge, t time.Time) bool {
	es := s.Edge(edge)
	if calendar.IsBeforeDateTime(t, r.EffectiveMinDate(es)) || calendar.IsAfterDateTime(t, r.EffectiveMaxDate(es)) {
		return true
	}

	start := s.Start.SelectedDate
	if edge == domain.EdgeStart {
		if calendar.IsBeforeDateTime(t, r.clock.Now()) || r.ranges.Contains(t, true) {
			return true
		}
	} else if !start.IsZero() {
		if calendar.IsEqualDateTime(start, t) || calendar.IsBeforeDateTime(t, start) {
			return true
		}
		if next, ok := r.nearestAfterStart(s); ok && calendar.IsAfterDateTime(t, next.Start) {
			return true
		}
	}

	if es.ShouldDisableDate != nil {
		return es.ShouldDisableDate(calendar.DateOnly(t), s.Edge(edge.Other()).SelectedDate)
	}
	return false
}

// HourBase is the date whose hour slots the hour view shows for edge: its own
// selection, else the start selection, else today.
func (r *Resolver) HourBase(s domain.State, edge domain.Edge) time.Time {
	if d := s.Edge(edge).SelectedDate; !d.IsZero() {
		return d
	}
	if d := s.Start.SelectedDate; !d.IsZero() {
		return d
	}
	return r.clock.Now()
}

func (r *Resolver) IsHourDisabled(s domain.State, edge domain.Edge, hour int) bool {
	if hour < 0 || hour >= hoursInDay {
		return true
	}
	return r.IsInstantDisabled(s, edge, calendar.WithHour(r.HourBase(s, edge), hour))
}

// FirstAvailableHour scans day's hours from midnight. On a fully blocked day
// it returns midnight and ok=false.
func (r *Resolver) FirstAvailableHour(s domain.State, edge domain.Edge, day time.Time) (time.Time, bool) {
	for hour := 0; hour < hoursInDay; hour++ {
		candidate := calendar.WithHour(day, hour)
		if !r.IsInstantDisabled(s, edge, candidate) {
			return candidate, true
		}
	}
	return calendar.WithHour(day, 0), false
}

// IsSelectionDisabled gates the OK action: both edges set, distinct hour
// slots, start not in the past, end not before start, and neither endpoint
// strictly inside a blocked range. Touching a range boundary is allowed.
func (r *Resolver) IsSelectionDisabled(s domain.State) bool {
	start, end := s.Start.SelectedDate, s.End.SelectedDate
	if start.IsZero() || end.IsZero() {
		return true
	}
	return calendar.IsEqualDateTime(start, end) ||
		calendar.IsBeforeDateTime(start, r.clock.Now()) ||
		calendar.IsBeforeDateTime(end, start) ||
		r.ranges.Contains(end, false) ||
		r.ranges.Contains(start, false)
}

// OverlapsNextRange reports whether end reaches past the first blocked range
// that begins after start.
func (r *Resolver) OverlapsNextRange(start, end time.Time) bool {
	if start.IsZero() || end.IsZero() {
		return false
	}
	next, ok := r.ranges.NearestStartingAfter(start)
	return ok && calendar.IsAfterDateTime(end, next.Start)
}
