package domain

import (
	"time"
)

// Edge names one endpoint of the range.
type Edge string

const (
	EdgeStart Edge = "start"
	EdgeEnd   Edge = "end"
)

func (e Edge) Valid() bool {
	return e == EdgeStart || e == EdgeEnd
}

func (e Edge) Other() Edge {
	if e == EdgeStart {
		return EdgeEnd
	}
	return EdgeStart
}

// Direction is a presentation hint for month slide animations.
type Direction string

const (
	DirectionNone  Direction = ""
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// DisableFunc is the host predicate consulted after the built-in day rules.
// other is the opposite edge's selection, zero when unset.
type DisableFunc func(day, other time.Time) bool

// EdgeState is one edge of the range. A zero SelectedDate means unset.
type EdgeState struct {
	SelectedDate        time.Time   `json:"selected_date"`
	DisplayDate         time.Time   `json:"display_date"`
	MinDate             time.Time   `json:"min_date"`
	MaxDate             time.Time   `json:"max_date"`
	ShouldDisableDate   DisableFunc `json:"-"`
	TransitionDirection Direction   `json:"transition_direction,omitempty"`
	// NoAvailableHour marks a selection that fell back to hour 0 on a fully blocked day.
	NoAvailableHour bool `json:"no_available_hour,omitempty"`
}

func (e EdgeState) HasSelection() bool {
	return !e.SelectedDate.IsZero()
}

// State is the aggregate owned by one open picker. It is a value; copies do
// not share mutable data.
type State struct {
	Start       EdgeState `json:"start"`
	End         EdgeState `json:"end"`
	Edit        Edge      `json:"edit"`
	DisplayTime bool      `json:"display_time"`
	Open        bool      `json:"open"`
}

// Edge returns the state of e.
func (s State) Edge(e Edge) EdgeState {
	if e == EdgeEnd {
		return s.End
	}
	return s.Start
}

// Active returns the edge currently being edited.
func (s State) Active() EdgeState {
	return s.Edge(s.Edit)
}

// WithEdge returns a copy of s with e replaced.
func (s State) WithEdge(e Edge, es EdgeState) State {
	if e == EdgeEnd {
		s.End = es
	} else {
		s.Start = es
	}
	return s
}

// DisplayMonth is the month the active edge renders. An edge without its own
// display month falls back to the start edge's.
func (s State) DisplayMonth() time.Time {
	if d := s.Active().DisplayDate; !d.IsZero() {
		return d
	}
	return s.Start.DisplayDate
}

// Selection is the pair handed to the host on commit or dismiss.
// Zero fields mean "no value".
type Selection struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (s Selection) Complete() bool {
	return !s.Start.IsZero() && !s.End.IsZero()
}

func (s State) Selection() Selection {
	return Selection{Start: s.Start.SelectedDate, End: s.End.SelectedDate}
}
