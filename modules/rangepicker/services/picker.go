package services

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/rangepicker/modules/rangepicker/domain"
	"github.com/iota-uz/rangepicker/pkg/blockedrange"
	"github.com/iota-uz/rangepicker/pkg/calendar"
)

const (
	eventOpen       = "open"
	eventSelectDay  = "select_day"
	eventSelectHour = "select_hour"
	eventNavigate   = "navigate_month"
	eventSwitchEdge = "switch_edge"
	eventReset      = "reset"
	eventDismiss    = "dismiss"
)

// Picker is the range selection state machine for one dialog session.
// Every transition runs to completion synchronously; a Picker is not safe
// for concurrent use. Selection, navigation and keyboard input on a closed
// picker are ignored; Open first.
type Picker struct {
	opts     Options
	resolver *Resolver
	log      *logrus.Entry
	id       uuid.UUID

	initialStart time.Time
	initialEnd   time.Time
	state        domain.State
}

func New(opts Options) (*Picker, error) {
	opts.setDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	p := &Picker{
		opts:     opts,
		resolver: NewResolver(opts.Utils, opts.Clock, blockedrange.New(opts.BlockedRanges)),
		log:      opts.Logger.WithField("session_id", id.String()),
		id:       id,
	}
	if err := p.reseed(opts.InitialStart, opts.InitialEnd); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Picker) SessionID() uuid.UUID { return p.id }

func (p *Picker) Resolver() *Resolver { return p.resolver }

func (p *Picker) Options() Options { return p.opts }

// State returns a snapshot; mutating it does not affect the picker.
func (p *Picker) State() domain.State { return p.state }

func (p *Picker) reseed(start, end time.Time) error {
	now := p.opts.Clock.Now()
	if start.IsZero() {
		start = now
	}
	if end.IsZero() {
		end = now
		if end.Before(start) {
			end = start
		}
	}
	if err := domain.ValidateInstant("initial start", start); err != nil {
		return err
	}
	if err := domain.ValidateInstant("initial end", end); err != nil {
		return err
	}
	if end.Before(start) {
		return errors.Wrapf(domain.ErrInvertedRange, "initial end %s is before start %s",
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}

	p.initialStart, p.initialEnd = start, end
	p.state = domain.State{
		Start: domain.EdgeState{
			SelectedDate:      start,
			DisplayDate:       p.opts.Utils.FirstDayOfMonth(start),
			MinDate:           p.opts.Start.MinDate,
			MaxDate:           p.opts.Start.MaxDate,
			ShouldDisableDate: p.opts.Start.ShouldDisableDate,
		},
		End: domain.EdgeState{
			SelectedDate:      end,
			DisplayDate:       p.opts.Utils.FirstDayOfMonth(end),
			MinDate:           p.opts.End.MinDate,
			MaxDate:           p.opts.End.MaxDate,
			ShouldDisableDate: p.opts.End.ShouldDisableDate,
		},
		Edit: domain.EdgeStart,
	}
	return nil
}

func (p *Picker) apply(event string, next domain.State) {
	p.state = next
	p.opts.Recorder.Transition(event, ResultApplied)
}

var ignoredMessages = map[string]string{
	eventSelectDay:  "rangepicker.day.rejected",
	eventSelectHour: "rangepicker.hour.rejected",
}

func (p *Picker) ignore(event string, fields logrus.Fields) {
	p.opts.Recorder.Transition(event, ResultIgnored)
	msg, ok := ignoredMessages[event]
	if !ok {
		msg = "rangepicker." + event + ".ignored"
	}
	p.log.WithFields(fields).Debug(msg)
}

func (p *Picker) publish(event any) {
	if p.opts.Publisher != nil {
		p.opts.Publisher.Publish(event)
	}
}

func (p *Picker) reject(event string, err error) error {
	p.opts.Recorder.Transition(event, ResultRejected)
	return err
}

// Open shows the dialog editing edge in the day or hour view.
func (p *Picker) Open(edge domain.Edge, displayTime bool) error {
	if !edge.Valid() {
		return p.reject(eventOpen, errors.Wrapf(domain.ErrInvalidEdge, "got %q", edge))
	}
	wasOpen := p.state.Open
	next := p.state
	next.Edit = edge
	next.DisplayTime = displayTime
	next.Open = true
	p.apply(eventOpen, next)

	if !wasOpen && p.opts.OnOpen != nil {
		p.opts.OnOpen()
	}
	return nil
}

// SelectDay handles a day click on the active edge. Disabled days and a
// closed picker are ignored; the error is reserved for invalid input.
func (p *Picker) SelectDay(day time.Time) error {
	if err := domain.ValidateInstant("day", day); err != nil {
		return p.reject(eventSelectDay, err)
	}
	if p.ignoreClosed(eventSelectDay) {
		return nil
	}

	s := p.state
	edge := s.Edit
	es := s.Edge(edge)

	adjusted := day
	if minDate := p.resolver.EffectiveMinDate(es); calendar.IsBeforeDateTime(adjusted, minDate) {
		adjusted = minDate
	} else if maxDate := p.resolver.EffectiveMaxDate(es); calendar.IsAfterDateTime(adjusted, maxDate) {
		adjusted = maxDate
	}

	if p.resolver.IsDayDisabled(s, edge, adjusted) {
		p.ignore(eventSelectDay, logrus.Fields{"edge": edge, "day": calendar.FormatISO(adjusted)})
		return nil
	}

	adjusted, ok := p.resolver.FirstAvailableHour(s, edge, adjusted)
	if !ok {
		p.log.WithFields(logrus.Fields{
			"edge": edge,
			"day":  calendar.FormatISO(adjusted),
		}).Warn("rangepicker.day.fully_blocked")
	}
	if start := s.Start.SelectedDate; edge == domain.EdgeEnd && !start.IsZero() && calendar.IsBeforeDateTime(adjusted, start) {
		adjusted = start
	}

	es = p.withDisplayMonth(es, p.opts.Utils.FirstDayOfMonth(adjusted))
	es.SelectedDate = adjusted
	es.NoAvailableHour = !ok

	next := s.WithEdge(edge, es)
	if edge == domain.EdgeStart {
		next = p.cascade(next)
	}
	if p.opts.AutoAdvanceFields {
		next.DisplayTime = true
	}
	p.apply(eventSelectDay, next)
	return nil
}

// SelectHour sets the hour of the active edge's selection, keeping its date.
// A closed picker ignores it.
func (p *Picker) SelectHour(hour int) error {
	if err := domain.ValidateHour(hour); err != nil {
		return p.reject(eventSelectHour, err)
	}
	if p.ignoreClosed(eventSelectHour) {
		return nil
	}

	s := p.state
	edge := s.Edit
	candidate := calendar.WithHour(p.resolver.HourBase(s, edge), hour)
	if p.resolver.IsInstantDisabled(s, edge, candidate) {
		p.ignore(eventSelectHour, logrus.Fields{"edge": edge, "hour": hour})
		return nil
	}

	es := s.Edge(edge)
	es = p.withDisplayMonth(es, p.opts.Utils.FirstDayOfMonth(candidate))
	es.SelectedDate = candidate
	es.NoAvailableHour = false

	next := s.WithEdge(edge, es)
	if edge == domain.EdgeStart {
		next = p.cascade(next)
	}

	if !p.opts.AutoAdvanceFields {
		p.apply(eventSelectHour, next)
		return nil
	}

	next.DisplayTime = false
	if edge == domain.EdgeStart {
		next.Edit = domain.EdgeEnd
		p.apply(eventSelectHour, next)
		return nil
	}
	p.apply(eventSelectHour, next)
	if _, err := p.Commit(); err != nil {
		p.log.WithError(err).Debug("rangepicker.auto_commit.skipped")
	}
	return nil
}

// cascade clears the end selection when the start no longer precedes it or
// when a blocked range now sits between them.
func (p *Picker) cascade(s domain.State) domain.State {
	start, end := s.Start.SelectedDate, s.End.SelectedDate
	if end.IsZero() {
		return s
	}
	if !calendar.IsAfterDateTime(start, end) &&
		!calendar.IsEqualDateTime(start, end) &&
		!p.resolver.OverlapsNextRange(start, end) {
		return s
	}

	p.log.WithFields(logrus.Fields{
		"start":       start.Format(time.RFC3339),
		"cleared_end": end.Format(time.RFC3339),
	}).Info("rangepicker.end.cleared")
	p.publish(&domain.EndClearedEvent{SessionID: p.id, Start: start, ClearedEnd: end})

	s.End.SelectedDate = time.Time{}
	s.End.NoAvailableHour = false
	s.End.DisplayDate = s.Start.DisplayDate
	s.End.TransitionDirection = s.Start.TransitionDirection
	return s
}

func (p *Picker) withDisplayMonth(es domain.EdgeState, month time.Time) domain.EdgeState {
	if month.Equal(es.DisplayDate) {
		return es
	}
	if month.After(es.DisplayDate) {
		es.TransitionDirection = domain.DirectionLeft
	} else {
		es.TransitionDirection = domain.DirectionRight
	}
	es.DisplayDate = month
	return es
}

// NavigateMonth moves the active edge's displayed month by delta, clamped to
// the months of the effective bounds. Selections are untouched. A closed
// picker ignores it.
func (p *Picker) NavigateMonth(delta int) {
	if p.ignoreClosed(eventNavigate) {
		return
	}
	s := p.state
	edge := s.Edit
	es := s.Edge(edge)
	current := s.DisplayMonth()

	target := p.opts.Utils.AddMonths(current, delta)
	if minDate := p.resolver.EffectiveMinDate(es); p.opts.Utils.MonthDiff(target, minDate) < 0 {
		target = p.opts.Utils.FirstDayOfMonth(minDate)
	}
	if maxDate := p.resolver.EffectiveMaxDate(es); p.opts.Utils.MonthDiff(target, maxDate) > 0 {
		target = p.opts.Utils.FirstDayOfMonth(maxDate)
	}
	if p.opts.Utils.MonthDiff(target, current) == 0 {
		p.ignore(eventNavigate, logrus.Fields{"edge": edge, "delta": delta})
		return
	}

	es.DisplayDate = target
	// Clamping can move the view against delta's sign when the displayed
	// month lies outside the bounds.
	if p.opts.Utils.MonthDiff(target, current) > 0 {
		es.TransitionDirection = domain.DirectionLeft
	} else {
		es.TransitionDirection = domain.DirectionRight
	}
	p.apply(eventNavigate, s.WithEdge(edge, es))
}

func (p *Picker) ignoreClosed(event string) bool {
	if p.state.Open {
		return false
	}
	p.ignore(event, logrus.Fields{"reason": "closed"})
	return true
}

// CanNavigate reports whether the previous and next month controls are live.
func (p *Picker) CanNavigate() (prev, next bool) {
	es := p.state.Active()
	current := p.state.DisplayMonth()
	prev = p.opts.Utils.MonthDiff(current, p.resolver.EffectiveMinDate(es)) > 0
	next = p.opts.Utils.MonthDiff(current, p.resolver.EffectiveMaxDate(es)) < 0
	return prev, next
}

// SwitchEditEdge makes edge the active one; an empty edge toggles.
func (p *Picker) SwitchEditEdge(edge domain.Edge) error {
	if edge == "" {
		edge = p.state.Edit.Other()
	}
	if !edge.Valid() {
		return p.reject(eventSwitchEdge, errors.Wrapf(domain.ErrInvalidEdge, "got %q", edge))
	}
	next := p.state
	next.Edit = edge
	p.apply(eventSwitchEdge, next)
	return nil
}

// Commit hands the pair to the host and closes the dialog. Incomplete or
// disallowed pairs are refused and the dialog stays open.
func (p *Picker) Commit() (domain.Selection, error) {
	fail := func(reason string, err error) (domain.Selection, error) {
		p.opts.Recorder.Commit(ResultRejected)
		p.log.WithField("reason", reason).Info("rangepicker.commit.rejected")
		return domain.Selection{}, err
	}

	if !p.state.Open {
		return fail("not_open", domain.ErrNotOpen)
	}
	sel := p.state.Selection()
	if !sel.Complete() {
		return fail("incomplete", domain.ErrSelectionIncomplete)
	}
	if p.resolver.IsSelectionDisabled(p.state) {
		return fail("invalid", domain.ErrSelectionInvalid)
	}

	next := p.state
	next.Open = false
	next.DisplayTime = false
	p.state = next
	p.opts.Recorder.Commit(ResultApplied)

	p.log.WithFields(logrus.Fields{
		"start": sel.Start.Format(time.RFC3339),
		"end":   sel.End.Format(time.RFC3339),
	}).Info("rangepicker.committed")
	if p.opts.OnCommit != nil {
		p.opts.OnCommit(sel)
	}
	p.publish(&domain.CommittedEvent{SessionID: p.id, Selection: sel})
	return sel, nil
}

// Dismiss closes the dialog and discards in-progress edits. The host still
// receives the current pair when it is complete and spans distinct hours,
// otherwise an empty Selection.
func (p *Picker) Dismiss() domain.Selection {
	var out domain.Selection
	if p.state.Open {
		if sel := p.state.Selection(); sel.Complete() && !calendar.IsEqualDateTime(sel.Start, sel.End) {
			out = sel
		}
		if p.opts.OnDismiss != nil {
			p.opts.OnDismiss(out)
		}
		p.log.Info("rangepicker.dismissed")
		p.publish(&domain.DismissedEvent{SessionID: p.id, Selection: out})
	}

	// initial instants were validated when stored
	_ = p.reseed(p.initialStart, p.initialEnd)
	p.opts.Recorder.Transition(eventDismiss, ResultApplied)
	return out
}

// Reset replaces the session with a fresh state seeded from start and end.
// Zero instants default to now.
func (p *Picker) Reset(start, end time.Time) error {
	prevStart, prevEnd, prevState := p.initialStart, p.initialEnd, p.state
	if err := p.reseed(start, end); err != nil {
		p.initialStart, p.initialEnd, p.state = prevStart, prevEnd, prevState
		return p.reject(eventReset, err)
	}
	p.opts.Recorder.Transition(eventReset, ResultApplied)
	return nil
}

// ResetSnapshot is Reset with a new blocked-range snapshot.
func (p *Picker) ResetSnapshot(start, end time.Time, ranges []blockedrange.Range) error {
	prev := p.resolver
	p.resolver = NewResolver(p.opts.Utils, p.opts.Clock, blockedrange.New(ranges))
	if err := p.Reset(start, end); err != nil {
		p.resolver = prev
		return err
	}
	p.opts.BlockedRanges = ranges
	return nil
}

// IsDayDisabled reports whether day is selectable for the active edge.
func (p *Picker) IsDayDisabled(day time.Time) bool {
	return p.resolver.IsDayDisabled(p.state, p.state.Edit, day)
}

// IsHourDisabled reports whether hour of the active edge's date is selectable.
func (p *Picker) IsHourDisabled(hour int) bool {
	return p.resolver.IsHourDisabled(p.state, p.state.Edit, hour)
}

// IsEdgeSelectionDisabled gates the OK action.
func (p *Picker) IsEdgeSelectionDisabled() bool {
	return p.resolver.IsSelectionDisabled(p.state)
}

// IsDaySelected reports which edge, if any, is selected on day.
func (p *Picker) IsDaySelected(day time.Time) (domain.Edge, bool) {
	switch {
	case calendar.IsEqualDate(day, p.state.Start.SelectedDate):
		return domain.EdgeStart, true
	case calendar.IsEqualDate(day, p.state.End.SelectedDate):
		return domain.EdgeEnd, true
	}
	return "", false
}

// IsDayInRange is true for days between both selections, inclusive.
func (p *Picker) IsDayInRange(day time.Time) bool {
	start, end := p.state.Start.SelectedDate, p.state.End.SelectedDate
	if day.IsZero() || start.IsZero() || end.IsZero() {
		return false
	}
	return calendar.IsBetweenDates(day, start, end)
}

// DayHasBlockedTime marks days that are only partly blocked.
func (p *Picker) DayHasBlockedTime(day time.Time) bool {
	return p.resolver.Ranges().TouchesBoundary(day)
}

// WeekRows lays out the month the active edge displays.
func (p *Picker) WeekRows() []calendar.Week {
	return p.opts.Utils.WeekArray(p.state.DisplayMonth(), p.opts.FirstDayOfWeek)
}

// HourSlots are the 24 candidate instants of the hour view.
func (p *Picker) HourSlots() []time.Time {
	base := p.resolver.HourBase(p.state, p.state.Edit)
	out := make([]time.Time, hoursInDay)
	for h := range out {
		out[h] = calendar.WithHour(base, h)
	}
	return out
}
