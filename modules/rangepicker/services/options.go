package services

import (
	"io"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/rangepicker/modules/rangepicker/domain"
	"github.com/iota-uz/rangepicker/pkg/blockedrange"
	"github.com/iota-uz/rangepicker/pkg/calendar"
	"github.com/iota-uz/rangepicker/pkg/eventbus"
)

var validate = validator.New()

// EdgeOptions are the host overrides for one edge.
type EdgeOptions struct {
	MinDate           time.Time
	MaxDate           time.Time
	ShouldDisableDate domain.DisableFunc
}

// Options is the host configuration for one picker session.
// The zero FirstDayOfWeek is Sunday; DefaultOptions starts weeks on Monday.
type Options struct {
	FirstDayOfWeek    time.Weekday `validate:"min=0,max=6"`
	AutoAdvanceFields bool

	InitialStart time.Time
	InitialEnd   time.Time

	Start EdgeOptions
	End   EdgeOptions

	BlockedRanges []blockedrange.Range

	Locale    string
	Formatter calendar.DateTimeFormatter
	Utils     calendar.Utils
	Clock     clockwork.Clock

	Logger   *logrus.Entry
	Recorder Recorder
	// Publisher receives the domain events; nil disables publishing.
	Publisher eventbus.EventBus

	OnOpen    func()
	OnCommit  func(domain.Selection)
	OnDismiss func(domain.Selection)
}

func DefaultOptions() Options {
	o := Options{FirstDayOfWeek: time.Monday}
	o.setDefaults()
	return o
}

func (o *Options) setDefaults() {
	if o.Utils == nil {
		o.Utils = calendar.Gregorian{}
	}
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
	if o.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.Logger = logrus.NewEntry(l)
	}
	if o.Formatter == nil {
		o.Formatter = calendar.NewBuiltinFormatter(o.Logger)
	}
	if o.Recorder == nil {
		o.Recorder = nopRecorder{}
	}
}

func (o *Options) validate() error {
	if err := validate.Struct(o); err != nil {
		return errors.Wrap(err, "invalid picker options")
	}
	for _, eo := range []struct {
		name string
		opts EdgeOptions
	}{{"start", o.Start}, {"end", o.End}} {
		if !eo.opts.MinDate.IsZero() && !eo.opts.MaxDate.IsZero() && eo.opts.MaxDate.Before(eo.opts.MinDate) {
			return errors.Wrapf(domain.ErrInvertedRange, "%s edge max_date is before min_date", eo.name)
		}
	}
	return nil
}

// Recorder receives transition outcomes; pkg/metrics provides the prometheus one.
type Recorder interface {
	Transition(event, result string)
	Commit(result string)
}

type nopRecorder struct{}

func (nopRecorder) Transition(string, string) {}
func (nopRecorder) Commit(string)             {}

const (
	ResultApplied  = "applied"
	ResultIgnored  = "ignored"
	ResultRejected = "rejected"
)
