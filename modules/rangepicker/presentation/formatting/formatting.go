// Package formatting turns picker instants into display strings for the host
// UI. Every method tolerates a formatter that cannot render a combination by
// returning an empty string.
package formatting

import (
	"strings"
	"time"

	"github.com/iota-uz/go-i18n/v2/i18n"

	"github.com/iota-uz/rangepicker/modules/rangepicker/domain"
	"github.com/iota-uz/rangepicker/pkg/calendar"
)

// Labels are host overrides for the field and status captions. Empty fields
// fall back to the localized defaults.
type Labels struct {
	Start     string
	End       string
	StartDate string
	StartTime string
	EndDate   string
	EndTime   string
}

type Formatter struct {
	locale    string
	dtf       calendar.DateTimeFormatter
	localizer *i18n.Localizer
	labels    Labels
}

// New builds a Formatter. An empty locale selects ISO dates for FormatDate
// and en-US everywhere else.
func New(locale string, dtf calendar.DateTimeFormatter, localizer *i18n.Localizer, labels Labels) *Formatter {
	if dtf == nil {
		dtf = calendar.NewBuiltinFormatter(nil)
	}
	return &Formatter{locale: locale, dtf: dtf, localizer: localizer, labels: labels}
}

func (f *Formatter) displayLocale() string {
	if f.locale == "" {
		return calendar.DefaultLocale
	}
	return f.locale
}

func (f *Formatter) format(opts calendar.FormatOptions, t time.Time) string {
	label, ok := f.dtf.Format(f.displayLocale(), opts, t)
	if !ok {
		return ""
	}
	return label
}

// FormatDate renders the value shown in a closed picker's text field.
func (f *Formatter) FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if f.locale == "" {
		return calendar.FormatISO(t)
	}
	return f.format(calendar.FormatOptions{
		Year:  calendar.Numeric,
		Month: calendar.Numeric,
		Day:   calendar.Numeric,
	}, t)
}

// FormatDateForDisplay renders a 2-digit date, or label when t is unset.
func (f *Formatter) FormatDateForDisplay(t time.Time, label string) string {
	if t.IsZero() {
		return label
	}
	return f.format(calendar.FormatOptions{
		Year:  calendar.TwoDig,
		Month: calendar.TwoDig,
		Day:   calendar.TwoDig,
	}, t)
}

// FormatTimeForDisplay renders a 12-hour time, or label when t is unset.
func (f *Formatter) FormatTimeForDisplay(t time.Time, label string) string {
	if t.IsZero() {
		return label
	}
	return f.format(calendar.FormatOptions{
		Hour:   calendar.TwoDig,
		Minute: calendar.TwoDig,
		Hour12: true,
	}, t)
}

// FormatRangeSummary renders "Mon, Jun 10 9 AM - Tue, Jun 11 5 PM". Unset
// edges render as their date caption.
func (f *Formatter) FormatRangeSummary(sel domain.Selection) string {
	return f.edgeSummary(sel.Start, domain.EdgeStart) + " - " + f.edgeSummary(sel.End, domain.EdgeEnd)
}

func (f *Formatter) edgeSummary(t time.Time, edge domain.Edge) string {
	if t.IsZero() {
		return f.DateCaption(edge)
	}
	day := f.format(calendar.FormatOptions{
		Weekday: calendar.Short,
		Month:   calendar.Short,
		Day:     calendar.TwoDig,
	}, t)
	hour := f.format(calendar.FormatOptions{Hour: calendar.Numeric, Hour12: true}, t)
	return strings.TrimSpace(day + " " + hour)
}

// DateCaption and TimeCaption are the placeholders of an edge's unset fields.
func (f *Formatter) DateCaption(edge domain.Edge) string {
	if edge == domain.EdgeEnd && f.labels.EndDate != "" {
		return f.labels.EndDate
	}
	if edge == domain.EdgeStart && f.labels.StartDate != "" {
		return f.labels.StartDate
	}
	return f.Message("RangePicker.Status.Date", "Date")
}

func (f *Formatter) TimeCaption(edge domain.Edge) string {
	if edge == domain.EdgeEnd && f.labels.EndTime != "" {
		return f.labels.EndTime
	}
	if edge == domain.EdgeStart && f.labels.StartTime != "" {
		return f.labels.StartTime
	}
	return f.Message("RangePicker.Status.Time", "Time")
}

// StatusLabel is the dialog header: the edge caption followed by the view,
// e.g. "pick up Date" or, with host labels, "Check-in Time".
func (f *Formatter) StatusLabel(edit domain.Edge, displayTime bool) string {
	status := f.Message("RangePicker.Status.Date", "Date")
	if displayTime {
		status = f.Message("RangePicker.Status.Time", "Time")
	}

	label := f.labels.Start
	if edit == domain.EdgeEnd {
		label = f.labels.End
	}
	if label == "" {
		if edit == domain.EdgeEnd {
			label = f.Message("RangePicker.Status.DropOff", "drop off")
		} else {
			label = f.Message("RangePicker.Status.PickUp", "pick up")
		}
	}
	return label + " " + status
}

// Message localizes id, falling back to def when the bundle lacks it.
func (f *Formatter) Message(id, def string) string {
	if f.localizer == nil {
		return def
	}
	msg, err := f.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:      id,
		DefaultMessage: &i18n.Message{ID: id, Other: def},
	})
	if err != nil || msg == "" {
		return def
	}
	return msg
}
