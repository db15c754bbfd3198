package calendar

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const DefaultLocale = "en-US"

// Option values accepted by FormatOptions fields.
const (
	Narrow  = "narrow"
	Short   = "short"
	Long    = "long"
	Numeric = "numeric"
	TwoDig  = "2-digit"
)

// FormatOptions selects which components of an instant are rendered.
// Empty fields are omitted.
type FormatOptions struct {
	Weekday string
	Year    string
	Month   string
	Day     string
	Hour    string
	Minute  string
	Hour12  bool
}

// DateTimeFormatter is the locale formatting strategy injected by the host.
// ok is false when the formatter cannot render the requested combination;
// callers render an empty label in that case.
type DateTimeFormatter interface {
	Format(locale string, opts FormatOptions, t time.Time) (label string, ok bool)
}

var (
	dayAbbreviation = [7]string{"S", "M", "T", "W", "T", "F", "S"}
	dayList         = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	monthList       = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	monthLongList   = [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
)

// BuiltinFormatter renders en-US labels from fixed tables. Other locales are
// formatted with the same tables after a one-time warning.
type BuiltinFormatter struct {
	Logger *logrus.Entry

	warned sync.Map
}

var _ DateTimeFormatter = (*BuiltinFormatter)(nil)

func NewBuiltinFormatter(logger *logrus.Entry) *BuiltinFormatter {
	return &BuiltinFormatter{Logger: logger}
}

func (f *BuiltinFormatter) logger() *logrus.Entry {
	if f.Logger == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return f.Logger
}

func (f *BuiltinFormatter) Format(locale string, opts FormatOptions, t time.Time) (string, bool) {
	if locale != DefaultLocale {
		if _, seen := f.warned.LoadOrStore(locale, struct{}{}); !seen {
			f.logger().WithField("locale", locale).
				Warn("calendar.formatter.unsupported_locale: supply a DateTimeFormatter for this locale")
		}
	}

	switch {
	case opts.Month == Short && opts.Weekday == Short && opts.Day == TwoDig:
		return fmt.Sprintf("%s, %s %d", dayList[t.Weekday()], monthList[t.Month()-1], t.Day()), true
	case opts.Year == Numeric && opts.Month == Numeric && opts.Day == Numeric:
		return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year()), true
	case opts.Year == TwoDig && opts.Month == TwoDig && opts.Day == TwoDig:
		return fmt.Sprintf("%02d/%02d/%02d", int(t.Month()), t.Day(), t.Year()%100), true
	case opts.Year == Numeric && opts.Month == Long:
		return fmt.Sprintf("%s %d", monthLongList[t.Month()-1], t.Year()), true
	case opts.Weekday == Narrow:
		return dayAbbreviation[t.Weekday()], true
	case opts.Year == Numeric:
		return strconv.Itoa(t.Year()), true
	case opts.Day == Numeric:
		return strconv.Itoa(t.Day()), true
	case opts.Hour != "" && opts.Hour12:
		return formatHour12(opts, t), true
	case opts.Hour != "":
		if opts.Minute != "" {
			return t.Format("15:04"), true
		}
		return t.Format("15"), true
	}

	f.logger().WithField("options", fmt.Sprintf("%+v", opts)).
		Warn("calendar.formatter.wrong_usage: unsupported option combination")
	return "", false
}

func formatHour12(opts FormatOptions, t time.Time) string {
	h := t.Hour() % 12
	if h == 0 {
		h = 12
	}
	suffix := "AM"
	if t.Hour() >= 12 {
		suffix = "PM"
	}
	hour := strconv.Itoa(h)
	if opts.Hour == TwoDig {
		hour = fmt.Sprintf("%02d", h)
	}
	if opts.Minute != "" {
		return fmt.Sprintf("%s:%02d %s", hour, t.Minute(), suffix)
	}
	return hour + " " + suffix
}

// weekReference is a Sunday; offsets from it give each weekday.
var weekReference = time.Date(2023, time.January, 1, 12, 0, 0, 0, time.UTC)

// LocalizedWeekdays returns the narrow weekday header for a week grid that
// starts on firstDayOfWeek.
func LocalizedWeekdays(f DateTimeFormatter, locale string, firstDayOfWeek time.Weekday) [7]string {
	var out [7]string
	for i := range out {
		day := weekReference.AddDate(0, 0, (i+int(firstDayOfWeek))%7)
		out[i], _ = f.Format(locale, FormatOptions{Weekday: Narrow}, day)
	}
	return out
}

// FormatISO renders the calendar day as YYYY-MM-DD.
func FormatISO(t time.Time) string {
	return t.Format(time.DateOnly)
}
