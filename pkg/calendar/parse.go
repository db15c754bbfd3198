package calendar

import (
	"strings"
	"time"

	"github.com/go-faster/errors"
)

// Layouts accepted by ParseInstant after RFC 3339.
const (
	MinuteLayout = "2006-01-02T15:04"
	HourLayout   = "2006-01-02T15"
	MonthLayout  = "2006-01"
)

var ErrUnparsable = errors.New("unparsable instant")

// ParseInstant accepts RFC 3339, minute or hour precision local times, and
// plain dates. Values without an offset are read in loc.
func ParseInstant(v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, errors.Wrap(ErrUnparsable, "empty value")
	}
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range []string{MinuteLayout, HourLayout, time.DateOnly} {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Wrapf(ErrUnparsable, "%q", v)
}

// ParseMonth reads YYYY-MM as the first day of that month in loc.
func ParseMonth(v string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(MonthLayout, strings.TrimSpace(v), loc)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrUnparsable, "month %q", v)
	}
	return t, nil
}
