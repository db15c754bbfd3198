package domain

import (
	"time"

	"github.com/go-faster/errors"
)

var (
	ErrInvalidInstant      = errors.New("invalid instant")
	ErrInvalidHour         = errors.New("hour must be within 0..23")
	ErrInvalidEdge         = errors.New("edge must be start or end")
	ErrInvertedRange       = errors.New("end is before start")
	ErrSelectionIncomplete = errors.New("both start and end must be selected")
	ErrSelectionInvalid    = errors.New("selection is not allowed")
	ErrNotOpen             = errors.New("picker is not open")
)

// ValidateInstant fails fast on values that would make later comparisons
// meaningless.
func ValidateInstant(field string, t time.Time) error {
	if t.IsZero() {
		return errors.Wrapf(ErrInvalidInstant, "%s is unset", field)
	}
	if y := t.Year(); y < 1 || y > 9999 {
		return errors.Wrapf(ErrInvalidInstant, "%s year %d is out of range", field, y)
	}
	return nil
}

func ValidateHour(hour int) error {
	if hour < 0 || hour > 23 {
		return errors.Wrapf(ErrInvalidHour, "got %d", hour)
	}
	return nil
}
