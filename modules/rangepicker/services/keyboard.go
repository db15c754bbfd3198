package services

import (
	"time"

	"github.com/go-faster/errors"
)

// Unit is the calendar step a keyboard intent moves the selection by.
type Unit string

const (
	UnitDay   Unit = "day"
	UnitWeek  Unit = "week"
	UnitMonth Unit = "month"
	UnitYear  Unit = "year"
)

const eventKey = "key"

var ErrInvalidUnit = errors.New("unit must be day, week, month or year")

func ParseUnit(s string) (Unit, error) {
	switch u := Unit(s); u {
	case UnitDay, UnitWeek, UnitMonth, UnitYear:
		return u, nil
	}
	return "", errors.Wrapf(ErrInvalidUnit, "got %q", s)
}

// ApplyKeyboardDelta shifts the active edge's selection by n units and
// re-runs SelectDay on the result. A closed picker ignores it.
func (p *Picker) ApplyKeyboardDelta(unit Unit, n int) error {
	if _, err := ParseUnit(string(unit)); err != nil {
		return p.reject(eventKey, err)
	}
	if p.ignoreClosed(eventKey) {
		return nil
	}

	base := p.resolver.HourBase(p.state, p.state.Edit)
	var target time.Time
	switch unit {
	case UnitDay:
		target = p.opts.Utils.AddDays(base, n)
	case UnitWeek:
		target = p.opts.Utils.AddDays(base, 7*n)
	case UnitMonth:
		target = p.opts.Utils.AddMonths(base, n)
	case UnitYear:
		target = p.opts.Utils.AddYears(base, n)
	}
	return p.SelectDay(target)
}
