// Package calendar holds the date arithmetic and comparison helpers used by the
// range picker. Every function returns a new time.Time and never relies on
// the caller's value being modified.
package calendar

import "time"

// Utils is the calendar-math capability the picker depends on.
// Gregorian is the default; alternate calendar systems implement the same set.
type Utils interface {
	GetYear(t time.Time) int
	SetYear(t time.Time, year int) time.Time
	AddDays(t time.Time, days int) time.Time
	AddMonths(t time.Time, months int) time.Time
	AddYears(t time.Time, years int) time.Time
	FirstDayOfMonth(t time.Time) time.Time
	WeekArray(month time.Time, firstDayOfWeek time.Weekday) []Week
	MonthDiff(a, b time.Time) int
}

// Gregorian implements Utils with time.Time arithmetic.
// Month and year overflow rolls over (Jan 31 + 1 month lands in March), it is never clamped.
type Gregorian struct{}

var _ Utils = Gregorian{}

func (Gregorian) GetYear(t time.Time) int { return t.Year() }

func (Gregorian) SetYear(t time.Time, year int) time.Time {
	return t.AddDate(year-t.Year(), 0, 0)
}

func (Gregorian) AddDays(t time.Time, days int) time.Time { return AddDays(t, days) }

func (Gregorian) AddMonths(t time.Time, months int) time.Time { return AddMonths(t, months) }

func (Gregorian) AddYears(t time.Time, years int) time.Time { return AddYears(t, years) }

func (Gregorian) FirstDayOfMonth(t time.Time) time.Time { return FirstDayOfMonth(t) }

func (Gregorian) WeekArray(month time.Time, firstDayOfWeek time.Weekday) []Week {
	return WeekArray(month, firstDayOfWeek)
}

func (Gregorian) MonthDiff(a, b time.Time) int { return MonthDiff(a, b) }

func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

func AddMonths(t time.Time, months int) time.Time {
	return t.AddDate(0, months, 0)
}

func AddYears(t time.Time, years int) time.Time {
	return t.AddDate(years, 0, 0)
}

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last millisecond of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// WithHour keeps t's calendar day and sets the clock to hour:00:00.000.
func WithHour(t time.Time, hour int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, hour, 0, 0, 0, t.Location())
}

func FirstDayOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func DaysInMonth(t time.Time) int {
	return FirstDayOfMonth(t).AddDate(0, 1, -1).Day()
}

// MonthDiff returns the number of whole calendar months from b to a.
func MonthDiff(a, b time.Time) int {
	m := (a.Year() - b.Year()) * 12
	m += int(a.Month())
	m -= int(b.Month())
	return m
}

// YearDiff truncates MonthDiff toward zero.
func YearDiff(a, b time.Time) int {
	return MonthDiff(a, b) / 12
}
