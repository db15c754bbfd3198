package calendar

import "time"

func dayKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// IsEqualDate reports whether a and b fall on the same calendar day.
// A zero value never equals anything.
func IsEqualDate(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	return dayKey(a) == dayKey(b)
}

func IsBeforeDate(a, b time.Time) bool {
	return dayKey(a) < dayKey(b)
}

func IsAfterDate(a, b time.Time) bool {
	return dayKey(a) > dayKey(b)
}

// IsBetweenDates is inclusive on both ends at day granularity.
func IsBetweenDates(t, start, end time.Time) bool {
	return !IsBeforeDate(t, start) && !IsAfterDate(t, end)
}

// IsEqualDateTime compares down to the hour; minutes and below are ignored.
func IsEqualDateTime(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	return dayKey(a) == dayKey(b) && a.Hour() == b.Hour()
}

func IsBeforeDateTime(a, b time.Time) bool {
	return a.Before(b)
}

func IsAfterDateTime(a, b time.Time) bool {
	return a.After(b)
}
