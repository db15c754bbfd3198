package calendar

import "time"

// Week is one calendar row. Cells outside the month are zero time.Time.
type Week [7]time.Time

// Days returns the non-placeholder cells in order.
func (w Week) Days() []time.Time {
	out := make([]time.Time, 0, len(w))
	for _, d := range w {
		if !d.IsZero() {
			out = append(out, d)
		}
	}
	return out
}

// WeekArray lays the days of month's calendar month out in rows that start on
// firstDayOfWeek. Placeholders only pad the front of the first row and the
// back of the last row.
func WeekArray(month time.Time, firstDayOfWeek time.Weekday) []Week {
	first := FirstDayOfMonth(month)
	n := DaysInMonth(first)

	weeks := make([]Week, 0, 6)
	row := make([]time.Time, 0, 7)
	flush := func() {
		var w Week
		pad := 7 - len(row)
		if len(weeks) == 0 {
			copy(w[pad:], row)
		} else {
			copy(w[:], row)
		}
		weeks = append(weeks, w)
		row = row[:0]
	}

	for i := 0; i < n; i++ {
		day := time.Date(first.Year(), first.Month(), i+1, 0, 0, 0, 0, first.Location())
		if len(row) > 0 && day.Weekday() == firstDayOfWeek {
			flush()
		}
		row = append(row, day)
	}
	flush()
	return weeks
}
