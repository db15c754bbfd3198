package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWeekArray_Shape(t *testing.T) {
	months := []time.Time{
		date(2024, time.February, 1, 0),
		date(2024, time.June, 15, 0),
		date(2021, time.February, 1, 0), // starts on a Monday, exactly 4 rows
		date(2024, time.September, 1, 0),
	}
	for _, m := range months {
		for fdow := time.Sunday; fdow <= time.Saturday; fdow++ {
			weeks := WeekArray(m, fdow)
			require.NotEmpty(t, weeks)

			total := 0
			for i, w := range weeks {
				require.Len(t, w, 7)
				for j, d := range w {
					if !d.IsZero() {
						total++
						continue
					}
					switch i {
					case 0:
						require.Zero(t, total, "placeholder after a day in the first row")
					case len(weeks) - 1:
						require.NotZero(t, j, "last row cannot start with a placeholder")
					default:
						t.Fatalf("placeholder in middle row %d of %s", i, m.Month())
					}
				}
				if first := w.Days(); len(first) > 0 && i > 0 {
					require.Equal(t, fdow, first[0].Weekday())
				}
			}
			require.Equal(t, DaysInMonth(m), total)
		}
	}
}

func TestWeekArray_June2024MondayFirst(t *testing.T) {
	weeks := WeekArray(date(2024, time.June, 10, 9), time.Monday)
	require.Len(t, weeks, 5)

	// 2024-06-01 is a Saturday.
	require.True(t, weeks[0][4].IsZero())
	require.Equal(t, date(2024, time.June, 1, 0), weeks[0][5])
	require.Equal(t, date(2024, time.June, 30, 0), weeks[4][6])
}
