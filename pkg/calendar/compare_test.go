package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDayComparisons_AreConsistent(t *testing.T) {
	pairs := [][2]time.Time{
		{date(2024, time.June, 10, 23), date(2024, time.June, 11, 0)},
		{date(2023, time.December, 31, 12), date(2024, time.January, 1, 1)},
		{date(2024, time.February, 28, 0), date(2024, time.March, 1, 0)},
	}
	for _, p := range pairs {
		a, b := p[0], p[1]
		require.True(t, IsBeforeDate(a, b))
		require.True(t, IsAfterDate(b, a))
		require.False(t, IsEqualDate(a, b))
	}
}

func TestIsEqualDate_IgnoresTime(t *testing.T) {
	require.True(t, IsEqualDate(date(2024, time.June, 10, 0), date(2024, time.June, 10, 23)))
	require.False(t, IsEqualDate(time.Time{}, date(2024, time.June, 10, 0)))
}

func TestIsEqualDateTime_IgnoresMinutes(t *testing.T) {
	a := time.Date(2024, time.June, 10, 9, 5, 0, 0, time.UTC)
	b := time.Date(2024, time.June, 10, 9, 55, 30, 0, time.UTC)
	require.True(t, IsEqualDateTime(a, b))
	require.False(t, IsEqualDateTime(a, b.Add(time.Hour)))
	require.True(t, IsBeforeDateTime(a, b))
	require.True(t, IsAfterDateTime(b, a))
}

func TestIsBetweenDates_Inclusive(t *testing.T) {
	start := date(2024, time.June, 10, 18)
	end := date(2024, time.June, 12, 1)

	require.True(t, IsBetweenDates(date(2024, time.June, 10, 0), start, end))
	require.True(t, IsBetweenDates(date(2024, time.June, 12, 23), start, end))
	require.False(t, IsBetweenDates(date(2024, time.June, 13, 0), start, end))
	require.False(t, IsBetweenDates(date(2024, time.June, 9, 23), start, end))
}
