package blockedrange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func at(d, h int) time.Time {
	return time.Date(2024, time.June, d, h, 0, 0, 0, time.UTC)
}

func TestContains_InclusiveAndExclusive(t *testing.T) {
	idx := New([]Range{{Start: at(20, 0), End: at(22, 0)}})

	require.True(t, idx.Contains(at(20, 0), true))
	require.True(t, idx.Contains(at(22, 0), true))
	require.False(t, idx.Contains(at(20, 0), false))
	require.False(t, idx.Contains(at(22, 0), false))
	require.True(t, idx.Contains(at(21, 13), false))
	require.False(t, idx.Contains(at(22, 1), true))
}

func TestContainsDay_RequiresWholeDay(t *testing.T) {
	idx := New([]Range{{Start: at(20, 0), End: at(22, 0)}})

	require.True(t, idx.ContainsDay(at(20, 15)))
	require.True(t, idx.ContainsDay(at(21, 0)))
	require.False(t, idx.ContainsDay(at(22, 0)), "only midnight of the 22nd is blocked")
	require.False(t, idx.ContainsDay(at(19, 23)))
}

func TestNearestStartingAfter_SortsCopy(t *testing.T) {
	input := []Range{
		{Start: at(25, 0), End: at(26, 0)},
		{Start: at(12, 0), End: at(13, 0)},
		{Start: at(20, 0), End: at(22, 0)},
	}
	idx := New(input)

	got, ok := idx.NearestStartingAfter(at(18, 10))
	require.True(t, ok)
	require.Equal(t, at(20, 0), got.Start)

	got, ok = idx.NearestStartingAfter(at(20, 0))
	require.True(t, ok, "start must be strictly after")
	require.Equal(t, at(25, 0), got.Start)

	_, ok = idx.NearestStartingAfter(at(25, 0))
	require.False(t, ok)

	_, ok = idx.NearestStartingAfter(time.Time{})
	require.False(t, ok)

	require.Equal(t, at(25, 0), input[0].Start, "input order is preserved")
	require.Equal(t, input, idx.Ranges())
}

func TestTouchesBoundary(t *testing.T) {
	ranges := []Range{{Start: at(20, 14), End: at(22, 10)}}

	require.True(t, TouchesBoundary(ranges, at(20, 0)))
	require.True(t, TouchesBoundary(ranges, at(22, 23)))
	require.False(t, TouchesBoundary(ranges, at(21, 0)))
	require.False(t, TouchesBoundary(ranges, at(23, 0)))
}

func TestNilIndex(t *testing.T) {
	var idx *Index
	require.Zero(t, idx.Len())
	require.False(t, idx.Contains(at(1, 0), true))
	require.False(t, idx.ContainsDay(at(1, 0)))
	_, ok := idx.NearestStartingAfter(at(1, 0))
	require.False(t, ok)
}

func TestSliceHelpers(t *testing.T) {
	ranges := []Range{{Start: at(20, 0), End: at(22, 0)}}

	require.True(t, IsDateTimeInRange(ranges, at(21, 0), false))
	require.True(t, IsDateInRange(ranges, at(21, 5)))
	r, ok := NearestRangeStartingAfter(ranges, at(1, 0))
	require.True(t, ok)
	require.Equal(t, ranges[0], r)
}
