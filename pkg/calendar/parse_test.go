package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseInstant(t *testing.T) {
	tashkent := time.FixedZone("UZT", 5*60*60)

	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-06-10T09:00:00Z", time.Date(2024, 6, 10, 14, 0, 0, 0, tashkent)},
		{"2024-06-10T09:30", time.Date(2024, 6, 10, 9, 30, 0, 0, tashkent)},
		{"2024-06-10T09", time.Date(2024, 6, 10, 9, 0, 0, 0, tashkent)},
		{" 2024-06-10 ", time.Date(2024, 6, 10, 0, 0, 0, 0, tashkent)},
	}
	for _, tc := range cases {
		got, err := ParseInstant(tc.in, tashkent)
		require.NoError(t, err, tc.in)
		require.True(t, tc.want.Equal(got), "%s: got %s", tc.in, got)
	}

	_, err := ParseInstant("June 10", tashkent)
	require.ErrorIs(t, err, ErrUnparsable)
	_, err = ParseInstant("", nil)
	require.ErrorIs(t, err, ErrUnparsable)
}

func TestParseMonth(t *testing.T) {
	got, err := ParseMonth("2024-06", nil)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseMonth("2024-13", nil)
	require.ErrorIs(t, err, ErrUnparsable)
}
