package persistence_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/rangepicker/modules/rangepicker/domain"
	"github.com/iota-uz/rangepicker/modules/rangepicker/infrastructure/persistence"
	"github.com/iota-uz/rangepicker/pkg/blockedrange"
)

var (
	carA = uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	carB = uuid.MustParse("00000000-0000-0000-0000-00000000000b")
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func utc(d, h int) time.Time {
	return time.Date(2024, time.June, d, h, 0, 0, 0, time.UTC)
}

func TestFileRepository_Formats(t *testing.T) {
	want := []blockedrange.Range{
		{Start: utc(15, 10), End: utc(15, 14)},
		{Start: utc(20, 0), End: utc(22, 0)},
	}
	files := map[string]string{
		"ranges.json": `{"ranges": [
			{"start": "2024-06-15T10:00:00Z", "end": "2024-06-15T14:00"},
			{"start": "2024-06-20", "end": "2024-06-22T00"}
		]}`,
		"ranges.yaml": `
ranges:
  - start: "2024-06-15T10:00:00Z"
    end: "2024-06-15T14:00"
  - start: "2024-06-20"
    end: "2024-06-22T00"
`,
		"ranges.toml": `
[[ranges]]
start = "2024-06-15T10:00:00Z"
end = "2024-06-15T14:00"

[[ranges]]
start = "2024-06-20"
end = "2024-06-22T00"
`,
	}
	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			repo := persistence.NewFileBlockedRangeRepository(writeFile(t, name, content), time.UTC)
			got, err := repo.List(context.Background(), uuid.Nil, time.Time{})
			require.NoError(t, err)
			require.Len(t, got, len(want))
			for i := range want {
				require.True(t, want[i].Start.Equal(got[i].Start), "start %d: %s", i, got[i].Start)
				require.True(t, want[i].End.Equal(got[i].End), "end %d: %s", i, got[i].End)
			}
		})
	}
}

func TestFileRepository_LocalTimesUseLocation(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	path := writeFile(t, "ranges.yml", "ranges:\n  - start: \"2024-06-15T10:00\"\n    end: \"2024-06-15T12:00\"\n")

	got, err := persistence.NewFileBlockedRangeRepository(path, loc).List(context.Background(), uuid.Nil, time.Time{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.True(t, got[0].Start.Equal(utc(15, 5)))
}

func TestFileRepository_FiltersByResourceAndFrom(t *testing.T) {
	path := writeFile(t, "ranges.json", `{"ranges": [
		{"resource_id": "00000000-0000-0000-0000-00000000000a", "start": "2024-06-01T10:00", "end": "2024-06-02T10:00"},
		{"resource_id": "00000000-0000-0000-0000-00000000000a", "start": "2024-06-15T10:00", "end": "2024-06-16T10:00"},
		{"resource_id": "00000000-0000-0000-0000-00000000000b", "start": "2024-06-17T10:00", "end": "2024-06-18T10:00"},
		{"start": "2024-06-25T00:00", "end": "2024-06-26T00:00"}
	]}`)
	repo := persistence.NewFileBlockedRangeRepository(path, nil)
	ctx := context.Background()

	all, err := repo.List(ctx, uuid.Nil, time.Time{})
	require.NoError(t, err)
	require.Len(t, all, 4)

	a, err := repo.List(ctx, carA, utc(10, 0))
	require.NoError(t, err)
	require.Len(t, a, 2)
	require.True(t, a[0].Start.Equal(utc(15, 10)))
	require.True(t, a[1].Start.Equal(utc(25, 0)))

	b, err := repo.List(ctx, carB, time.Time{})
	require.NoError(t, err)
	require.Len(t, b, 2)
}

func TestFileRepository_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := persistence.NewFileBlockedRangeRepository(writeFile(t, "ranges.csv", "x"), nil).List(ctx, uuid.Nil, time.Time{})
	require.ErrorIs(t, err, persistence.ErrUnsupportedFormat)

	_, err = persistence.NewFileBlockedRangeRepository(writeFile(t, "ranges.json", `{"ranges": [{"start": "soon", "end": "2024-06-15T12:00"}]}`), nil).List(ctx, uuid.Nil, time.Time{})
	require.ErrorIs(t, err, domain.ErrInvalidInstant)
	require.Contains(t, err.Error(), "ranges[0].start")

	_, err = persistence.NewFileBlockedRangeRepository(writeFile(t, "ranges.json", `{"ranges": [{"start": "2024-06-15T12:00", "end": "2024-06-15T10:00"}]}`), nil).List(ctx, uuid.Nil, time.Time{})
	require.ErrorIs(t, err, domain.ErrInvertedRange)

	_, err = persistence.NewFileBlockedRangeRepository(writeFile(t, "ranges.toml", "[[ranges]]\nbegin = \"2024-06-15\"\n"), nil).List(ctx, uuid.Nil, time.Time{})
	require.Error(t, err)

	_, err = persistence.NewFileBlockedRangeRepository(filepath.Join(t.TempDir(), "missing.json"), nil).List(ctx, uuid.Nil, time.Time{})
	require.ErrorIs(t, err, os.ErrNotExist)
}
