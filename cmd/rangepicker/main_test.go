package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/rangepicker/modules/rangepicker/domain"
)

func quietEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "silent")
	t.Setenv("RANGEPICKER_TIMEZONE", "UTC")
	t.Setenv("RANGEPICKER_FIRST_DAY_OF_WEEK", "1")
	t.Setenv("PROMETHEUS_METRICS_ENABLED", "false")
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const blockedJSON = `{"ranges": [{"start": "2024-06-20T06:00", "end": "2024-06-22T12:00"}]}`

func TestCalendar_PrintsMarkers(t *testing.T) {
	quietEnv(t)
	blocked := writeTemp(t, "blocked.json", blockedJSON)

	out, _, err := runCLI(t, "calendar",
		"--now", "2024-06-10T08:30",
		"--start", "2024-06-12T09:00",
		"--end", "2024-06-14T09:00",
		"--blocked", blocked,
	)
	require.NoError(t, err)
	require.Contains(t, out, "June 2024")
	require.Contains(t, out, "pick up Date")
	require.Contains(t, out, "10  11  12S 13~ 14E 15  16\n")
	require.Contains(t, out, "17  18  19  20* 21x 22* 23\n")
	require.Contains(t, out, " 1x  2x\n")
	require.Contains(t, out, "Wed, Jun 12 9 AM - Fri, Jun 14 9 AM")
}

func TestCalendar_NavigatesAndRendersJSON(t *testing.T) {
	quietEnv(t)

	out, _, err := runCLI(t, "calendar",
		"--now", "2024-06-10T08:30",
		"--start", "2024-06-12T09:00",
		"--end", "2024-06-14T09:00",
		"--edge", "end",
		"--month", "2024-08",
		"--json",
	)
	require.NoError(t, err)

	var vm struct {
		Edit  string `json:"edit"`
		Open  bool   `json:"open"`
		Month struct {
			Title   string `json:"title"`
			CanPrev bool   `json:"can_prev"`
		} `json:"month"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &vm))
	require.Equal(t, "end", vm.Edit)
	require.True(t, vm.Open)
	require.Equal(t, "August 2024", vm.Month.Title)
	require.True(t, vm.Month.CanPrev)
}

func TestCalendar_UsageErrors(t *testing.T) {
	quietEnv(t)

	_, _, err := runCLI(t, "calendar", "--edge", "middle")
	require.Error(t, err)
	require.Equal(t, exitUsage, exitCode(err))

	_, _, err = runCLI(t, "calendar", "--month", "June")
	require.Equal(t, exitUsage, exitCode(err))

	_, _, err = runCLI(t, "calendar", "--resource", "not-a-uuid")
	require.Equal(t, exitUsage, exitCode(err))

	bad := writeTemp(t, "blocked.json", `{"ranges": [{"start": "later", "end": "2024-06-22T12:00"}]}`)
	_, _, err = runCLI(t, "calendar", "--blocked", bad)
	require.Equal(t, exitValidation, exitCode(err))
	require.ErrorIs(t, err, domain.ErrInvalidInstant)

	t.Setenv("RANGEPICKER_FIRST_DAY_OF_WEEK", "9")
	_, _, err = runCLI(t, "calendar")
	require.Equal(t, exitValidation, exitCode(err))
}

const autoAdvanceScript = `
now: "2024-06-10T08:30"
start: "2024-06-12T09:00"
end: "2024-06-14T09:00"
auto_advance: true
blocked:
  - start: "2024-06-20T06:00"
    end: "2024-06-22T12:00"
steps:
  - event: open
    edge: start
  - event: select_day
    day: "2024-06-15"
  - event: select_hour
    hour: 10
  - event: select_day
    day: "2024-06-16"
  - event: select_hour
    hour: 12
  - event: commit
`

func decodeSteps(t *testing.T, out string) []replayStepOutput {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(out))
	var steps []replayStepOutput
	for {
		var s replayStepOutput
		err := dec.Decode(&s)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		steps = append(steps, s)
	}
	return steps
}

func utc(d, h int) time.Time {
	return time.Date(2024, time.June, d, h, 0, 0, 0, time.UTC)
}

func TestReplay_AutoAdvanceCommits(t *testing.T) {
	quietEnv(t)
	script := writeTemp(t, "script.yaml", autoAdvanceScript)

	out, _, err := runCLI(t, "replay", "--script", script)
	require.NoError(t, err)

	steps := decodeSteps(t, out)
	require.Len(t, steps, 6)

	require.True(t, steps[0].State.Open)

	require.True(t, steps[1].State.Start.SelectedDate.Equal(utc(15, 0)))
	require.True(t, steps[1].State.End.SelectedDate.IsZero())
	require.True(t, steps[1].State.DisplayTime)
	require.Equal(t, []string{"end_cleared"}, steps[1].Events)

	require.Equal(t, domain.EdgeEnd, steps[2].State.Edit)
	require.True(t, steps[2].State.Start.SelectedDate.Equal(utc(15, 10)))

	last := steps[4]
	require.Empty(t, last.Error)
	require.NotNil(t, last.Selection)
	require.True(t, last.Selection.Start.Equal(utc(15, 10)))
	require.True(t, last.Selection.End.Equal(utc(16, 12)))
	require.False(t, last.State.Open)
	require.Equal(t, []string{"committed"}, last.Events)
	require.Equal(t, "Sat, Jun 15 10 AM - Sun, Jun 16 12 PM", last.View.Header.Summary)

	require.Contains(t, steps[5].Error, domain.ErrNotOpen.Error())
}

func TestReplay_StrictFailsOnRejectedStep(t *testing.T) {
	quietEnv(t)
	script := writeTemp(t, "script.yaml", `
now: "2024-06-10T08:30"
steps:
  - event: commit
`)
	_, _, err := runCLI(t, "replay", "--script", script)
	require.NoError(t, err)

	_, _, err = runCLI(t, "replay", "--script", script, "--strict")
	require.Equal(t, exitValidation, exitCode(err))
}

func TestReplay_UnknownEventIsUsageError(t *testing.T) {
	quietEnv(t)
	script := writeTemp(t, "script.yaml", "steps:\n  - event: teleport\n")

	_, _, err := runCLI(t, "replay", "--script", script)
	require.Equal(t, exitUsage, exitCode(err))

	script = writeTemp(t, "script.yaml", "steps:\n  - evnt: open\n")
	_, _, err = runCLI(t, "replay", "--script", script)
	require.Equal(t, exitValidation, exitCode(err))
}

func TestReplay_DumpsMetricsWhenEnabled(t *testing.T) {
	quietEnv(t)
	t.Setenv("PROMETHEUS_METRICS_ENABLED", "true")
	script := writeTemp(t, "script.yaml", autoAdvanceScript)

	_, errOut, err := runCLI(t, "replay", "--script", script)
	require.NoError(t, err)
	require.Contains(t, errOut, `rangepicker_commits_total{result="applied"}`)
	require.Contains(t, errOut, `rangepicker_transitions_total{event="select_day",result="applied"}`)
}

func TestZonedClock_ReportsConfiguredTimezone(t *testing.T) {
	zone := time.FixedZone("LINT", 14*60*60)
	instant := time.Date(2024, time.June, 10, 15, 30, 0, 0, time.UTC)
	clock := zonedClock{Clock: clockwork.NewFakeClockAt(instant), loc: zone}

	now := clock.Now()
	require.True(t, now.Equal(instant))
	require.Equal(t, zone, now.Location())
	require.Equal(t, 11, now.Day())
}
