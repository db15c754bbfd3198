package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_FallsBackToGoModRoot(t *testing.T) {
	tmp := t.TempDir()

	requireWriteFile(t, filepath.Join(tmp, "go.mod"), "module example.com/test\n\ngo 1.22\n")
	requireWriteFile(t, filepath.Join(tmp, ".env.local"), "RANGEPICKER_TEST_ENV_LOAD=ok\n")

	sub := filepath.Join(tmp, "pkg", "calendar")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	origWd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	require.NoError(t, os.Chdir(sub))

	t.Setenv("RANGEPICKER_TEST_ENV_LOAD", "")
	require.NoError(t, os.Unsetenv("RANGEPICKER_TEST_ENV_LOAD"))

	n, err := LoadEnv([]string{".env", ".env.local"})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, "ok", os.Getenv("RANGEPICKER_TEST_ENV_LOAD"))
}

func TestLoadEnv_NoFiles(t *testing.T) {
	tmp := t.TempDir()
	origWd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	require.NoError(t, os.Chdir(tmp))

	n, err := LoadEnv([]string{".env.missing"})
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestParse_Defaults(t *testing.T) {
	c, err := Parse()
	require.NoError(t, err)

	require.Equal(t, "en-US", c.Picker.Locale)
	require.Equal(t, time.Monday, c.Picker.Weekday())
	require.Equal(t, time.UTC, c.Picker.Location())
	require.Equal(t, "en", c.Picker.MessagesLanguage)
	require.Equal(t, "reservations", c.Database.ReservationsTable)
	require.Equal(t, logrus.ErrorLevel, c.LogrusLogLevel())
	require.Contains(t, c.Database.Opts, "dbname=rangepicker")
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("RANGEPICKER_FIRST_DAY_OF_WEEK", "0")
	t.Setenv("RANGEPICKER_MESSAGES_LANG", "RU")
	t.Setenv("RANGEPICKER_AUTO_ADVANCE_FIELDS", "true")
	t.Setenv("LOG_LEVEL", "debug")

	c, err := Parse()
	require.NoError(t, err)
	require.Equal(t, time.Sunday, c.Picker.Weekday())
	require.Equal(t, "ru", c.Picker.MessagesLanguage)
	require.True(t, c.Picker.AutoAdvanceFields)
	require.Equal(t, logrus.DebugLevel, c.LogrusLogLevel())
}

func TestParse_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"RANGEPICKER_FIRST_DAY_OF_WEEK": "7",
		"RANGEPICKER_TIMEZONE":          "Mars/Olympus_Mons",
		"RANGEPICKER_MESSAGES_LANG":     "tlh",
		"LOG_LEVEL":                     "verbose",
		"RESERVATIONS_TABLE":            "reservations; drop table x",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Parse()
			require.Error(t, err)
		})
	}
}

func requireWriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
