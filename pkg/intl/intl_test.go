package intl

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/iota-uz/rangepicker/pkg/calendar"
)

func TestGetSupportedLanguages_Whitelist(t *testing.T) {
	require.Len(t, GetSupportedLanguages(nil), len(allSupportedLanguages))

	got := GetSupportedLanguages([]string{"zh", "xx"})
	require.Len(t, got, 1)
	require.Equal(t, language.Chinese, got[0].Tag)
}

func TestMatchLanguage(t *testing.T) {
	require.Equal(t, "ru", MatchLanguage("ru-RU", nil).Code)
	require.Equal(t, "en", MatchLanguage("en-US", nil).Code)
	require.Equal(t, "en", MatchLanguage("not a tag!", nil).Code)
	require.Equal(t, "zh", MatchLanguage("zh", GetSupportedLanguages([]string{"zh"})).Code)
}

func TestLocaleKey(t *testing.T) {
	key, base, ok := LocaleKey("en-US")
	require.True(t, ok)
	require.Equal(t, "en_US", key)
	require.Equal(t, "en", base)

	_, _, ok = LocaleKey("")
	require.False(t, ok)
}

func newTestFormatter() (*CLDRFormatter, *test.Hook) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	hook := test.NewLocal(logger)
	return NewCLDRFormatter(logrus.NewEntry(logger)), hook
}

func TestCLDRFormatter_EnglishMatchesBuiltin(t *testing.T) {
	f, hook := newTestFormatter()
	d := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)

	got, ok := f.Format("en-US", calendar.FormatOptions{Weekday: calendar.Short, Month: calendar.Short, Day: calendar.TwoDig}, d)
	require.True(t, ok)
	require.Equal(t, "Mon, Jun 10", got)

	got, ok = f.Format("en", calendar.FormatOptions{Year: calendar.Numeric, Month: calendar.Long}, d)
	require.True(t, ok)
	require.Equal(t, "June 2024", got)
	require.Empty(t, hook.AllEntries())
}

func TestCLDRFormatter_LocalizesNames(t *testing.T) {
	f, _ := newTestFormatter()
	d := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)

	month, ok := f.Format("ru-RU", calendar.FormatOptions{Year: calendar.Numeric, Month: calendar.Long}, d)
	require.True(t, ok)
	require.NotEmpty(t, month)
	require.NotEqual(t, "June 2024", month)
	require.Contains(t, month, "2024")

	narrow, ok := f.Format("zh", calendar.FormatOptions{Weekday: calendar.Narrow}, d)
	require.True(t, ok)
	require.NotEmpty(t, narrow)
	require.NotEqual(t, "M", narrow)

	hour, ok := f.Format("ru", calendar.FormatOptions{Hour: calendar.Numeric, Hour12: true}, d)
	require.True(t, ok)
	require.Equal(t, "9 AM", hour)
}

func TestCLDRFormatter_UnknownLocaleWarnsOnceAndFallsBack(t *testing.T) {
	f, hook := newTestFormatter()
	d := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		got, ok := f.Format("tlh", calendar.FormatOptions{Weekday: calendar.Narrow}, d)
		require.True(t, ok)
		require.Equal(t, "M", got)
	}
	require.Len(t, hook.AllEntries(), 1)
	require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}
