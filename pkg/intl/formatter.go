package intl

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/en_US"
	"github.com/go-playground/locales/ru"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/rangepicker/pkg/calendar"
)

// CLDRFormatter renders calendar labels from CLDR data. English, hour labels
// and plain numerals are delegated to Fallback in en-US.
type CLDRFormatter struct {
	Fallback calendar.DateTimeFormatter
	Logger   *logrus.Entry

	uni    *ut.UniversalTranslator
	warned sync.Map
}

var _ calendar.DateTimeFormatter = (*CLDRFormatter)(nil)

func NewCLDRFormatter(logger *logrus.Entry) *CLDRFormatter {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	fallback := en.New()
	return &CLDRFormatter{
		Fallback: calendar.NewBuiltinFormatter(logger),
		Logger:   logger,
		uni:      ut.New(fallback, fallback, en_US.New(), ru.New(), zh.New()),
	}
}

// translator resolves locale to the closest CLDR data set, warning once per
// locale that has none and using English instead.
func (f *CLDRFormatter) translator(locale string) locales.Translator {
	if locale == "" {
		locale = calendar.DefaultLocale
	}
	if key, base, ok := LocaleKey(locale); ok {
		if t, found := f.uni.FindTranslator(key, base); found {
			return t
		}
	}
	if _, seen := f.warned.LoadOrStore(locale, true); !seen {
		f.Logger.WithField("locale", locale).Warn("intl.formatter.unsupported_locale")
	}
	return f.uni.GetFallback()
}

func (f *CLDRFormatter) Format(locale string, opts calendar.FormatOptions, t time.Time) (string, bool) {
	tr := f.translator(locale)
	if l := tr.Locale(); l != "en" && l != "en_US" {
		switch {
		case opts.Month == calendar.Short && opts.Weekday == calendar.Short && opts.Day == calendar.TwoDig:
			return fmt.Sprintf("%s, %d %s", tr.WeekdayAbbreviated(t.Weekday()), t.Day(), tr.MonthAbbreviated(t.Month())), true
		case opts.Year != "" && opts.Month != "" && opts.Day != "" && opts.Month != calendar.Long:
			return tr.FmtDateShort(t), true
		case opts.Year == calendar.Numeric && opts.Month == calendar.Long:
			return tr.MonthWide(t.Month()) + " " + strconv.Itoa(t.Year()), true
		case opts.Weekday == calendar.Narrow:
			return tr.WeekdayNarrow(t.Weekday()), true
		}
	}

	if f.Fallback == nil {
		return "", false
	}
	return f.Fallback.Format(calendar.DefaultLocale, opts, t)
}
