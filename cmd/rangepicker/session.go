package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iota-uz/rangepicker/modules/rangepicker"
	"github.com/iota-uz/rangepicker/modules/rangepicker/domain"
	"github.com/iota-uz/rangepicker/modules/rangepicker/infrastructure/persistence"
	"github.com/iota-uz/rangepicker/modules/rangepicker/presentation/formatting"
	"github.com/iota-uz/rangepicker/modules/rangepicker/services"
	"github.com/iota-uz/rangepicker/pkg/blockedrange"
	"github.com/iota-uz/rangepicker/pkg/calendar"
	"github.com/iota-uz/rangepicker/pkg/composables"
	"github.com/iota-uz/rangepicker/pkg/configuration"
	"github.com/iota-uz/rangepicker/pkg/eventbus"
	"github.com/iota-uz/rangepicker/pkg/intl"
	"github.com/iota-uz/rangepicker/pkg/logging"
	"github.com/iota-uz/rangepicker/pkg/metrics"
)

// sessionInput is everything a command can set on a picker session. Empty
// strings fall back to the configuration.
type sessionInput struct {
	blockedFile string
	resource    string
	start       string
	end         string
	now         string
	locale      string

	autoAdvance *bool
	extraRanges []blockedrange.Range
}

func (in *sessionInput) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&in.blockedFile, "blocked", "", "Blocked ranges file (.json, .yaml, .toml)")
	cmd.Flags().StringVar(&in.resource, "resource", "", "Resource UUID; loads reservations from postgres unless --blocked is set")
	cmd.Flags().StringVar(&in.start, "start", "", "Initial start (RFC3339 or 2006-01-02T15:04, configured timezone)")
	cmd.Flags().StringVar(&in.end, "end", "", "Initial end")
	cmd.Flags().StringVar(&in.now, "now", "", "Pin the clock to this instant")
	cmd.Flags().StringVar(&in.locale, "locale", "", "BCP 47 locale (default RANGEPICKER_LOCALE)")
}

type session struct {
	cfg       *configuration.Configuration
	log       *logrus.Entry
	picker    *services.Picker
	formatter *formatting.Formatter
	bus       eventbus.EventBus
	logFile   *os.File
}

func loadConfig() (*configuration.Configuration, error) {
	if _, err := configuration.LoadEnv([]string{".env", ".env.local"}); err != nil {
		return nil, withCode(exitUsage, errors.Wrap(err, "load env files"))
	}
	cfg, err := configuration.Parse()
	if err != nil {
		return nil, withCode(exitValidation, err)
	}
	return cfg, nil
}

func parseOptionalInstant(flag, v string, loc *time.Location) (time.Time, error) {
	if strings.TrimSpace(v) == "" {
		return time.Time{}, nil
	}
	t, err := calendar.ParseInstant(v, loc)
	if err != nil {
		return time.Time{}, withCode(exitUsage, errors.Wrapf(err, "invalid --%s", flag))
	}
	return t, nil
}

func newSession(ctx context.Context, in sessionInput) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logFile, logger, err := logging.FileLogger(cfg.LogrusLogLevel(), cfg.LogPath)
	if err != nil {
		return nil, withCode(exitIO, err)
	}
	s := &session{cfg: cfg, logFile: logFile, log: logrus.NewEntry(logger)}
	s.bus = eventbus.New(s.log)

	loc := cfg.Picker.Location()
	clock := clockwork.NewRealClock()
	if in.now != "" {
		now, err := parseOptionalInstant("now", in.now, loc)
		if err != nil {
			s.close()
			return nil, err
		}
		clock = clockwork.NewFakeClockAt(now)
	}
	start, err := parseOptionalInstant("start", in.start, loc)
	if err != nil {
		s.close()
		return nil, err
	}
	end, err := parseOptionalInstant("end", in.end, loc)
	if err != nil {
		s.close()
		return nil, err
	}

	ranges, err := s.loadRanges(ctx, in, calendar.DateOnly(clock.Now().In(loc)))
	if err != nil {
		s.close()
		return nil, err
	}
	ranges = append(ranges, in.extraRanges...)

	locale := in.locale
	if locale == "" {
		locale = cfg.Picker.Locale
	}
	dtf := intl.NewCLDRFormatter(s.log)

	bundle, err := rangepicker.LoadBundle()
	if err != nil {
		s.close()
		return nil, withCode(exitIO, err)
	}
	s.formatter = formatting.New(locale, dtf, i18n.NewLocalizer(bundle, cfg.Picker.MessagesLanguage), formatting.Labels{})

	opts := services.DefaultOptions()
	opts.FirstDayOfWeek = cfg.Picker.Weekday()
	opts.AutoAdvanceFields = cfg.Picker.AutoAdvanceFields
	if in.autoAdvance != nil {
		opts.AutoAdvanceFields = *in.autoAdvance
	}
	opts.InitialStart = start
	opts.InitialEnd = end
	opts.BlockedRanges = ranges
	opts.Locale = locale
	opts.Formatter = dtf
	opts.Clock = zonedClock{Clock: clock, loc: loc}
	opts.Logger = s.log
	opts.Publisher = s.bus
	if cfg.Prometheus.Enabled {
		opts.Recorder = metrics.NewRecorder()
	}

	s.picker, err = services.New(opts)
	if err != nil {
		s.close()
		return nil, withCode(exitValidation, err)
	}
	s.log.WithFields(logrus.Fields{
		"session_id":     s.picker.SessionID().String(),
		"blocked_ranges": len(ranges),
		"locale":         locale,
	}).Info("rangepicker.session.started")
	return s, nil
}

func (s *session) loadRanges(ctx context.Context, in sessionInput, from time.Time) ([]blockedrange.Range, error) {
	resourceID := uuid.Nil
	if in.resource != "" {
		id, err := uuid.Parse(in.resource)
		if err != nil {
			return nil, withCode(exitUsage, errors.Wrap(err, "invalid --resource"))
		}
		resourceID = id
	}

	var repo domain.BlockedRangeRepository
	switch {
	case in.blockedFile != "":
		repo = persistence.NewFileBlockedRangeRepository(in.blockedFile, s.cfg.Picker.Location())
	case resourceID != uuid.Nil:
		pool, err := connectDB(ctx, s.cfg)
		if err != nil {
			return nil, err
		}
		defer pool.Close()
		ctx = composables.WithPool(ctx, pool)
		repo = persistence.NewPgBlockedRangeRepository(s.cfg.Database.ReservationsTable)
	case s.cfg.Picker.BlockedRangesFile != "":
		repo = persistence.NewFileBlockedRangeRepository(s.cfg.Picker.BlockedRangesFile, s.cfg.Picker.Location())
	default:
		return nil, nil
	}

	ranges, err := repo.List(ctx, resourceID, from)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInstant) || errors.Is(err, domain.ErrInvertedRange) || errors.Is(err, persistence.ErrUnsupportedFormat) {
			return nil, withCode(exitValidation, err)
		}
		if in.blockedFile == "" && resourceID != uuid.Nil {
			return nil, withCode(exitDB, err)
		}
		return nil, withCode(exitIO, err)
	}
	return ranges, nil
}

// finish prints the picker counters when metrics are enabled, then closes
// the log file.
func (s *session) finish(w io.Writer) {
	defer s.close()
	if !s.cfg.Prometheus.Enabled {
		return
	}
	lines, err := metrics.Dump()
	if err != nil {
		s.log.WithError(err).Warn("rangepicker.metrics.dump_failed")
		return
	}
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}

func (s *session) close() {
	if s.logFile != nil {
		_ = s.logFile.Close()
	}
}

// zonedClock reports the time in the picker's configured timezone.
type zonedClock struct {
	clockwork.Clock
	loc *time.Location
}

func (c zonedClock) Now() time.Time {
	return c.Clock.Now().In(c.loc)
}
