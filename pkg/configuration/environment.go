package configuration

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/iota-uz/utils/fs"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/rangepicker/pkg/intl"
	"github.com/iota-uz/rangepicker/pkg/logging"
)

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		c.Unload()
		panic(err)
	}
	return c
})

var validate = validator.New()

// LoadEnv loads the env files that exist in the working directory. When none
// do, it retries next to the nearest go.mod so tools run from a package
// directory pick up the repo's files.
func LoadEnv(envFiles []string) (int, error) {
	existingFiles := existing(envFiles, "")
	if len(existingFiles) == 0 {
		if root, ok := moduleRoot(); ok {
			existingFiles = existing(envFiles, root)
		}
	}
	if len(existingFiles) == 0 {
		return 0, nil
	}
	return len(existingFiles), godotenv.Load(existingFiles...)
}

func existing(envFiles []string, dir string) []string {
	out := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		path := file
		if dir != "" {
			path = filepath.Join(dir, file)
		}
		if fs.FileExists(path) {
			out = append(out, path)
		}
	}
	return out
}

func moduleRoot() (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for {
		if fs.FileExists(filepath.Join(dir, "go.mod")) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

type DatabaseOptions struct {
	Opts     string `env:"-"`
	Name     string `env:"DB_NAME" envDefault:"rangepicker"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`

	ReservationsTable string `env:"RESERVATIONS_TABLE" envDefault:"reservations" validate:"required"`
}

func (d *DatabaseOptions) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Name, d.Password,
	)
}

type PrometheusOptions struct {
	Enabled bool `env:"PROMETHEUS_METRICS_ENABLED" envDefault:"false"`
}

// PickerOptions are the process-wide defaults for new picker sessions.
type PickerOptions struct {
	Locale            string `env:"RANGEPICKER_LOCALE" envDefault:"en-US" validate:"required,bcp47_language_tag"`
	FirstDayOfWeek    int    `env:"RANGEPICKER_FIRST_DAY_OF_WEEK" envDefault:"1" validate:"min=0,max=6"`
	AutoAdvanceFields bool   `env:"RANGEPICKER_AUTO_ADVANCE_FIELDS" envDefault:"false"`
	Timezone          string `env:"RANGEPICKER_TIMEZONE" envDefault:"UTC" validate:"required,timezone"`
	BlockedRangesFile string `env:"RANGEPICKER_BLOCKED_RANGES_FILE"`
	MessagesLanguage  string `env:"RANGEPICKER_MESSAGES_LANG" envDefault:"en" validate:"required"`

	location *time.Location
}

func (p *PickerOptions) Location() *time.Location {
	if p.location == nil {
		return time.UTC
	}
	return p.location
}

func (p *PickerOptions) Weekday() time.Weekday {
	return time.Weekday(p.FirstDayOfWeek)
}

type Configuration struct {
	Database   DatabaseOptions
	Prometheus PrometheusOptions
	Picker     PickerOptions

	LogLevel string `env:"LOG_LEVEL" envDefault:"error" validate:"oneof=silent error warn info debug"`
	LogPath  string `env:"LOG_PATH"`

	logFile *os.File
	logger  *logrus.Logger
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	switch c.LogLevel {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.ErrorLevel
	}
}

func Use() *Configuration {
	return singleton()
}

// Parse reads the environment without touching env files or the log file.
func Parse() (*Configuration, error) {
	c := &Configuration{}
	if err := env.Parse(c); err != nil {
		return nil, errors.Wrap(err, "parse environment")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Configuration) load(envFiles []string) error {
	n, err := LoadEnv(envFiles)
	if err != nil {
		return err
	}
	if n == 0 {
		wd, _ := os.Getwd()
		log.Println("No .env files found. Tried:")
		for _, file := range envFiles {
			log.Println(filepath.Join(wd, file))
		}
	}
	if err := env.Parse(c); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}

	f, logger, err := logging.FileLogger(c.LogrusLogLevel(), c.LogPath)
	if err != nil {
		return err
	}
	c.logFile = f
	c.logger = logger
	return nil
}

// Validate checks struct tags, then resolves the timezone and the messages
// language against the supported set.
func (c *Configuration) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return errors.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return errors.Wrap(err, "invalid configuration")
	}
	if err := c.Database.validateTable(); err != nil {
		return err
	}
	c.Database.Opts = c.Database.ConnectionString()
	return c.validatePicker()
}

func (c *Configuration) validatePicker() error {
	loc, err := time.LoadLocation(c.Picker.Timezone)
	if err != nil {
		return errors.Wrapf(err, "invalid RANGEPICKER_TIMEZONE=%q", c.Picker.Timezone)
	}
	c.Picker.location = loc

	lang := strings.ToLower(strings.TrimSpace(c.Picker.MessagesLanguage))
	supported := intl.GetSupportedLanguages(nil)
	codes := make([]string, 0, len(supported))
	for _, l := range supported {
		codes = append(codes, l.Code)
	}
	found := false
	for _, code := range codes {
		if code == lang {
			found = true
			break
		}
	}
	if !found {
		return errors.Errorf("invalid RANGEPICKER_MESSAGES_LANG=%q (expected %s)", c.Picker.MessagesLanguage, strings.Join(codes, "|"))
	}
	c.Picker.MessagesLanguage = lang
	return nil
}

// validateTable keeps RESERVATIONS_TABLE to a plain, optionally schema
// qualified identifier since it is interpolated into SQL.
func (d *DatabaseOptions) validateTable() error {
	bad := strings.IndexFunc(d.ReservationsTable, func(r rune) bool {
		return !(r == '_' || r == '.' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	})
	if bad >= 0 {
		return errors.Errorf("invalid RESERVATIONS_TABLE=%q (expected an identifier)", d.ReservationsTable)
	}
	return nil
}

// Unload handles a graceful shutdown.
func (c *Configuration) Unload() {
	if c.logFile != nil {
		if err := c.logFile.Close(); err != nil {
			log.Printf("Failed to close log file: %v", err)
		}
	}
}
