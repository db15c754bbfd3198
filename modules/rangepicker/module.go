package rangepicker

import (
	"embed"
	"io/fs"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/go-faster/errors"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed presentation/locales/*.toml
var localeFiles embed.FS

// LoadBundle returns an English-default message bundle with every embedded
// locale file parsed.
func LoadBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(localeFiles, "presentation/locales/*.toml")
	if err != nil {
		return nil, errors.Wrap(err, "list locale files")
	}
	for _, file := range files {
		data, err := localeFiles.ReadFile(file)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", file)
		}
		if _, err := bundle.ParseMessageFileBytes(data, path.Base(file)); err != nil {
			return nil, errors.Wrapf(err, "parse %s", file)
		}
	}
	return bundle, nil
}

func MustLoadBundle() *i18n.Bundle {
	bundle, err := LoadBundle()
	if err != nil {
		panic(err)
	}
	return bundle
}
