package intl

import (
	"strings"

	"golang.org/x/text/language"
)

type SupportedLanguage struct {
	Code        string
	VerboseName string
	Tag         language.Tag
}

var (
	// allSupportedLanguages is every language the picker ships labels for
	allSupportedLanguages = []SupportedLanguage{
		{
			Code:        "en",
			VerboseName: "English",
			Tag:         language.English,
		},
		{
			Code:        "ru",
			VerboseName: "Русский",
			Tag:         language.Russian,
		},
		{
			Code:        "zh",
			VerboseName: "中文",
			Tag:         language.Chinese,
		},
	}

	SupportedLanguages = allSupportedLanguages
)

// GetSupportedLanguages returns a filtered list of supported languages based on the whitelist.
// If whitelist is nil or empty, returns all supported languages.
func GetSupportedLanguages(whitelist []string) []SupportedLanguage {
	if len(whitelist) == 0 {
		return allSupportedLanguages
	}

	whitelistMap := make(map[string]bool)
	for _, code := range whitelist {
		whitelistMap[code] = true
	}

	filtered := make([]SupportedLanguage, 0, len(whitelist))
	for _, lang := range allSupportedLanguages {
		if whitelistMap[lang.Code] {
			filtered = append(filtered, lang)
		}
	}

	return filtered
}

// MatchLanguage picks the supported language closest to locale, falling back
// to English for empty or unparsable input.
func MatchLanguage(locale string, supported []SupportedLanguage) SupportedLanguage {
	if len(supported) == 0 {
		supported = allSupportedLanguages
	}
	tags := make([]language.Tag, len(supported))
	for i, l := range supported {
		tags[i] = l.Tag
	}

	candidate := language.English
	if tag, err := language.Parse(strings.TrimSpace(locale)); err == nil {
		candidate = tag
	}
	matcher := language.NewMatcher(tags)
	_, idx, _ := matcher.Match(candidate)
	return supported[idx]
}

// LocaleKey turns a BCP 47 tag such as "en-US" into the CLDR key "en_US".
// ok is false when locale does not parse.
func LocaleKey(locale string) (key string, base string, ok bool) {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil || tag == language.Und {
		return "", "", false
	}
	b, _ := tag.Base()
	return strings.ReplaceAll(tag.String(), "-", "_"), b.String(), true
}
