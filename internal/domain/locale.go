package domain

import "golang.org/x/text/language"

// Locale is one of the assistant's supported languages.
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleHindi   Locale = "hi"
	LocaleSpanish Locale = "es"

	BaseLocale = LocaleEnglish
)

var locales = []Locale{LocaleEnglish, LocaleHindi, LocaleSpanish}

// SupportedLocales returns the locales in a stable order.
func SupportedLocales() []Locale {
	out := make([]Locale, len(locales))
	copy(out, locales)
	return out
}

// ParseLocale accepts BCP 47 tags such as "es-MX" or "hi-IN" and maps them
// onto a supported locale.
func ParseLocale(s string) (Locale, bool) {
	if s == "" {
		return "", false
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	for _, l := range locales {
		if base.String() == string(l) {
			return l, true
		}
	}
	return "", false
}

// Tag returns the language tag for the locale.
func (l Locale) Tag() language.Tag {
	return language.Make(string(l))
}
