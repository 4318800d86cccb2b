package assistant

import (
	"strings"
	"unicode"

	"rental-assistant/internal/domain"
)

// DetectionSource records which probe decided a turn's locale.
type DetectionSource string

const (
	SourceHint    DetectionSource = "hint"
	SourceScript  DetectionSource = "script"
	SourceKeyword DetectionSource = "keyword"
	SourceSticky  DetectionSource = "sticky"
	SourceDefault DetectionSource = "default"
)

const (
	// minScriptLetters is how many letters of a script make a turn unambiguous.
	minScriptLetters = 3
	// minKeywordTokens is how many words a keyword-detected turn needs before
	// it may move the sticky locale.
	minKeywordTokens = 2
)

// Detection is the outcome of locale detection for one turn.
type Detection struct {
	Locale domain.Locale
	Source DetectionSource
	// Sticky reports whether the detected locale should replace the
	// conversation's sticky locale.
	Sticky bool
}

// Probe tests a normalized input for evidence of one locale.
type Probe struct {
	Name   string
	Locale domain.Locale
	Source DetectionSource
	// Match reports whether the probe fires and whether the evidence is strong
	// enough to move the sticky locale.
	Match func(in Input) (matched, unambiguous bool)
}

// Detector evaluates probes in order; the first that fires wins.
type Detector struct {
	probes []Probe
}

// NewDetector returns a detector over probes in the given priority order.
func NewDetector(probes ...Probe) Detector {
	return Detector{probes: append([]Probe(nil), probes...)}
}

// DefaultDetector returns the built-in probe order: Devanagari script,
// Spanish orthography, Spanish keywords, romanized Hindi keywords, English
// keywords.
func DefaultDetector() Detector {
	return NewDetector(
		scriptProbe("devanagari", domain.LocaleHindi, unicode.Devanagari),
		spanishOrthographyProbe(),
		keywordProbe("spanish-keywords", domain.LocaleSpanish, spanishLocaleKeywords),
		keywordProbe("hindi-keywords", domain.LocaleHindi, hindiLocaleKeywords),
		keywordProbe("english-keywords", domain.LocaleEnglish, englishLocaleKeywords),
	)
}

// Detect returns the locale for in, falling back to sticky and then to the
// base locale when no probe fires.
func (d Detector) Detect(in Input, sticky domain.Locale) Detection {
	for _, p := range d.probes {
		if ok, unambiguous := p.Match(in); ok {
			return Detection{Locale: p.Locale, Source: p.Source, Sticky: unambiguous}
		}
	}
	if sticky != "" {
		return Detection{Locale: sticky, Source: SourceSticky}
	}
	return Detection{Locale: domain.BaseLocale, Source: SourceDefault}
}

func scriptProbe(name string, locale domain.Locale, table *unicode.RangeTable) Probe {
	return Probe{
		Name:   name,
		Locale: locale,
		Source: SourceScript,
		Match: func(in Input) (bool, bool) {
			n := 0
			for _, r := range in.Text {
				if unicode.Is(table, r) && unicode.IsLetter(r) {
					n++
				}
			}
			return n > 0, n >= minScriptLetters
		},
	}
}

func spanishOrthographyProbe() Probe {
	return Probe{
		Name:   "spanish-orthography",
		Locale: domain.LocaleSpanish,
		Source: SourceScript,
		Match: func(in Input) (bool, bool) {
			if !strings.ContainsAny(in.Text, "¿¡ñáéíóú") {
				return false, false
			}
			return true, len(in.Tokens) >= minKeywordTokens
		},
	}
}

func keywordProbe(name string, locale domain.Locale, keywords []string) Probe {
	return Probe{
		Name:   name,
		Locale: locale,
		Source: SourceKeyword,
		Match: func(in Input) (bool, bool) {
			if !in.HasAnyPhrase(keywords) {
				return false, false
			}
			return true, len(in.Tokens) >= minKeywordTokens
		},
	}
}

var spanishLocaleKeywords = []string{
	"hola", "gracias", "habitacion", "busco", "quiero", "necesito", "alquiler",
	"precio", "cuanto", "reservar", "ayuda", "adios", "buenos", "buenas",
	"por favor", "donde", "cuarto", "piso", "menos", "presupuesto",
}

var hindiLocaleKeywords = []string{
	"namaste", "namaskar", "kya", "kitna", "kitne", "chahiye", "kamra", "kamre",
	"kiraya", "haan", "nahi", "nahin", "mujhe", "hai", "dhanyavad", "shukriya",
	"madad", "bataiye", "batao",
}

var englishLocaleKeywords = []string{
	"hello", "hey", "room", "rooms", "looking", "book", "booking", "price",
	"rent", "thanks", "thank you", "please", "help", "find", "want", "need",
	"where", "how",
}
