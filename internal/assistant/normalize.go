package assistant

import (
	"strings"
	"unicode"
)

// Input is a caller turn after normalization, as seen by rule triggers.
type Input struct {
	// Text is the trimmed, lower-cased input with whitespace collapsed.
	Text string
	// Tokens are the letter/digit runs of Text. Punctuation and symbols are
	// dropped; combining marks stay attached so Devanagari words survive.
	Tokens []string
	// LastIntent is the rule id of the most recent engine message, if any.
	LastIntent string

	padded string
}

// Normalize lower-cases and trims raw, collapses whitespace and maps
// Devanagari digits onto ASCII.
func Normalize(raw string) string {
	raw = strings.Map(func(r rune) rune {
		if r >= '०' && r <= '९' {
			return '0' + (r - '०')
		}
		return r
	}, raw)
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}

// NewInput normalizes raw and tokenizes it.
func NewInput(raw, lastIntent string) Input {
	text := Normalize(raw)
	tokens := tokenize(text)
	return Input{
		Text:       text,
		Tokens:     tokens,
		LastIntent: lastIntent,
		padded:     " " + strings.Join(tokens, " ") + " ",
	}
}

func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r))
	})
}

// HasPhrase reports whether phrase occurs in the input on token boundaries.
// Phrases may span several words.
func (in Input) HasPhrase(phrase string) bool {
	if in.padded == "" {
		return false
	}
	return strings.Contains(in.padded, " "+phrase+" ")
}

// HasAnyPhrase reports whether any of phrases occurs in the input.
func (in Input) HasAnyPhrase(phrases []string) bool {
	for _, p := range phrases {
		if in.HasPhrase(p) {
			return true
		}
	}
	return false
}

// HasTokenPrefix reports whether any token starts with one of prefixes.
func (in Input) HasTokenPrefix(prefixes []string) bool {
	for _, tok := range in.Tokens {
		for _, p := range prefixes {
			if strings.HasPrefix(tok, p) {
				return true
			}
		}
	}
	return false
}

// Empty reports whether the input has no content.
func (in Input) Empty() bool {
	return in.Text == ""
}
