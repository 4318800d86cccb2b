// Package assistant is the rule-based dialogue engine. It is pure: the same
// code runs in the conversation service and in the offline client mirror, so
// both produce identical replies for identical turns.
package assistant

import (
	"errors"

	"rental-assistant/internal/domain"
)

// ErrEmptyInput is returned for turns with no text after normalization.
var ErrEmptyInput = errors.New("assistant: input is empty")

// Engine ties locale detection, rule matching and composition together.
type Engine struct {
	detector Detector
	rulesets map[domain.Locale]Ruleset
	composer Composer
}

// Option customizes an Engine.
type Option func(*Engine)

// WithDetector replaces the locale detector.
func WithDetector(d Detector) Option {
	return func(e *Engine) { e.detector = d }
}

// WithRuleset replaces the ruleset for the ruleset's locale.
func WithRuleset(rs Ruleset) Option {
	return func(e *Engine) { e.rulesets[rs.Locale()] = rs }
}

// NewEngine returns an engine with the built-in detector and rulesets.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		detector: DefaultDetector(),
		rulesets: DefaultRulesets(),
		composer: NewComposer(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Turn is one caller input plus the conversation state it is evaluated in.
type Turn struct {
	Text         string
	LocaleHint   domain.Locale
	StickyLocale domain.Locale
	Transcript   []domain.Message
}

// Reply is the engine's answer to a turn.
type Reply struct {
	Locale       domain.Locale
	Source       DetectionSource
	StickyLocale domain.Locale
	Intent       string
	Text         string
	Suggestions  []string
}

// Ruleset returns the ruleset used for locale.
func (e *Engine) Ruleset(locale domain.Locale) Ruleset {
	if rs, ok := e.rulesets[locale]; ok {
		return rs
	}
	return e.rulesets[domain.BaseLocale]
}

// DetectLocale resolves the locale for one turn. A supported hint always
// wins and always becomes sticky.
func (e *Engine) DetectLocale(in Input, hint, sticky domain.Locale) Detection {
	if _, ok := e.rulesets[hint]; ok && hint != "" {
		return Detection{Locale: hint, Source: SourceHint, Sticky: true}
	}
	return e.detector.Detect(in, sticky)
}

// Match runs the ruleset for locale against in.
func (e *Engine) Match(in Input, locale domain.Locale) Match {
	return e.Ruleset(locale).Match(in)
}

// Respond evaluates a turn. It never mutates t.Transcript.
func (e *Engine) Respond(t Turn) (Reply, error) {
	lastIntent := ""
	if last, ok := domain.LastEngineMessage(t.Transcript); ok {
		lastIntent = last.Intent
	}
	in := NewInput(t.Text, lastIntent)
	if in.Empty() {
		return Reply{}, ErrEmptyInput
	}

	det := e.DetectLocale(in, t.LocaleHint, t.StickyLocale)
	sticky := t.StickyLocale
	if sticky == "" {
		sticky = domain.BaseLocale
	}
	if det.Sticky {
		sticky = det.Locale
	}

	m := e.Match(in, det.Locale)
	text, suggestions := e.composer.Compose(m)
	return Reply{
		Locale:       det.Locale,
		Source:       det.Source,
		StickyLocale: sticky,
		Intent:       m.Rule.ID,
		Text:         text,
		Suggestions:  suggestions,
	}, nil
}
