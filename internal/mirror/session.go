// Package mirror runs the assistant engine over a transcript held only in
// memory. It is the offline fallback used when the conversation service
// cannot be reached; nothing it produces is ever sent to the service.
package mirror

import (
	"errors"
	"strings"
	"sync"
	"time"

	"rental-assistant/internal/assistant"
	"rental-assistant/internal/domain"
)

// ErrMessageTooLong mirrors the service's length limit.
var ErrMessageTooLong = errors.New("mirror: message too long")

const defaultMaxMessageLength = 500

type Session struct {
	engine *assistant.Engine
	maxLen int
	now    func() time.Time

	mu         sync.Mutex
	locale     domain.Locale
	transcript []domain.Message
}

type Option func(*Session)

// WithHistory seeds the session with the last transcript and locale the
// service returned, so context carries over when the connection drops.
func WithHistory(locale domain.Locale, msgs []domain.Message) Option {
	return func(s *Session) {
		s.locale = locale
		s.transcript = append([]domain.Message{}, msgs...)
	}
}

func WithMaxMessageLength(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxLen = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// NewSession returns an empty session. A nil engine uses the built-in rules.
func NewSession(engine *assistant.Engine, opts ...Option) *Session {
	if engine == nil {
		engine = assistant.NewEngine()
	}
	s := &Session{
		engine:     engine,
		maxLen:     defaultMaxMessageLength,
		now:        time.Now,
		locale:     domain.BaseLocale,
		transcript: []domain.Message{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.locale == "" {
		s.locale = domain.BaseLocale
	}
	return s
}

// Send runs one turn locally and appends the caller message and the reply.
func (s *Session) Send(text, localeHint string) (caller, reply domain.Message, err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Message{}, domain.Message{}, assistant.ErrEmptyInput
	}
	if len([]rune(text)) > s.maxLen {
		return domain.Message{}, domain.Message{}, ErrMessageTooLong
	}
	hint, _ := domain.ParseLocale(strings.TrimSpace(localeHint))

	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.engine.Respond(assistant.Turn{
		Text:         text,
		LocaleHint:   hint,
		StickyLocale: s.locale,
		Transcript:   s.transcript,
	})
	if err != nil {
		return domain.Message{}, domain.Message{}, err
	}

	ts := s.now().UTC()
	if n := len(s.transcript); n > 0 && s.transcript[n-1].Timestamp.After(ts) {
		ts = s.transcript[n-1].Timestamp
	}
	caller = domain.CallerMessage(text, ts)
	reply = domain.EngineMessage(r.Text, r.Intent, r.Suggestions, ts)
	s.transcript = append(s.transcript, caller, reply)
	s.locale = r.StickyLocale
	return caller, reply, nil
}

// Clear empties the transcript and keeps the locale.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = []domain.Message{}
}

// Transcript returns a copy of the local transcript.
func (s *Session) Transcript() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Message{}, s.transcript...)
}

func (s *Session) Locale() domain.Locale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locale
}
