package mirror

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"rental-assistant/internal/assistant"
	"rental-assistant/internal/domain"
	"rental-assistant/internal/repository"
	"rental-assistant/internal/usecase"
)

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newSession(opts ...Option) *Session {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewSession(nil, opts...)
}

func TestSend_Greeting(t *testing.T) {
	s := newSession()
	caller, reply, err := s.Send("hello", "")
	require.NoError(t, err)
	require.Equal(t, domain.CallerMessage("hello", fixedNow), caller)
	require.Equal(t, assistant.IntentGreeting, reply.Intent)
	require.NotEmpty(t, reply.Suggestions)
	require.Equal(t, []domain.Message{caller, reply}, s.Transcript())
}

func TestSend_RejectsMalformedInput(t *testing.T) {
	s := newSession(WithMaxMessageLength(5))
	_, _, err := s.Send("   ", "")
	require.ErrorIs(t, err, assistant.ErrEmptyInput)
	_, _, err = s.Send("namaste", "")
	require.ErrorIs(t, err, ErrMessageTooLong)
	require.Empty(t, s.Transcript())
}

func TestSend_UsesContextAndStickyLocale(t *testing.T) {
	s := newSession()
	_, _, err := s.Send("how do I book", "")
	require.NoError(t, err)
	_, reply, err := s.Send("yes", "")
	require.NoError(t, err)
	require.Equal(t, assistant.IntentConfirmBooking, reply.Intent)

	_, _, err = s.Send("hola", "es")
	require.NoError(t, err)
	require.Equal(t, domain.LocaleSpanish, s.Locale())
	_, _, err = s.Send("ok", "")
	require.NoError(t, err)
	require.Equal(t, domain.LocaleSpanish, s.Locale())
}

func TestWithHistory_ContinuesServerContext(t *testing.T) {
	history := []domain.Message{
		domain.CallerMessage("list my flat", fixedNow.Add(time.Hour)),
		domain.EngineMessage("Listing takes a few minutes", assistant.IntentListing, nil, fixedNow.Add(time.Hour)),
	}
	s := newSession(WithHistory(domain.LocaleEnglish, history))

	caller, reply, err := s.Send("yes", "")
	require.NoError(t, err)
	require.Equal(t, assistant.IntentConfirmListing, reply.Intent)
	require.Equal(t, fixedNow.Add(time.Hour), caller.Timestamp, "timestamps never go backwards")

	history[0].Text = "mutated"
	require.Equal(t, "list my flat", s.Transcript()[0].Text)
}

func TestClear_KeepsLocale(t *testing.T) {
	s := newSession()
	_, _, err := s.Send("दिल्ली मेट्रो", "")
	require.NoError(t, err)
	s.Clear()
	require.Empty(t, s.Transcript())
	require.Equal(t, domain.LocaleHindi, s.Locale())
}

func TestTranscript_IsCopy(t *testing.T) {
	s := newSession()
	_, _, err := s.Send("hello", "")
	require.NoError(t, err)
	got := s.Transcript()
	got[0].Text = "changed"
	require.Equal(t, "hello", s.Transcript()[0].Text)
}

// The mirror and the service must answer every turn identically.
func TestParityWithConversationService(t *testing.T) {
	store := repository.NewMemoryStore(repository.DefaultRetention)
	svc, err := usecase.NewConversationService(usecase.NewSessionResolver(nil, nil), store, assistant.NewEngine(), 0, nil)
	require.NoError(t, err)
	creds := usecase.Credentials{SessionID: "parity"}

	turns := []struct{ text, hint string }{
		{"hello", ""},
		{"under 10000", ""},
		{"yes", ""},
		{"How do I book a room?", ""},
		{"ok", ""},
		{"दिल्ली में कमरा चाहिए", ""},
		{"ok", ""},
		{"¿Cuánto cuesta una habitación?", ""},
		{"menos de 8 mil", ""},
		{"no", ""},
		{"hello", "hi-IN"},
		{"refund policy", "en"},
		{"thanks", ""},
		{"asdf qwerty", ""},
	}

	s := NewSession(nil)
	for _, turn := range turns {
		out, err := svc.SendMessage(context.Background(), usecase.SendInput{Credentials: creds, Text: turn.text, LocaleHint: turn.hint})
		require.NoError(t, err)
		_, reply, err := s.Send(turn.text, turn.hint)
		require.NoError(t, err)

		require.Equal(t, out.EngineMessage.Intent, reply.Intent, "intent for %q", turn.text)
		require.Equal(t, out.EngineMessage.Text, reply.Text, "text for %q", turn.text)
		require.Equal(t, out.EngineMessage.Suggestions, reply.Suggestions, "suggestions for %q", turn.text)
	}

	view, err := svc.GetConversation(context.Background(), creds)
	require.NoError(t, err)
	require.Equal(t, view.Locale, s.Locale())
	require.Len(t, s.Transcript(), len(view.Messages))
	for i, m := range s.Transcript() {
		require.Equal(t, view.Messages[i].Speaker, m.Speaker)
		require.Equal(t, view.Messages[i].Text, m.Text)
		require.Equal(t, view.Messages[i].Intent, m.Intent)
	}
	require.False(t, strings.Contains(view.Messages[len(view.Messages)-1].Text, "{amount}"))
}

func TestParityWithConfiguredMessageLimit(t *testing.T) {
	store := repository.NewMemoryStore(repository.DefaultRetention)
	svc, err := usecase.NewConversationService(usecase.NewSessionResolver(nil, nil), store, assistant.NewEngine(), 20, nil)
	require.NoError(t, err)
	ctx := context.Background()
	creds := usecase.Credentials{SessionID: "limit"}

	_, err = svc.SendMessage(ctx, usecase.SendInput{Credentials: creds, Text: "hello"})
	require.NoError(t, err)
	view, err := svc.GetConversation(ctx, creds)
	require.NoError(t, err)

	s := NewSession(nil, WithHistory(view.Locale, view.Messages), WithMaxMessageLength(view.MaxMessageLength))

	tooLong := strings.Repeat("a", 21)
	_, err = svc.SendMessage(ctx, usecase.SendInput{Credentials: creds, Text: tooLong})
	var ucErr *usecase.Error
	require.True(t, errors.As(err, &ucErr))
	require.Equal(t, usecase.ErrorInvalidInput, ucErr.Code)
	_, _, err = s.Send(tooLong, "")
	require.ErrorIs(t, err, ErrMessageTooLong)

	atLimit := strings.Repeat("a", 20)
	_, err = svc.SendMessage(ctx, usecase.SendInput{Credentials: creds, Text: atLimit})
	require.NoError(t, err)
	_, _, err = s.Send(atLimit, "")
	require.NoError(t, err)
}
