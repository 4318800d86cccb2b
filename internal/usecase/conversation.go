package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rental-assistant/internal/assistant"
	"rental-assistant/internal/domain"
)

const (
	defaultMaxMessageLength = 500
	maxAppendAttempts       = 3
)

var tracer = otel.Tracer("rental-assistant/internal/usecase")

// ConversationStore persists one conversation per identity.
// Implementations report missing or expired records as
// domain.ErrConversationNotFound and lost appends as domain.ErrVersionConflict.
type ConversationStore interface {
	FindOrCreate(ctx context.Context, id domain.Identity, role domain.CallerRole) (domain.Conversation, error)
	Get(ctx context.Context, id domain.Identity) (domain.Conversation, error)
	Append(ctx context.Context, id domain.Identity, expectedVersion int, locale domain.Locale, msgs ...domain.Message) (domain.Conversation, error)
	Clear(ctx context.Context, id domain.Identity) error
}

type ConversationService struct {
	resolver      *SessionResolver
	store         ConversationStore
	engine        *assistant.Engine
	maxMessageLen int
	logger        *slog.Logger
	locks         *identityLocks
	now           func() time.Time
}

type SendInput struct {
	Credentials Credentials
	Text        string
	LocaleHint  string
}

type SendOutput struct {
	CallerMessage  domain.Message
	EngineMessage  domain.Message
	ConversationID string
}

type ConversationView struct {
	ConversationID string
	Messages       []domain.Message
	Locale         domain.Locale
	CallerRole     domain.CallerRole
	// MaxMessageLength is the rune limit SendMessage enforces, so offline
	// clients can apply the same one.
	MaxMessageLength int
}

func NewConversationService(r *SessionResolver, store ConversationStore, engine *assistant.Engine, maxMessageLen int, logger *slog.Logger) (*ConversationService, error) {
	if r == nil {
		return nil, errors.New("usecase: session resolver must not be nil")
	}
	if store == nil {
		return nil, errors.New("usecase: conversation store must not be nil")
	}
	if engine == nil {
		return nil, errors.New("usecase: engine must not be nil")
	}
	if maxMessageLen <= 0 {
		maxMessageLen = defaultMaxMessageLength
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ConversationService{
		resolver:      r,
		store:         store,
		engine:        engine,
		maxMessageLen: maxMessageLen,
		logger:        logger,
		locks:         newIdentityLocks(),
		now:           time.Now,
	}, nil
}

// SendMessage runs one caller turn and persists the caller message together
// with the engine reply.
func (s *ConversationService) SendMessage(ctx context.Context, in SendInput) (_ SendOutput, err error) {
	ctx, span := tracer.Start(ctx, "ConversationService.SendMessage")
	defer func() { endSpan(span, err) }()

	session, err := s.resolver.Resolve(ctx, in.Credentials)
	if err != nil {
		return SendOutput{}, err
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return SendOutput{}, newError(ErrorInvalidInput, "empty_message", nil)
	}
	if utf8.RuneCountInString(text) > s.maxMessageLen {
		return SendOutput{}, newError(ErrorInvalidInput, "message_too_long", nil)
	}
	hint, _ := domain.ParseLocale(strings.TrimSpace(in.LocaleHint))

	unlock, err := s.locks.Lock(ctx, session.Identity.Key())
	if err != nil {
		return SendOutput{}, newError(ErrorInternal, "request_cancelled", err)
	}
	defer unlock()

	for attempt := 1; attempt <= maxAppendAttempts; attempt++ {
		conv, err := s.store.FindOrCreate(ctx, session.Identity, session.Role)
		if err != nil {
			return SendOutput{}, newError(ErrorStoreUnavailable, "store_load_error", err)
		}

		reply, err := s.engine.Respond(assistant.Turn{
			Text:         text,
			LocaleHint:   hint,
			StickyLocale: conv.Locale,
			Transcript:   conv.Messages,
		})
		if errors.Is(err, assistant.ErrEmptyInput) {
			return SendOutput{}, newError(ErrorInvalidInput, "empty_message", err)
		}
		if err != nil {
			return SendOutput{}, newError(ErrorInternal, "engine_error", err)
		}

		ts := s.timestamp(conv.Messages)
		caller := domain.CallerMessage(text, ts)
		engine := domain.EngineMessage(reply.Text, reply.Intent, reply.Suggestions, ts)

		updated, err := s.store.Append(ctx, session.Identity, conv.Version, reply.StickyLocale, caller, engine)
		if errors.Is(err, domain.ErrVersionConflict) {
			s.logger.WarnContext(ctx, "conversation append conflict", "attempt", attempt, "conversation_id", conv.ID)
			continue
		}
		if err != nil {
			return SendOutput{}, newError(ErrorStoreUnavailable, "store_append_error", err)
		}

		span.SetAttributes(
			attribute.String("assistant.intent", reply.Intent),
			attribute.String("assistant.locale", string(reply.Locale)),
			attribute.Int("conversation.append_attempts", attempt),
		)
		s.logger.InfoContext(ctx, "conversation turn persisted",
			"conversation_id", updated.ID,
			"intent", reply.Intent,
			"locale", reply.Locale,
			"locale_source", string(reply.Source),
		)
		return SendOutput{
			CallerMessage:  caller,
			EngineMessage:  engine,
			ConversationID: updated.ID,
		}, nil
	}
	return SendOutput{}, newError(ErrorStoreUnavailable, "append_conflict", domain.ErrVersionConflict)
}

// GetConversation returns the caller's transcript. A caller with no live
// record sees an empty conversation in the base locale.
func (s *ConversationService) GetConversation(ctx context.Context, c Credentials) (_ ConversationView, err error) {
	ctx, span := tracer.Start(ctx, "ConversationService.GetConversation")
	defer func() { endSpan(span, err) }()

	session, err := s.resolver.Resolve(ctx, c)
	if err != nil {
		return ConversationView{}, err
	}

	conv, err := s.store.Get(ctx, session.Identity)
	if errors.Is(err, domain.ErrConversationNotFound) {
		return ConversationView{
			Messages:         []domain.Message{},
			Locale:           domain.BaseLocale,
			CallerRole:       session.Role,
			MaxMessageLength: s.maxMessageLen,
		}, nil
	}
	if err != nil {
		return ConversationView{}, newError(ErrorStoreUnavailable, "store_load_error", err)
	}

	msgs := conv.Messages
	if msgs == nil {
		msgs = []domain.Message{}
	}
	return ConversationView{
		ConversationID:   conv.ID,
		Messages:         msgs,
		Locale:           conv.Locale,
		CallerRole:       conv.CallerRole,
		MaxMessageLength: s.maxMessageLen,
	}, nil
}

// ClearConversation empties the caller's transcript. The record, its id and
// its locale are kept.
func (s *ConversationService) ClearConversation(ctx context.Context, c Credentials) (err error) {
	ctx, span := tracer.Start(ctx, "ConversationService.ClearConversation")
	defer func() { endSpan(span, err) }()

	session, err := s.resolver.Resolve(ctx, c)
	if err != nil {
		return err
	}

	unlock, err := s.locks.Lock(ctx, session.Identity.Key())
	if err != nil {
		return newError(ErrorInternal, "request_cancelled", err)
	}
	defer unlock()

	err = s.store.Clear(ctx, session.Identity)
	if errors.Is(err, domain.ErrConversationNotFound) {
		return newError(ErrorNotFound, "conversation_not_found", err)
	}
	if err != nil {
		return newError(ErrorStoreUnavailable, "store_clear_error", err)
	}
	s.logger.InfoContext(ctx, "conversation cleared")
	return nil
}

// timestamp never goes backwards relative to the transcript tail.
func (s *ConversationService) timestamp(msgs []domain.Message) time.Time {
	ts := s.now().UTC()
	if n := len(msgs); n > 0 && msgs[n-1].Timestamp.After(ts) {
		return msgs[n-1].Timestamp.UTC()
	}
	return ts
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
