package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"rental-assistant/internal/domain"
)

// MemoryStore is an in-process conversation store with the same contract as
// Client. Expired records are removed by Sweep, which the dev server runs on
// a schedule.
type MemoryStore struct {
	mu        sync.Mutex
	records   map[string]domain.Conversation
	retention time.Duration
	now       func() time.Time
}

// NewMemoryStore returns an empty store. Non-positive retention selects
// DefaultRetention.
func NewMemoryStore(retention time.Duration) *MemoryStore {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &MemoryStore{
		records:   make(map[string]domain.Conversation),
		retention: retention,
		now:       time.Now,
	}
}

// SetClock overrides the time source.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *MemoryStore) live(id domain.Identity) (domain.Conversation, bool) {
	conv, ok := s.records[id.Key()]
	if !ok || conv.Expired(s.now()) {
		return domain.Conversation{}, false
	}
	return conv, true
}

func (s *MemoryStore) FindOrCreate(_ context.Context, id domain.Identity, role domain.CallerRole) (domain.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if conv, ok := s.live(id); ok {
		return clone(conv), nil
	}
	conv := domain.Conversation{
		ID:         uuid.NewString(),
		Identity:   id,
		CallerRole: role,
		Locale:     domain.BaseLocale,
		Messages:   []domain.Message{},
		ExpiresAt:  s.now().UTC().Add(s.retention),
	}
	s.records[id.Key()] = conv
	return clone(conv), nil
}

func (s *MemoryStore) Get(_ context.Context, id domain.Identity) (domain.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.live(id)
	if !ok {
		return domain.Conversation{}, domain.ErrConversationNotFound
	}
	return clone(conv), nil
}

func (s *MemoryStore) Append(_ context.Context, id domain.Identity, expectedVersion int, locale domain.Locale, msgs ...domain.Message) (domain.Conversation, error) {
	if len(msgs) == 0 {
		return domain.Conversation{}, errors.New("repository: Append: no messages")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.live(id)
	if !ok || conv.Version != expectedVersion {
		return domain.Conversation{}, domain.ErrVersionConflict
	}
	next := clone(conv)
	for _, m := range msgs {
		next.Messages = append(next.Messages, cloneMessage(m))
	}
	next.Locale = locale
	next.ExpiresAt = s.now().UTC().Add(s.retention)
	next.Version++
	s.records[id.Key()] = next
	return clone(next), nil
}

func (s *MemoryStore) Clear(_ context.Context, id domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.live(id)
	if !ok {
		return domain.ErrConversationNotFound
	}
	conv.Messages = []domain.Message{}
	conv.Version++
	s.records[id.Key()] = conv
	return nil
}

// Sweep deletes records expired at now and returns how many were removed.
func (s *MemoryStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for k, conv := range s.records {
		if conv.Expired(now) {
			delete(s.records, k)
			n++
		}
	}
	return n
}

// Len returns the number of stored records, live or not yet swept.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func clone(conv domain.Conversation) domain.Conversation {
	msgs := make([]domain.Message, len(conv.Messages))
	for i, m := range conv.Messages {
		msgs[i] = cloneMessage(m)
	}
	conv.Messages = msgs
	return conv
}

func cloneMessage(m domain.Message) domain.Message {
	m.Suggestions = append([]string{}, m.Suggestions...)
	return m
}
