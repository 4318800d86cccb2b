package domain

import (
	"errors"
	"time"
)

var (
	// ErrConversationNotFound is returned by stores when no live record exists
	// for an identity. Expired records are reported the same way.
	ErrConversationNotFound = errors.New("conversation not found")
	// ErrVersionConflict is returned when an append or clear raced with another
	// writer for the same identity.
	ErrVersionConflict = errors.New("conversation version conflict")
)

// Speaker identifies who authored a transcript entry.
type Speaker string

const (
	SpeakerCaller Speaker = "caller"
	SpeakerEngine Speaker = "engine"
)

// CallerRole is recorded when a conversation is created and never re-derived.
type CallerRole string

const (
	RoleGuest    CallerRole = "guest"
	RoleStudent  CallerRole = "student"
	RoleLandlord CallerRole = "landlord"
	RoleAdmin    CallerRole = "admin"
)

// ParseCallerRole returns the role for s and whether it is known.
func ParseCallerRole(s string) (CallerRole, bool) {
	switch r := CallerRole(s); r {
	case RoleGuest, RoleStudent, RoleLandlord, RoleAdmin:
		return r, true
	}
	return "", false
}

// Message is a single transcript entry.
type Message struct {
	Speaker     Speaker   `json:"speaker"`
	Text        string    `json:"text"`
	Timestamp   time.Time `json:"timestamp"`
	Suggestions []string  `json:"suggestions"`
	// Intent is the id of the rule that produced an engine message.
	Intent string `json:"intent,omitempty"`
}

// CallerMessage builds a caller entry. Caller entries never carry suggestions.
func CallerMessage(text string, ts time.Time) Message {
	return Message{Speaker: SpeakerCaller, Text: text, Timestamp: ts, Suggestions: []string{}}
}

// EngineMessage builds an engine entry.
func EngineMessage(text, intent string, suggestions []string, ts time.Time) Message {
	if suggestions == nil {
		suggestions = []string{}
	}
	return Message{Speaker: SpeakerEngine, Text: text, Timestamp: ts, Suggestions: suggestions, Intent: intent}
}

// Conversation is the persisted dialogue state for one identity.
type Conversation struct {
	ID         string
	Identity   Identity
	CallerRole CallerRole
	Locale     Locale
	Messages   []Message
	ExpiresAt  time.Time
	Version    int
}

// LastEngineMessage returns the most recent engine entry, if any.
func (c Conversation) LastEngineMessage() (Message, bool) {
	return LastEngineMessage(c.Messages)
}

// LastEngineMessage scans a transcript from the tail.
func LastEngineMessage(msgs []Message) (Message, bool) {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Speaker == SpeakerEngine {
			return msgs[i], true
		}
	}
	return Message{}, false
}

// Expired reports whether the record is past its retention window at now.
func (c Conversation) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}
