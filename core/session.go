package core

import "errors"

// ErrSessionNotFound is returned by SessionStore.Get for unknown ids.
var ErrSessionNotFound = errors.New("session not found")

// Session is the per-conversation state tracked between turns: the
// chronological input log, the business context and the name of the agent
// that currently owns the conversation.
//
// A session always has exactly one active agent, and the input log ordering
// is chronological. The log is append-only within a turn; at end of turn it
// is replaced wholesale by the canonical compacted log the runtime returns,
// which preserves the causal order of all prior turns.
type Session struct {
	ConversationID string               `json:"conversation_id"`
	InputLog       []InputItem          `json:"input_log"`
	Context        *ConversationContext `json:"context"`
	ActiveAgent    string               `json:"active_agent"`
}

// NewSession creates a fresh session owned by the given entry agent.
func NewSession(conversationID, entryAgent string) *Session {
	return &Session{
		ConversationID: conversationID,
		InputLog:       []InputItem{},
		Context:        NewConversationContext(),
		ActiveAgent:    entryAgent,
	}
}

// Clone returns a deep copy of the session safe for independent mutation.
func (s *Session) Clone() *Session {
	clone := &Session{
		ConversationID: s.ConversationID,
		InputLog:       make([]InputItem, len(s.InputLog)),
		ActiveAgent:    s.ActiveAgent,
	}
	copy(clone.InputLog, s.InputLog)
	if s.Context != nil {
		clone.Context = s.Context.Clone()
	}
	return clone
}

// SessionStore persists sessions keyed by their opaque conversation id.
// Implementations must be safe for concurrent access across keys; turn-level
// serialization within one conversation is the orchestrator's responsibility.
type SessionStore interface {
	// Get returns the session for id or ErrSessionNotFound.
	Get(conversationID string) (*Session, error)

	// Create stores and returns a fresh session owned by entryAgent,
	// overwriting any existing session with the same id.
	Create(conversationID, entryAgent string) (*Session, error)

	// Save overwrites the stored session for sess.ConversationID.
	Save(sess *Session) error
}
