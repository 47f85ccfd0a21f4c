// Package session provides SessionStore implementations and the keyed
// locking primitive the orchestrator uses to serialize turns within one
// conversation.
package session

import (
	"sync"

	"github.com/promopro/chatmesh/core"
)

// InMemoryStore is a volatile SessionStore keeping sessions in a process
// local map. It is safe for concurrent access across keys and best suited
// for tests or single-instance deployments; sessions live for the process
// lifetime (no TTL or eviction). Each returned session is cloned to prevent
// external mutation of internal state.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*core.Session
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*core.Session)}
}

// Get returns a clone of the stored session or core.ErrSessionNotFound.
func (s *InMemoryStore) Get(conversationID string) (*core.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[conversationID]
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	return sess.Clone(), nil
}

// Create stores a fresh session owned by entryAgent, overwriting any
// existing session with the same id, and returns a clone.
func (s *InMemoryStore) Create(conversationID, entryAgent string) (*core.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := core.NewSession(conversationID, entryAgent)
	s.sessions[conversationID] = sess
	return sess.Clone(), nil
}

// Save overwrites the stored session with a clone of the provided snapshot.
func (s *InMemoryStore) Save(sess *core.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ConversationID] = sess.Clone()
	return nil
}
