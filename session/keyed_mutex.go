package session

import "sync"

// KeyedMutex provides mutual exclusion per string key. The orchestrator locks
// the conversation id for the duration of a turn so concurrent turns on the
// same conversation queue instead of racing on the context snapshot and the
// persisted state; turns on different conversations proceed in parallel.
//
// Entries are never removed: the per-key footprint is one mutex, matching the
// session store's own process-lifetime retention.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyedMutex constructs an empty keyed mutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key, creating it on first use, and returns the
// matching unlock function.
func (k *KeyedMutex) Lock(key string) (unlock func()) {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
