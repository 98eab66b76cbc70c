package player

import (
	"errors"
	"sync"
	"time"
)

// ErrSessionClosed is returned when an action races with session teardown
var ErrSessionClosed = errors.New("player session closed")

// Store keeps live player sessions in memory, keyed by session id. Nothing
// here is persisted: a server restart is the same as every page reloading.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

// Sessions is the global session store
var Sessions *Store

// InitStore creates the global store with the given idle TTL
func InitStore(ttl time.Duration) {
	Sessions = NewStore(ttl)
}

// NewStore builds an empty session store
func NewStore(ttl time.Duration) *Store {
	return &Store{sessions: make(map[string]*Session), ttl: ttl}
}

// Put registers a session and returns its id
func (st *Store) Put(s *Session) string {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
	return s.ID
}

// Get returns a live session and refreshes its idle timer
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if ok {
		s.touch()
	}
	return s, ok
}

// Remove closes and drops a session (page unmount)
func (st *Store) Remove(id string) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()
	if ok {
		s.Close()
	}
}

// SweepExpired evicts sessions idle past the TTL and reports how many
func (st *Store) SweepExpired(now time.Time) int {
	st.mu.Lock()
	var expired []*Session
	for id, s := range st.sessions {
		if s.expired(st.ttl, now) {
			expired = append(expired, s)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	return len(expired)
}
