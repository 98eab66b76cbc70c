package checkout

import (
	"sync"
	"time"
)

// Store keeps live confirmation flows in memory, keyed by flow id
type Store struct {
	mu    sync.RWMutex
	flows map[string]*Flow
	ttl   time.Duration
}

// Flows is the global flow store
var Flows *Store

// InitStore creates the global store with the given idle TTL
func InitStore(ttl time.Duration) {
	Flows = NewStore(ttl)
}

// NewStore builds an empty flow store
func NewStore(ttl time.Duration) *Store {
	return &Store{flows: make(map[string]*Flow), ttl: ttl}
}

// Put registers a flow and returns its id
func (st *Store) Put(f *Flow) string {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.flows[f.ID] = f
	return f.ID
}

// Get returns a live flow and refreshes its idle timer
func (st *Store) Get(id string) (*Flow, bool) {
	st.mu.RLock()
	f, ok := st.flows[id]
	st.mu.RUnlock()
	if ok {
		f.touch()
	}
	return f, ok
}

// FindByOrder returns the flow already opened for a (user, order) pair, so a
// manual refresh reuses the attempted-enrollment set instead of resetting it
func (st *Store) FindByOrder(userID, orderID string) (*Flow, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	for _, f := range st.flows {
		if f.UserID == userID && f.OrderID == orderID {
			return f, true
		}
	}
	return nil, false
}

// Remove closes and drops a flow
func (st *Store) Remove(id string) {
	st.mu.Lock()
	f, ok := st.flows[id]
	delete(st.flows, id)
	st.mu.Unlock()
	if ok {
		f.Close()
	}
}

// SweepExpired evicts flows idle past the TTL and reports how many
func (st *Store) SweepExpired(now time.Time) int {
	st.mu.Lock()
	var expired []*Flow
	for id, f := range st.flows {
		if f.expired(st.ttl, now) {
			expired = append(expired, f)
			delete(st.flows, id)
		}
	}
	st.mu.Unlock()

	for _, f := range expired {
		f.Close()
	}
	return len(expired)
}
