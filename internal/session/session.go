// Package session owns the transient per-account conversation state.
// Sessions live only in memory: durable facts go through the persistent
// store, and a process restart simply drops all active dialogs.
package session

import (
	"maps"
	"sync"
	"time"

	"healthbot/internal/flow"
)

// Session records which flow and state an account currently occupies,
// plus scratch key/value data collected along the way.
type Session struct {
	AccountID int64
	FlowID    string
	StateID   flow.StateID
	Scratch   map[string]string
	LastSeen  time.Time
}

// Store is the in-memory session map: at most one session per account.
//
// The store itself is safe for concurrent use; callers are expected to
// serialize operations per account id (the dispatcher's per-account
// mailbox does this), so get-then-set sequences on one account never
// interleave.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	now      func() time.Time
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*Session),
		now:      time.Now,
	}
}

// NewStoreAt creates a store with an injected clock. Used by tests to
// make LastSeen and expiry deterministic.
func NewStoreAt(now func() time.Time) *Store {
	s := NewStore()
	s.now = now
	return s
}

// Get returns a copy of the account's session. The copy shares no
// mutable state with the store; mutations are committed via Set.
func (s *Store) Get(accountID int64) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[accountID]
	if !ok {
		return Session{}, false
	}
	out := *sess
	out.Scratch = maps.Clone(sess.Scratch)
	return out, true
}

// Set commits the account's session: flow, state, and scratch data.
// LastSeen is stamped with the store clock. The scratch map is copied.
func (s *Store) Set(accountID int64, flowID string, stateID flow.StateID, scratch map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[accountID] = &Session{
		AccountID: accountID,
		FlowID:    flowID,
		StateID:   stateID,
		Scratch:   maps.Clone(scratch),
		LastSeen:  s.now(),
	}
}

// Clear removes the account's session and discards its scratch data.
// Clearing an absent session is a no-op.
func (s *Store) Clear(accountID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, accountID)
}

// Touch updates the session's last-activity time without changing flow
// state. No-op if the account has no session.
func (s *Store) Touch(accountID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[accountID]; ok {
		sess.LastSeen = s.now()
	}
}

// Len returns the number of active sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// ExpireIdle clears every session idle for longer than ttl and returns
// how many were removed. A ttl of zero disables expiry (the default
// policy: sessions never expire).
func (s *Store) ExpireIdle(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-ttl)
	removed := 0
	for id, sess := range s.sessions {
		if sess.LastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
