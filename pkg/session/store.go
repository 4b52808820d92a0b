package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = errors.New("session: not found")

type entry struct {
	session  *Session
	lastSeen time.Time
}

// Store keeps live sessions in memory, keyed by random UUIDs. Sessions do not
// survive a restart.
type Store struct {
	mu       sync.Mutex
	runtime  *Runtime
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithTTL expires sessions idle for longer than ttl. Zero disables expiry.
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// NewStore returns an empty store creating sessions from runtime.
func NewStore(runtime *Runtime, options ...StoreOption) *Store {
	s := &Store{
		runtime:  runtime,
		sessions: make(map[string]*entry),
		now:      time.Now,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Create starts and registers a new session.
func (s *Store) Create() *Session {
	session := s.runtime.Start(uuid.NewString())
	s.mu.Lock()
	s.sessions[session.ID()] = &entry{session: session, lastSeen: s.now()}
	s.mu.Unlock()
	return session
}

// Get returns the session for id and refreshes its idle timer.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := s.now()
	if s.expired(e, now) {
		delete(s.sessions, id)
		return nil, ErrNotFound
	}
	e.lastSeen = now
	return e.session, nil
}

// Delete forgets the session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Sweep removes expired sessions and reports how many were dropped.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for id, e := range s.sessions {
		if s.expired(e, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports how many sessions are held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) expired(e *entry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.lastSeen) > s.ttl
}

// SetClock replaces the time source used for expiry.
func (s *Store) SetClock(now func() time.Time) {
	if now == nil {
		return
	}
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}
