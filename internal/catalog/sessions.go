package catalog

import (
	"sync"
	"time"

	"github.com/desertthunder/tunevault/internal/shared"
)

// Session records a successful authentication.
type Session struct {
	ID              string
	Username        string
	AuthenticatedAt time.Time
}

// Sessions is the set of authenticated usernames for one process.
//
// There is no logout and no expiry.
type Sessions struct {
	mu      sync.RWMutex
	entries map[string]Session
}

// NewSessions creates an empty [Sessions] set.
func NewSessions() *Sessions {
	return &Sessions{entries: make(map[string]Session)}
}

// Add records username as authenticated at t and returns its session.
// Adding a username twice keeps the first session.
func (s *Sessions) Add(username string, t time.Time) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.entries[username]; ok {
		return existing
	}

	session := Session{ID: shared.GenerateID(), Username: username, AuthenticatedAt: t}
	s.entries[username] = session
	return session
}

// Get returns the session for username.
func (s *Sessions) Get(username string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.entries[username]
	return session, ok
}

// Has reports whether username has authenticated.
func (s *Sessions) Has(username string) bool {
	_, ok := s.Get(username)
	return ok
}

// Len returns the number of authenticated usernames.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
