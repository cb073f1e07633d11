package utils

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type sessionEntry struct {
	userID    uint
	expiresAt time.Time
}

// SessionStore maps opaque tokens to user ids. Sessions live in process
// memory only: a restart invalidates every token.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]sessionEntry
	ttl      time.Duration
}

// NewSessionStore creates a store whose sessions expire after ttl.
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &SessionStore{
		sessions: map[string]sessionEntry{},
		ttl:      ttl,
	}
}

// Start issues a fresh unguessable token bound to userID.
func (s *SessionStore) Start(userID uint) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = sessionEntry{userID: userID, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return token
}

// Authorize returns the user id bound to token if the session is live.
func (s *SessionStore) Authorize(token string) (uint, bool) {
	s.mu.RLock()
	entry, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return 0, false
	}

	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return 0, false
	}

	return entry.userID, true
}

// End invalidates the session; ending an unknown token is a no-op.
func (s *SessionStore) End(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}
