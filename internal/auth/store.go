package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultTTL = 24 * time.Hour

type session struct {
	username  string
	expiresAt time.Time
}

// Store keeps sessions in memory, keyed by an opaque cookie token. Sessions
// expire a fixed TTL after creation (not sliding); a janitor goroutine sweeps
// expired entries so the map does not grow unbounded.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]session
	ttl      time.Duration
	done     chan struct{}
}

// NewStore returns a session store with the given TTL and starts its janitor.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	s := &Store{
		sessions: make(map[string]session),
		ttl:      ttl,
		done:     make(chan struct{}),
	}
	go s.janitor()
	return s
}

// TTL returns the fixed session lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create registers a new session for the username and returns its token.
func (s *Store) Create(username string) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = session{username: username, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return token
}

// Resolve returns the username for a token if the session exists and has not
// expired.
func (s *Store) Resolve(token string) (string, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok || time.Now().After(sess.expiresAt) {
		return "", false
	}
	return sess.username, true
}

// Delete removes a session. Unknown tokens are a no-op.
func (s *Store) Delete(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Close stops the janitor goroutine.
func (s *Store) Close() {
	close(s.done)
}

func (s *Store) janitor() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.done:
			return
		}
	}
}

func (s *Store) sweep() {
	now := time.Now()
	s.mu.Lock()
	for token, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			delete(s.sessions, token)
		}
	}
	s.mu.Unlock()
}
