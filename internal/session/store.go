// Package session keeps the authenticated username for a client on the
// server, keyed by an id carried in a signed cookie.
package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned by a Store when the session id is unknown.
var ErrNotFound = errors.New("session not found")

// Store maps session ids to usernames.
type Store interface {
	Save(ctx context.Context, id, username string) error
	Load(ctx context.Context, id string) (string, error)
	Delete(ctx context.Context, id string) error
}

// MemoryStore keeps sessions in process memory. Sessions are lost on restart.
// With a zero ttl entries live until they are deleted.
type MemoryStore struct {
	mu        sync.RWMutex
	sessions  map[string]memoryEntry
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

type memoryEntry struct {
	username string
	expires  time.Time
}

// NewMemoryStore drops a session ttl after it was saved. Expired entries are
// swept on Save, at most once per ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, id, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry := memoryEntry{username: username}
	if s.ttl > 0 {
		entry.expires = now.Add(s.ttl)
		if now.Sub(s.lastSweep) >= s.ttl {
			s.sweep(now)
		}
	}
	s.sessions[id] = entry
	return nil
}

func (s *MemoryStore) Load(_ context.Context, id string) (string, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return "", ErrNotFound
	}
	if !entry.expires.IsZero() && !s.now().Before(entry.expires) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return "", ErrNotFound
	}
	return entry.username, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// sweep must be called with mu held.
func (s *MemoryStore) sweep(now time.Time) {
	for id, entry := range s.sessions {
		if !entry.expires.IsZero() && !now.Before(entry.expires) {
			delete(s.sessions, id)
		}
	}
	s.lastSweep = now
}

var _ Store = (*MemoryStore)(nil)
