package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sagarc03/showoff"
)

// MemoryStore is an in-process showoff.SessionStore.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]entry
}

type entry struct {
	session   showoff.Session
	expiresAt time.Time
}

// NewMemoryStore creates a store whose sessions live for ttl.
// A zero ttl keeps sessions until cleared.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]entry),
	}
}

var _ showoff.SessionStore = (*MemoryStore)(nil)

// Get returns the session for token, or showoff.ErrNotFound when there is
// none or it has expired.
func (s *MemoryStore) Get(ctx context.Context, token string) (showoff.Session, error) {
	if err := ctx.Err(); err != nil {
		return showoff.Session{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[token]
	if !ok {
		return showoff.Session{}, fmt.Errorf("get session: %w", showoff.ErrNotFound)
	}

	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		delete(s.sessions, token)
		return showoff.Session{}, fmt.Errorf("get session: expired: %w", showoff.ErrNotFound)
	}

	return e.session, nil
}

// Put replaces the session bound to token.
func (s *MemoryStore) Put(ctx context.Context, token string, sess showoff.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if token == "" {
		return fmt.Errorf("put session: empty token")
	}

	e := entry{session: sess}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.sessions[token] = e
	s.mu.Unlock()

	return nil
}

// Clear removes the session for token.
func (s *MemoryStore) Clear(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()

	return nil
}

// Len returns the number of sessions held, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
