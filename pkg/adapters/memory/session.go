package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/bramblekit/bramble/pkg/story"
)

// SessionStore implements ports.SessionStore using an in-memory map.
// Safe for concurrent use.
type SessionStore struct {
	sessions map[string]*story.Session
	mu       sync.RWMutex
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*story.Session)}
}

// Save stores a copy of the session so later caller mutations cannot leak
// into the store.
func (s *SessionStore) Save(ctx context.Context, sessionID string, sess *story.Session) error {
	cp := *sess
	cp.Path = append([]int(nil), sess.Path...)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = &cp
	return nil
}

// Load retrieves the session for the given ID.
func (s *SessionStore) Load(ctx context.Context, sessionID string) (*story.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, story.ErrSessionNotFound
	}
	cp := *sess
	cp.Path = append([]int(nil), sess.Path...)
	return &cp, nil
}

// Delete removes the session for the given ID.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// List returns the known session IDs in lexical order.
func (s *SessionStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
