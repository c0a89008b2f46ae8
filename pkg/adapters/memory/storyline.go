// Package memory provides map-backed implementations of the ports
// interfaces for tests, demos and ephemeral runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/bramblekit/bramble/pkg/story"
)

// StorylineStore implements ports.StorylineStore using an in-memory map.
// Safe for concurrent use.
type StorylineStore struct {
	docs map[string]string
	mu   sync.RWMutex
}

// NewStorylineStore creates an empty in-memory storyline store.
func NewStorylineStore() *StorylineStore {
	return &StorylineStore{docs: make(map[string]string)}
}

// NewStorylineStoreFrom creates a store pre-seeded with serialized
// documents keyed by name.
func NewStorylineStoreFrom(docs map[string]string) *StorylineStore {
	s := NewStorylineStore()
	for name, text := range docs {
		s.docs[name] = text
	}
	return s
}

// Save stores the serialized text under name.
func (s *StorylineStore) Save(ctx context.Context, name, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[name] = text
	return nil
}

// Load returns the serialized text for name.
func (s *StorylineStore) Load(ctx context.Context, name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.docs[name]
	if !ok {
		return "", story.ErrStorylineNotFound
	}
	return text, nil
}

// List returns all storyline names in lexical order.
func (s *StorylineStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.docs))
	for name := range s.docs {
		names = append(names, name)
	}
	sort.Strings(names) // Deterministic order
	return names, nil
}

// Delete removes the named storyline. Deleting an unknown name is a no-op.
func (s *StorylineStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, name)
	return nil
}
