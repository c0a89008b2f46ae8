package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/bramblekit/bramble/pkg/story"
	backend "github.com/redis/go-redis/v9"
)

// StorylineStore implements ports.StorylineStore (and StorylineDeleter)
// using Redis. Documents are stored as plain strings; a SET holds the name
// index so List needs no key scan.
type StorylineStore struct {
	client *backend.Client
	prefix string
}

// NewStorylineStoreFromClient creates a Redis storyline store from an
// existing client.
func NewStorylineStoreFromClient(client *backend.Client) *StorylineStore {
	return &StorylineStore{
		client: client,
		prefix: "bramble:storyline:",
	}
}

// NewStorylineStore creates a Redis storyline store with its own client.
func NewStorylineStore(address, password string, db int) *StorylineStore {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewStorylineStoreFromClient(client)
}

func (s *StorylineStore) key(name string) string {
	return s.prefix + name
}

func (s *StorylineStore) indexKey() string {
	return s.prefix + "index"
}

// Save persists the serialized text under name.
func (s *StorylineStore) Save(ctx context.Context, name, text string) error {
	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(name), text, 0)
	pipe.SAdd(ctx, s.indexKey(), name)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save storyline: %w", err)
	}
	return nil
}

// Load returns the serialized text for name.
func (s *StorylineStore) Load(ctx context.Context, name string) (string, error) {
	val, err := s.client.Get(ctx, s.key(name)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return "", story.ErrStorylineNotFound
		}
		return "", fmt.Errorf("failed to load storyline: %w", err)
	}
	return val, nil
}

// List returns all storyline names in lexical order.
func (s *StorylineStore) List(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list storylines: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the storyline and its index entry.
func (s *StorylineStore) Delete(ctx context.Context, name string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(name))
	pipe.SRem(ctx, s.indexKey(), name)
	_, err := pipe.Exec(ctx)
	return err
}
