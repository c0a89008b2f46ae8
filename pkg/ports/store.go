package ports

import (
	"context"

	"github.com/bramblekit/bramble/pkg/story"
)

// StorylineStore persists serialized storylines by name. Implementations
// treat the text as opaque: validation happens at the boundary that accepts
// new documents, not in the store.
type StorylineStore interface {
	// Save persists the serialized text under name, replacing any
	// previous version.
	Save(ctx context.Context, name, text string) error

	// Load returns the serialized text for name.
	// Returns story.ErrStorylineNotFound if the name is unknown.
	Load(ctx context.Context, name string) (string, error)

	// List returns the known storyline names in lexical order.
	List(ctx context.Context) ([]string, error)
}

// StorylineDeleter is an optional extension of StorylineStore for backends
// that support removal. Archive-style stores may choose not to implement it.
type StorylineDeleter interface {
	Delete(ctx context.Context, name string) error
}

// SessionStore persists play progress for resumable sessions.
type SessionStore interface {
	// Save persists the session under the given ID.
	Save(ctx context.Context, sessionID string, sess *story.Session) error

	// Load retrieves the session for the given ID.
	// Returns story.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*story.Session, error)

	// Delete removes the session for the given ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the known session IDs.
	List(ctx context.Context) ([]string, error)
}
