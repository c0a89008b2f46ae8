package bramble

import (
	"context"
	"fmt"
	"log/slog"

	loamAdapter "github.com/bramblekit/bramble/pkg/adapters/loam"
	"github.com/bramblekit/bramble/pkg/ports"
	"github.com/bramblekit/bramble/pkg/runner"
	"github.com/bramblekit/bramble/pkg/story"
)

// Library is the high-level entry point for embedding bramble.
// It wraps a storyline store and provides a simplified API for consumers.
type Library struct {
	store    ports.StorylineStore
	sessions ports.SessionStore
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Library.
type Option func(*Library)

// WithStorylineStore injects a custom store, bypassing the default Loam
// archive initialization.
func WithStorylineStore(s ports.StorylineStore) Option {
	return func(l *Library) {
		l.store = s
	}
}

// WithSessionStore enables play-progress persistence.
func WithSessionStore(s ports.SessionStore) Option {
	return func(l *Library) {
		l.sessions = s
	}
}

// WithLogger sets the logger used by the library and its runners.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Library) {
		l.logger = logger
	}
}

// New opens the storyline archive at dir and returns a Library around it.
// Options may replace the archive with any other store.
func New(dir string, opts ...Option) (*Library, error) {
	l := &Library{}
	for _, opt := range opts {
		opt(l)
	}
	if l.store == nil {
		archive, err := loamAdapter.Open(dir)
		if err != nil {
			return nil, err
		}
		l.store = archive
	}
	return l, nil
}

// List returns the names of the stored storylines.
func (l *Library) List(ctx context.Context) ([]string, error) {
	return l.store.List(ctx)
}

// Load fetches and parses the named storyline.
func (l *Library) Load(ctx context.Context, name string) (*story.Storyline, error) {
	text, err := l.store.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	sl, err := story.ParseStoryline(text)
	if err != nil {
		return nil, fmt.Errorf("parsing storyline %q: %w", name, err)
	}
	return sl, nil
}

// Save serializes the storyline and stores it under name.
func (l *Library) Save(ctx context.Context, name string, sl *story.Storyline) error {
	return l.store.Save(ctx, name, sl.Serialize())
}

// Play runs the named storyline interactively on the standard streams.
func (l *Library) Play(ctx context.Context, name string) error {
	sl, err := l.Load(ctx, name)
	if err != nil {
		return err
	}
	r := runner.NewRunner()
	r.Store = l.sessions
	if l.logger != nil {
		r.Logger = l.logger
	}
	return r.Run(ctx, name, sl, "")
}
