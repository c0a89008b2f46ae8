package dsl

import (
	"fmt"

	"github.com/bramblekit/bramble/pkg/story"
)

// Builder manages storyline construction. Errors during building are
// collected and reported by Build, so chained calls stay clean.
type Builder struct {
	sl  *story.Storyline
	err error
}

// New creates a new storyline builder.
func New() *Builder {
	sl, err := story.NewStoryline()
	return &Builder{sl: sl, err: err}
}

// Root sets the opening scene and returns its node builder. Calling Root
// twice is an error, reported by Build.
func (b *Builder) Root(outcome string) *NodeBuilder {
	if b.err != nil {
		return &NodeBuilder{builder: b}
	}
	id, err := b.sl.SetRoot(story.Beat{Outcome: outcome})
	if err != nil {
		b.err = fmt.Errorf("setting root: %w", err)
		return &NodeBuilder{builder: b}
	}
	return &NodeBuilder{builder: b, id: id}
}

// Build returns the constructed storyline, or the first error hit while
// building it.
func (b *Builder) Build() (*story.Storyline, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.sl, nil
}
