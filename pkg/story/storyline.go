package story

import "github.com/bramblekit/bramble/pkg/tree"

// Storyline is a tree of beats: the root carries the opening scene and each
// path from root to leaf is one possible telling.
type Storyline = tree.Tree[Beat]

// NewStoryline creates an empty storyline.
func NewStoryline() (*Storyline, error) {
	return tree.New[Beat]()
}

// ParseStoryline reconstructs a storyline from its serialized text.
func ParseStoryline(text string) (*Storyline, error) {
	return tree.Deserialize[Beat](text)
}

// ValidateStoryline checks that text is a well-formed serialized storyline
// without keeping the result.
func ValidateStoryline(text string) error {
	_, err := ParseStoryline(text)
	return err
}
