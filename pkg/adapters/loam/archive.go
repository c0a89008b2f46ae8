// Package loam adapts a Loam document repository into a storyline archive:
// each storyline is one markdown document whose frontmatter carries the
// archive metadata and whose body is the serialized tree text.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/bramblekit/bramble/pkg/story"
)

// ArchiveMetadata is the frontmatter of an archived storyline document.
type ArchiveMetadata struct {
	Title string `json:"title" mapstructure:"title"`
}

// Archive implements ports.StorylineStore on top of a Loam repository.
// It deliberately does not implement deletion: the archive is an
// append-and-replace document store.
type Archive struct {
	repo  core.Repository
	typed *loam.TypedRepository[ArchiveMetadata]
}

// New wraps an initialized Loam repository.
func New(repo core.Repository) *Archive {
	return &Archive{
		repo:  repo,
		typed: loam.NewTypedRepository[ArchiveMetadata](repo),
	}
}

// Open initializes a Loam repository at dir and wraps it. Versioning is
// disabled: storyline history is the caller's business, not the store's.
func Open(dir string) (*Archive, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving archive dir: %w", err)
	}
	repo, err := loam.Init(absPath, loam.WithVersioning(false))
	if err != nil {
		return nil, fmt.Errorf("opening storyline archive at %s: %w", absPath, err)
	}
	return New(repo), nil
}

// Save writes the serialized text as the document body of <name>.md.
func (a *Archive) Save(ctx context.Context, name, text string) error {
	doc := core.Document{
		ID:      name + ".md",
		Content: text,
		Metadata: core.Metadata{
			"title": name,
		},
	}
	if err := a.repo.Save(ctx, doc); err != nil {
		return fmt.Errorf("archiving storyline %q: %w", name, err)
	}
	return nil
}

// Load returns the body of the named storyline document.
func (a *Archive) Load(ctx context.Context, name string) (string, error) {
	known, err := a.List(ctx)
	if err != nil {
		return "", err
	}
	found := false
	for _, n := range known {
		if n == name {
			found = true
			break
		}
	}
	if !found {
		return "", fmt.Errorf("%q: %w", name, story.ErrStorylineNotFound)
	}

	doc, err := a.typed.Get(ctx, name)
	if err != nil {
		return "", fmt.Errorf("loading storyline %q: %w", name, err)
	}
	return doc.Content, nil
}

// List returns the archived storyline names (document IDs without their
// extension) in lexical order.
func (a *Archive) List(ctx context.Context) ([]string, error) {
	docs, err := a.typed.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing storyline archive: %w", err)
	}

	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		names = append(names, trimExtension(doc.ID))
	}
	sort.Strings(names)
	return names, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
