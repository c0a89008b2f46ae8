// Package testutils holds helpers shared by adapter tests.
package testutils

import (
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"

	"github.com/bramblekit/bramble/pkg/story"
)

// TempLoamRepo initializes a Loam repository in a fresh temp directory and
// returns it together with its absolute path. Loam prefers absolute paths,
// so the t.TempDir result is resolved before init.
func TempLoamRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	dir, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "resolving temp dir")

	repo, err := loam.Init(dir, opts...)
	require.NoError(t, err, "initializing loam repo")

	return dir, repo
}

// TinyStoryline builds a two-beat storyline for tests that need real
// serialized content but do not care about its shape.
func TinyStoryline(t *testing.T) *story.Storyline {
	t.Helper()

	sl, err := story.NewStoryline()
	require.NoError(t, err)
	root, err := sl.SetRoot(story.Beat{Outcome: "A fixture."})
	require.NoError(t, err)
	_, err = sl.AppendChild(root, story.Beat{Action: "Continue", Outcome: "Done."})
	require.NoError(t, err)
	return sl
}
