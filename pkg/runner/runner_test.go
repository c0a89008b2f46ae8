package runner_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/bramblekit/bramble/pkg/adapters/memory"
	"github.com/bramblekit/bramble/pkg/runner"
	"github.com/bramblekit/bramble/pkg/story"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// demoStoryline builds:
//
//	root "You stand at a crossroads."
//	├── "Go left"  → "A bridge." → leaf "Cross it" → "You made it."
//	└── "Go right" → "A dead end."
func demoStoryline(t *testing.T) *story.Storyline {
	t.Helper()
	sl, err := story.NewStoryline()
	require.NoError(t, err)

	root, err := sl.SetRoot(story.Beat{Outcome: "You stand at a crossroads."})
	require.NoError(t, err)
	left, err := sl.AppendChild(root, story.Beat{Action: "Go left", Outcome: "A bridge."})
	require.NoError(t, err)
	_, err = sl.AppendChild(root, story.Beat{Action: "Go right", Outcome: "A dead end."})
	require.NoError(t, err)
	_, err = sl.AppendChild(left, story.Beat{Action: "Cross it", Outcome: "You made it."})
	require.NoError(t, err)
	return sl
}

func TestRunner_PlaysToLeaf(t *testing.T) {
	sl := demoStoryline(t)

	var out bytes.Buffer
	r := &runner.Runner{
		Input:  strings.NewReader("1\n1\n"),
		Output: &out,
	}

	err := r.Run(context.Background(), "demo", sl, "")
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "You stand at a crossroads.")
	assert.Contains(t, text, "1. Go left")
	assert.Contains(t, text, "2. Go right")
	assert.Contains(t, text, "A bridge.")
	assert.Contains(t, text, "You made it.")
	assert.Contains(t, text, "End of story reached. Thanks for playing!")
}

func TestRunner_InvalidChoiceReprompts(t *testing.T) {
	sl := demoStoryline(t)

	var out bytes.Buffer
	r := &runner.Runner{
		Input:  strings.NewReader("9\nfoo\n2\n"),
		Output: &out,
	}

	err := r.Run(context.Background(), "demo", sl, "")
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Invalid choice. Please enter a number between 1 and 2.")
	assert.Contains(t, text, "A dead end.")
}

func TestRunner_EmptyStoryline(t *testing.T) {
	sl, err := story.NewStoryline()
	require.NoError(t, err)

	r := &runner.Runner{Input: strings.NewReader(""), Output: &bytes.Buffer{}}
	err = r.Run(context.Background(), "empty", sl, "")
	assert.Error(t, err)
}

func TestRunner_InputClosed(t *testing.T) {
	sl := demoStoryline(t)

	r := &runner.Runner{Input: strings.NewReader(""), Output: &bytes.Buffer{}}
	err := r.Run(context.Background(), "demo", sl, "")
	assert.Error(t, err)
}

func TestRunner_SavesAndClearsSession(t *testing.T) {
	sl := demoStoryline(t)
	store := memory.NewSessionStore()
	ctx := context.Background()

	// Walk one step, then hit EOF: progress must be persisted.
	r := &runner.Runner{
		Input:  strings.NewReader("1\n"),
		Output: &bytes.Buffer{},
		Store:  store,
	}
	err := r.Run(ctx, "demo", sl, "sess-1")
	require.Error(t, err) // EOF mid-story

	sess, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "demo", sess.Storyline)
	assert.Equal(t, []int{1}, sess.Path)

	// Resume and finish: the session is cleared.
	r2 := &runner.Runner{
		Input:  strings.NewReader("1\n"),
		Output: &bytes.Buffer{},
		Store:  store,
	}
	require.NoError(t, r2.Run(ctx, "demo", sl, "sess-1"))

	_, err = store.Load(ctx, "sess-1")
	assert.ErrorIs(t, err, story.ErrSessionNotFound)
}

func TestRunner_ResumeSkipsSeenNodes(t *testing.T) {
	sl := demoStoryline(t)
	store := memory.NewSessionStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sess-2", &story.Session{Storyline: "demo", Path: []int{1}}))

	var out bytes.Buffer
	r := &runner.Runner{
		Input:  strings.NewReader("1\n"),
		Output: &out,
		Store:  store,
	}
	require.NoError(t, r.Run(ctx, "demo", sl, "sess-2"))

	text := out.String()
	assert.NotContains(t, text, "You stand at a crossroads.")
	assert.Contains(t, text, "A bridge.")
}

func TestRunner_ResumeWrongStoryline(t *testing.T) {
	sl := demoStoryline(t)
	store := memory.NewSessionStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sess-3", &story.Session{Storyline: "other", Path: []int{1}}))

	r := &runner.Runner{Input: strings.NewReader(""), Output: &bytes.Buffer{}, Store: store}
	err := r.Run(ctx, "demo", sl, "sess-3")
	assert.Error(t, err)
}

func TestReplay(t *testing.T) {
	sl := demoStoryline(t)

	id, err := runner.Replay(sl, []int{1, 1})
	require.NoError(t, err)
	beat, err := sl.Value(id)
	require.NoError(t, err)
	assert.Equal(t, "You made it.", beat.Outcome)

	_, err = runner.Replay(sl, []int{3})
	assert.Error(t, err)
}

func TestRunner_RendererApplied(t *testing.T) {
	sl := demoStoryline(t)

	var out bytes.Buffer
	r := &runner.Runner{
		Input:  strings.NewReader("2\n"),
		Output: &out,
		Renderer: func(s string) (string, error) {
			return ">> " + s, nil
		},
	}
	require.NoError(t, r.Run(context.Background(), "demo", sl, ""))
	assert.Contains(t, out.String(), ">> You stand at a crossroads.")
}
