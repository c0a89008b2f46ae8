package graph_test

import (
	"strings"
	"testing"

	"github.com/bramblekit/bramble/internal/presentation/graph"
	"github.com/bramblekit/bramble/pkg/story"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildStoryline(t *testing.T) *story.Storyline {
	t.Helper()
	sl, err := story.NewStoryline()
	require.NoError(t, err)
	root, _ := sl.SetRoot(story.Beat{Outcome: "Opening"})
	a, _ := sl.AppendChild(root, story.Beat{Action: "Left", Outcome: "Bridge"})
	sl.AppendChild(root, story.Beat{Action: "Right", Outcome: "Dead end"})
	sl.AppendChild(a, story.Beat{Action: "Cross", Outcome: "Done"})
	return sl
}

func TestGenerateMermaid_Shapes(t *testing.T) {
	out := graph.GenerateMermaid(buildStoryline(t), nil)

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	// Root is a circle, endings are stadiums.
	assert.Contains(t, out, `n0(("0: Opening"))`)
	assert.Contains(t, out, `n3(["3: Cross"])`)
	assert.Contains(t, out, `n2(["2: Right"])`)
}

func TestGenerateMermaid_EdgeLabels(t *testing.T) {
	out := graph.GenerateMermaid(buildStoryline(t), nil)

	assert.Contains(t, out, `n0 -- "Left" --> n1`)
	assert.Contains(t, out, `n0 -- "Right" --> n2`)
	assert.Contains(t, out, `n1 -- "Cross" --> n3`)
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	out := graph.GenerateMermaid(buildStoryline(t), &graph.Overlay{
		VisitedNodes: []int{0, 1, 1},
		CurrentNode:  3,
		HasCurrent:   true,
	})

	assert.Contains(t, out, "class n0 visited;")
	assert.Equal(t, 1, strings.Count(out, "class n1 visited;"))
	assert.Contains(t, out, "class n3 current;")
}

func TestGenerateMermaid_EmptyStoryline(t *testing.T) {
	sl, err := story.NewStoryline()
	require.NoError(t, err)
	assert.Equal(t, "graph TD\n", graph.GenerateMermaid(sl, nil))
}
