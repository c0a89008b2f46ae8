package story

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutline(t *testing.T) {
	sl, err := NewStoryline()
	require.NoError(t, err)

	root, _ := sl.SetRoot(Beat{Outcome: "Opening scene."})
	a, _ := sl.AppendChild(root, Beat{Action: "First", Outcome: "After first."})
	sl.AppendChild(root, Beat{Action: "Second", Outcome: "After second."})
	sl.AppendChild(a, Beat{Action: "Deeper", Outcome: "Down here."})

	got := Outline(sl)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "[0] Opening scene.", lines[0])
	assert.Equal(t, "  [1] First - After first.", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "    [3] Deeper"))
	assert.True(t, strings.HasPrefix(lines[3], "  [2] Second"))
}

func TestOutline_Empty(t *testing.T) {
	sl, err := NewStoryline()
	require.NoError(t, err)
	assert.Equal(t, "(empty storyline)\n", Outline(sl))
}
