package story

import (
	"fmt"
	"strings"
)

// Outline renders the storyline as an indented listing with node ids, one
// line per beat, for authoring and inspection. The root line shows the
// opening outcome; every other line shows the action that leads there.
func Outline(sl *Storyline) string {
	rootID, ok := sl.RootID()
	if !ok {
		return "(empty storyline)\n"
	}

	var b strings.Builder

	type frame struct {
		id    int
		depth int
	}
	stack := []frame{{id: rootID}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		beat, err := sl.Value(cur.id)
		if err != nil {
			// Unreachable while walking ids the tree just handed out.
			continue
		}

		label := beat.Action
		if cur.depth == 0 {
			label = beat.Outcome
		} else if beat.Outcome != "" {
			label += " - " + truncate(beat.Outcome, 60)
		}
		fmt.Fprintf(&b, "%s[%d] %s\n", strings.Repeat("  ", cur.depth), cur.id, label)

		childIDs, err := sl.ChildrenIDs(cur.id)
		if err != nil {
			continue
		}
		for i := len(childIDs) - 1; i >= 0; i-- {
			stack = append(stack, frame{id: childIDs[i], depth: cur.depth + 1})
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
