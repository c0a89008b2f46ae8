// Package graph renders storylines as Mermaid flowcharts for documentation
// and debugging.
package graph

import (
	"fmt"
	"strings"

	"github.com/bramblekit/bramble/pkg/story"
)

// Overlay contains dynamic play state to visualize on the graph.
type Overlay struct {
	VisitedNodes []int
	CurrentNode  int
	HasCurrent   bool
}

// GenerateMermaid produces Mermaid flowchart syntax for a storyline.
// The root is drawn as a circle, leaves (story endings) as stadium shapes,
// and each edge is labeled with the action that leads to its child.
func GenerateMermaid(sl *story.Storyline, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	rootID, ok := sl.RootID()
	if !ok {
		return sb.String()
	}

	stack := []int{rootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		beat, err := sl.Value(id)
		if err != nil {
			continue
		}
		childIDs, err := sl.ChildrenIDs(id)
		if err != nil {
			continue
		}

		// Node shape: circle for the root, stadium for endings.
		opener, closer := "[", "]"
		switch {
		case id == rootID:
			opener, closer = "((", "))"
		case len(childIDs) == 0:
			opener, closer = "([", "])"
		}
		sb.WriteString(fmt.Sprintf("    n%d%s\"%s\"%s\n", id, opener, mermaidLabel(nodeCaption(id, beat)), closer))

		for i := len(childIDs) - 1; i >= 0; i-- {
			stack = append(stack, childIDs[i])
		}
		for _, childID := range childIDs {
			child, err := sl.Value(childID)
			if err != nil {
				continue
			}
			arrow := "-->"
			if child.Action != "" {
				arrow = fmt.Sprintf("-- \"%s\" -->", mermaidLabel(child.Action))
			}
			sb.WriteString(fmt.Sprintf("    n%d %s n%d\n", id, arrow, childID))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text for high contrast regardless of theme.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[int]bool)
		for _, id := range overlay.VisitedNodes {
			if !visitedSet[id] {
				visitedSet[id] = true
				sb.WriteString(fmt.Sprintf("    class n%d visited;\n", id))
			}
		}
		if overlay.HasCurrent {
			sb.WriteString(fmt.Sprintf("    class n%d current;\n", overlay.CurrentNode))
		}
	}

	return sb.String()
}

// nodeCaption picks the text shown inside a node box: the action label
// where there is one, otherwise the outcome (the root has no action).
func nodeCaption(id int, beat story.Beat) string {
	text := beat.Action
	if text == "" {
		text = beat.Outcome
	}
	if r := []rune(text); len(r) > 40 {
		text = string(r[:39]) + "…"
	}
	return fmt.Sprintf("%d: %s", id, text)
}

// mermaidLabel escapes double quotes, which would terminate the label.
func mermaidLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
