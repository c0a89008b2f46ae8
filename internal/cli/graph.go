package cli

import (
	"context"
	"fmt"

	"github.com/bramblekit/bramble/internal/config"
	"github.com/bramblekit/bramble/internal/presentation/graph"
	"github.com/bramblekit/bramble/pkg/story"
)

// GraphOptions configures the graph command.
type GraphOptions struct {
	ConfigPath string
	Name       string
	File       string
	SessionID  string // overlay the session's position on the graph
}

// RunGraph prints a Mermaid diagram of the storyline.
func RunGraph(opts GraphOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	store, err := OpenStorylineStore(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	sl, _, err := materializeStoryline(ctx, store, opts.Name, opts.File)
	if err != nil {
		return err
	}

	var overlay *graph.Overlay
	if opts.SessionID != "" {
		sessions, err := OpenSessionStore(cfg)
		if err != nil {
			return err
		}
		sess, err := sessions.Load(ctx, opts.SessionID)
		if err != nil {
			return fmt.Errorf("loading session %q: %w", opts.SessionID, err)
		}
		overlay, err = overlayFromPath(sl, sess.Path)
		if err != nil {
			return err
		}
	}

	fmt.Print(graph.GenerateMermaid(sl, overlay))
	return nil
}

// overlayFromPath replays a session's choice path and marks the visited
// nodes plus the current position.
func overlayFromPath(sl *story.Storyline, path []int) (*graph.Overlay, error) {
	current, ok := sl.RootID()
	if !ok {
		return nil, fmt.Errorf("storyline has no root")
	}
	overlay := &graph.Overlay{VisitedNodes: []int{current}}
	for step, choice := range path {
		childIDs, err := sl.ChildrenIDs(current)
		if err != nil {
			return nil, err
		}
		if choice < 1 || choice > len(childIDs) {
			return nil, fmt.Errorf("session step %d: choice %d out of range", step+1, choice)
		}
		current = childIDs[choice-1]
		overlay.VisitedNodes = append(overlay.VisitedNodes, current)
	}
	overlay.CurrentNode = current
	overlay.HasCurrent = true
	return overlay, nil
}
