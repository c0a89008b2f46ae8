package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bramblekit/bramble/pkg/ports"
	"github.com/bramblekit/bramble/pkg/story"
)

// Editor runs the interactive authoring loop over a storyline: listing the
// tree, appending beats, pruning subtrees and saving the result back to the
// store.
type Editor struct {
	Input  io.Reader
	Output io.Writer
	Store  ports.StorylineStore
}

const editorHelp = `Commands:
  tree              show the storyline with node ids
  linear            show the linearized debug view
  add <parent-id>   append a beat under the given node
  remove <id>       remove a node and its whole subtree
  save              persist the storyline
  help              show this message
  quit              leave the editor (unsaved changes are lost)`

// Edit processes commands until "quit" or end of input. The storyline is
// mutated in place; "save" writes the serialized form to the store under
// name.
func (e *Editor) Edit(ctx context.Context, name string, sl *story.Storyline) error {
	in := bufio.NewReader(e.Input)
	out := e.Output

	fmt.Fprintf(out, "Editing %q (%d nodes). Type 'help' for commands.\n", name, sl.Len())

	for {
		fmt.Fprint(out, "> ")
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("reading command: %w", err)
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		switch cmd {
		case "":
			continue
		case "help":
			fmt.Fprintln(out, editorHelp)
		case "tree":
			fmt.Fprint(out, story.Outline(sl))
		case "linear":
			fmt.Fprintln(out, sl.DebugString())
		case "add":
			e.add(out, in, sl, arg)
		case "remove":
			e.remove(out, sl, arg)
		case "save":
			if err := e.Store.Save(ctx, name, sl.Serialize()); err != nil {
				fmt.Fprintf(out, "Save failed: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "Saved %q (%d nodes).\n", name, sl.Len())
		case "quit", "exit":
			return nil
		default:
			fmt.Fprintf(out, "Unknown command %q. Type 'help' for commands.\n", cmd)
		}
	}
}

func (e *Editor) add(out io.Writer, in *bufio.Reader, sl *story.Storyline, arg string) {
	var parent int
	if arg == "" {
		// No argument and no root yet means the new beat becomes the
		// root.
		if _, ok := sl.RootID(); ok {
			fmt.Fprintln(out, "Usage: add <parent-id>")
			return
		}
	} else {
		var err error
		parent, err = strconv.Atoi(arg)
		if err != nil {
			fmt.Fprintf(out, "Not a node id: %q\n", arg)
			return
		}
	}

	beat, ok := e.promptBeat(out, in)
	if !ok {
		return
	}

	var id int
	var err error
	if _, hasRoot := sl.RootID(); !hasRoot {
		id, err = sl.SetRoot(beat)
	} else {
		id, err = sl.AppendChild(parent, beat)
	}
	if err != nil {
		fmt.Fprintf(out, "Add failed: %v\n", err)
		return
	}
	fmt.Fprintf(out, "Added node %d.\n", id)
}

func (e *Editor) promptBeat(out io.Writer, in *bufio.Reader) (story.Beat, bool) {
	fmt.Fprint(out, "Action: ")
	action, err := in.ReadString('\n')
	if err != nil && action == "" {
		return story.Beat{}, false
	}
	fmt.Fprint(out, "Outcome: ")
	outcome, err := in.ReadString('\n')
	if err != nil && outcome == "" {
		return story.Beat{}, false
	}

	beat := story.Beat{
		Action:  strings.TrimSpace(action),
		Outcome: strings.TrimSpace(outcome),
	}
	if err := beat.Validate(); err != nil {
		fmt.Fprintf(out, "Rejected: %v\n", err)
		return story.Beat{}, false
	}
	return beat, true
}

func (e *Editor) remove(out io.Writer, sl *story.Storyline, arg string) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintf(out, "Not a node id: %q\n", arg)
		return
	}
	if err := sl.RemoveSubtree(id); err != nil {
		fmt.Fprintf(out, "Remove failed: %v\n", err)
		return
	}
	fmt.Fprintf(out, "Removed node %d and its subtree.\n", id)
}
