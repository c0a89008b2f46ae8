// Package runner drives a storyline from a terminal: the play loop walks
// the tree by letting the player pick among the current node's children,
// and the authoring loop edits the tree in place. IO is injected so both
// loops are testable and embeddable in other frontends.
package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/bramblekit/bramble/pkg/ports"
	"github.com/bramblekit/bramble/pkg/story"
)

// ContentRenderer transforms outcome text before it is written, e.g. to
// apply terminal markdown styling. A nil renderer writes the text as-is.
type ContentRenderer func(string) (string, error)

// Runner executes the interactive play loop.
type Runner struct {
	// Input defaults to os.Stdin when nil.
	Input io.Reader

	// Output defaults to os.Stdout when nil.
	Output io.Writer

	// Renderer optionally styles outcome text.
	Renderer ContentRenderer

	// Logger is used for internal debug logging. If nil, a no-op logger
	// is used.
	Logger *slog.Logger

	// Store persists play progress between invocations. If nil, sessions
	// are ephemeral.
	Store ports.SessionStore
}

// NewRunner creates a Runner bound to the standard streams.
func NewRunner() *Runner {
	return &Runner{
		Input:  os.Stdin,
		Output: os.Stdout,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (r *Runner) reader() *bufio.Reader {
	in := r.Input
	if in == nil {
		in = os.Stdin
	}
	return bufio.NewReader(in)
}

func (r *Runner) writer() io.Writer {
	if r.Output == nil {
		return os.Stdout
	}
	return r.Output
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Logger
}

// Run plays the storyline from its root until a leaf is reached. name and
// sessionID feed session persistence and may be empty when no Store is
// configured; an existing session for sessionID is resumed from its saved
// position.
func (r *Runner) Run(ctx context.Context, name string, sl *story.Storyline, sessionID string) error {
	rootID, ok := sl.RootID()
	if !ok {
		return fmt.Errorf("storyline %q has no root", name)
	}

	sess := &story.Session{Storyline: name}
	current := rootID
	if r.Store != nil && sessionID != "" {
		resumed, id, err := r.resume(ctx, name, sl, sessionID)
		if err != nil {
			return err
		}
		if resumed != nil {
			sess = resumed
			current = id
		}
	}

	in := r.reader()
	out := r.writer()

	for {
		beat, err := sl.Value(current)
		if err != nil {
			return fmt.Errorf("reading node %d: %w", current, err)
		}

		fmt.Fprintln(out, "-------------------------------------------")
		fmt.Fprintln(out, "Story:")
		fmt.Fprintln(out, r.render(beat.Outcome))
		fmt.Fprintln(out, "-------------------------------------------")

		childIDs, err := sl.ChildrenIDs(current)
		if err != nil {
			return fmt.Errorf("listing choices for node %d: %w", current, err)
		}
		if len(childIDs) == 0 {
			fmt.Fprintln(out, "End of story reached. Thanks for playing!")
			if r.Store != nil && sessionID != "" {
				if err := r.Store.Delete(ctx, sessionID); err != nil {
					r.logger().Warn("failed to clear finished session", "session", sessionID, "err", err)
				}
			}
			return nil
		}

		fmt.Fprintln(out, "Choose your next action:")
		for i, id := range childIDs {
			child, err := sl.Value(id)
			if err != nil {
				return fmt.Errorf("reading choice %d: %w", id, err)
			}
			fmt.Fprintf(out, "%d. %s\n", i+1, child.Action)
		}

		choice, err := r.promptChoice(in, out, len(childIDs))
		if err != nil {
			return err
		}

		sess.Step(choice)
		current = childIDs[choice-1]

		if r.Store != nil && sessionID != "" {
			if err := r.Store.Save(ctx, sessionID, sess); err != nil {
				r.logger().Warn("failed to save session", "session", sessionID, "err", err)
			}
		}
	}
}

// resume loads the saved session and replays its choice path. A missing
// session is not an error: the story starts over.
func (r *Runner) resume(ctx context.Context, name string, sl *story.Storyline, sessionID string) (*story.Session, int, error) {
	sess, err := r.Store.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, story.ErrSessionNotFound) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("loading session %q: %w", sessionID, err)
	}
	if sess.Storyline != name {
		return nil, 0, fmt.Errorf("session %q belongs to storyline %q, not %q", sessionID, sess.Storyline, name)
	}

	id, err := Replay(sl, sess.Path)
	if err != nil {
		return nil, 0, fmt.Errorf("resuming session %q: %w", sessionID, err)
	}
	r.logger().Debug("session resumed", "session", sessionID, "steps", len(sess.Path))
	return sess, id, nil
}

// Replay walks the storyline from its root following a path of 1-based
// choice indexes and returns the node id it lands on.
func Replay(sl *story.Storyline, path []int) (int, error) {
	current, ok := sl.RootID()
	if !ok {
		return 0, fmt.Errorf("storyline has no root")
	}
	for step, choice := range path {
		childIDs, err := sl.ChildrenIDs(current)
		if err != nil {
			return 0, err
		}
		if choice < 1 || choice > len(childIDs) {
			return 0, fmt.Errorf("step %d: choice %d out of range 1-%d", step+1, choice, len(childIDs))
		}
		current = childIDs[choice-1]
	}
	return current, nil
}

func (r *Runner) promptChoice(in *bufio.Reader, out io.Writer, n int) (int, error) {
	for {
		fmt.Fprintf(out, "Enter your choice (1-%d): ", n)
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF {
				return 0, fmt.Errorf("input closed before a choice was made")
			}
			return 0, fmt.Errorf("reading choice: %w", err)
		}
		choice, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil || choice < 1 || choice > n {
			fmt.Fprintf(out, "Invalid choice. Please enter a number between 1 and %d.\n", n)
			continue
		}
		return choice, nil
	}
}

func (r *Runner) render(text string) string {
	if r.Renderer == nil {
		return text
	}
	rendered, err := r.Renderer(text)
	if err != nil {
		r.logger().Warn("content renderer failed, falling back to plain text", "err", err)
		return text
	}
	return strings.TrimRight(rendered, "\n")
}
