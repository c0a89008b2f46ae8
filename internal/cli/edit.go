package cli

import (
	"context"
	"errors"
	"os"

	"github.com/bramblekit/bramble/internal/config"
	"github.com/bramblekit/bramble/pkg/runner"
	"github.com/bramblekit/bramble/pkg/story"
)

// EditOptions configures the edit command.
type EditOptions struct {
	ConfigPath string
	Name       string
	Debug      bool
}

// RunEdit opens the named storyline in the interactive editor. A name
// that does not exist yet starts an empty storyline, so edit doubles as
// the authoring entry point.
func RunEdit(opts EditOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	store, err := OpenStorylineStore(cfg)
	if err != nil {
		return err
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	var sl *story.Storyline
	text, err := store.Load(sigCtx, opts.Name)
	switch {
	case err == nil:
		sl, err = story.ParseStoryline(text)
		if err != nil {
			return err
		}
	case errors.Is(err, story.ErrStorylineNotFound):
		printSystemMessage("Storyline %q does not exist yet, starting empty.", opts.Name)
		sl, err = story.NewStoryline()
		if err != nil {
			return err
		}
	default:
		return err
	}

	e := &runner.Editor{
		Input:  os.Stdin,
		Output: os.Stdout,
		Store:  store,
	}
	return handleExecutionError(e.Edit(sigCtx, opts.Name, sl))
}
