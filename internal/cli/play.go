package cli

import (
	"context"
	"fmt"

	"github.com/bramblekit/bramble/internal/config"
	"github.com/bramblekit/bramble/internal/presentation/tui"
	"github.com/bramblekit/bramble/pkg/runner"
)

// PlayOptions configures the play command.
type PlayOptions struct {
	ConfigPath string
	Name       string
	File       string // direct path to a serialized storyline, bypasses the store
	SessionID  string
	Fresh      bool
	Plain      bool // disable markdown rendering and the banner
	Debug      bool
}

// RunPlay executes one interactive playthrough.
func RunPlay(opts PlayOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	logger := createLogger(cfg, opts.Debug)

	store, err := OpenStorylineStore(cfg)
	if err != nil {
		return err
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	sl, name, err := materializeStoryline(sigCtx, store, opts.Name, opts.File)
	if err != nil {
		return err
	}

	interactive := tui.IsInteractive() && !opts.Plain
	if interactive && cfg.Render.Banner {
		tui.PrintBanner()
	}

	r := runner.NewRunner()
	r.Logger = logger
	if interactive && cfg.Render.Markdown {
		r.Renderer = tui.NewRenderer()
	}

	if opts.SessionID != "" {
		sessions, err := OpenSessionStore(cfg)
		if err != nil {
			return err
		}
		r.Store = sessions
		if opts.Fresh {
			if err := sessions.Delete(sigCtx, opts.SessionID); err != nil {
				logger.Debug("fresh start: no session to clear", "session", opts.SessionID, "err", err)
			}
		}
		logger.Info("session active", "session_id", opts.SessionID)
	}

	runErr := r.Run(sigCtx, name, sl, opts.SessionID)
	if sigCtx.Err() != nil && runErr == nil {
		runErr = sigCtx.Err()
	}
	if isInterrupted(runErr) {
		fmt.Println()
		printSystemMessage("Interrupted.")
	}
	return handleExecutionError(runErr)
}
