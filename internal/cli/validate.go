package cli

import (
	"context"
	"fmt"

	"github.com/bramblekit/bramble/internal/config"
)

// ValidateOptions configures the validate command.
type ValidateOptions struct {
	ConfigPath string
	Name       string
	File       string
}

// RunValidate parses the storyline and reports the first problem found.
func RunValidate(opts ValidateOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	store, err := OpenStorylineStore(cfg)
	if err != nil {
		return err
	}

	sl, name, err := materializeStoryline(context.Background(), store, opts.Name, opts.File)
	if err != nil {
		return err
	}

	fmt.Printf("Storyline %q is valid (%d nodes).\n", name, sl.Len())
	return nil
}

// RunList prints the names of all stored storylines.
func RunList(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	store, err := OpenStorylineStore(cfg)
	if err != nil {
		return err
	}

	names, err := store.List(context.Background())
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No storylines found.")
		return nil
	}
	for _, name := range names {
		fmt.Println("- " + name)
	}
	return nil
}
