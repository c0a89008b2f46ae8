package main

import (
	"fmt"
	"os"

	"github.com/bramblekit/bramble/internal/cli"
	"github.com/spf13/cobra"
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play <storyline>",
	Short: "Play a storyline interactively",
	Long:  `Walks the storyline from its opening scene, prompting for a choice at every branch until an ending is reached.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := cli.PlayOptions{}
		opts.ConfigPath, _ = cmd.Flags().GetString("config")
		opts.Debug, _ = cmd.Flags().GetBool("debug")
		opts.File, _ = cmd.Flags().GetString("file")
		opts.SessionID, _ = cmd.Flags().GetString("session")
		opts.Fresh, _ = cmd.Flags().GetBool("fresh")
		opts.Plain, _ = cmd.Flags().GetBool("plain")
		if len(args) > 0 {
			opts.Name = args[0]
		}

		if opts.Name == "" && opts.File == "" {
			fmt.Println("Error: provide a storyline name or --file.")
			os.Exit(1)
		}

		if err := cli.RunPlay(opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringP("file", "f", "", "Play a serialized storyline file directly, bypassing the store")
	playCmd.Flags().StringP("session", "s", "", "Session ID for resumable progress")
	playCmd.Flags().Bool("fresh", false, "Discard any saved progress for the session before playing")
	playCmd.Flags().Bool("plain", false, "Disable markdown rendering and the banner")

	// Make 'play' the default if no command is provided
	rootCmd.Run = playCmd.Run
	rootCmd.Args = playCmd.Args
}
