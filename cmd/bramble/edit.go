package main

import (
	"fmt"
	"os"

	"github.com/bramblekit/bramble/internal/cli"
	"github.com/spf13/cobra"
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit <storyline>",
	Short: "Author a storyline interactively",
	Long:  `Opens the storyline in the command-line editor. A name that does not exist yet starts an empty storyline.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := cli.EditOptions{Name: args[0]}
		opts.ConfigPath, _ = cmd.Flags().GetString("config")
		opts.Debug, _ = cmd.Flags().GetBool("debug")

		if err := cli.RunEdit(opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
