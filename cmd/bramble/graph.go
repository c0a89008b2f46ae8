package main

import (
	"fmt"
	"os"

	"github.com/bramblekit/bramble/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <storyline>",
	Short: "Export the storyline visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of the storyline. With --session, the saved position is highlighted.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := cli.GraphOptions{}
		opts.ConfigPath, _ = cmd.Flags().GetString("config")
		opts.File, _ = cmd.Flags().GetString("file")
		opts.SessionID, _ = cmd.Flags().GetString("session")
		if len(args) > 0 {
			opts.Name = args[0]
		}

		if opts.Name == "" && opts.File == "" {
			fmt.Println("Error: provide a storyline name or --file.")
			os.Exit(1)
		}

		if err := cli.RunGraph(opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().StringP("file", "f", "", "Graph a serialized storyline file directly")
	graphCmd.Flags().StringP("session", "s", "", "Overlay the session's progress on the graph")
}
