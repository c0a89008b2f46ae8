package main

import (
	"fmt"
	"os"

	"github.com/bramblekit/bramble/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the storyline HTTP server",
	Long:  `Serves the stored storylines over a JSON API, with Swagger documentation at /swagger and metrics at /metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := cli.ServeOptions{}
		opts.ConfigPath, _ = cmd.Flags().GetString("config")
		opts.Debug, _ = cmd.Flags().GetBool("debug")
		opts.Port, _ = cmd.Flags().GetString("port")

		if err := cli.RunServe(opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}
