package main

import (
	"fmt"
	"os"

	"github.com/bramblekit/bramble/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bramble",
	Short: "Bramble is a branching-storyline engine",
	Long:  `Bramble lets you author, play and serve interactive branching stories stored as plain text documents.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Path to the bramble configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}
