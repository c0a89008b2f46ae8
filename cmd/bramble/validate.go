package main

import (
	"fmt"
	"os"

	"github.com/bramblekit/bramble/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <storyline>",
	Short: "Check a storyline document for consistency",
	Long:  `Parses the storyline and reports malformed lines, unbalanced end markers or undecodable beats.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := cli.ValidateOptions{}
		opts.ConfigPath, _ = cmd.Flags().GetString("config")
		opts.File, _ = cmd.Flags().GetString("file")
		if len(args) > 0 {
			opts.Name = args[0]
		}

		if opts.Name == "" && opts.File == "" {
			fmt.Println("Error: provide a storyline name or --file.")
			os.Exit(1)
		}

		if err := cli.RunValidate(opts); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored storylines",
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		if err := cli.RunList(configPath); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(listCmd)

	validateCmd.Flags().StringP("file", "f", "", "Validate a serialized storyline file directly")
}
