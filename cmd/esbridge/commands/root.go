package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	// Define root command
	rootCmd := &cobra.Command{
		Use:   "esbridge",
		Short: "Asynchronous option-driven adapter for a remote search engine",
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "path to configuration file")

	// Add subcommands
	rootCmd.AddCommand(
		NewHealthCommand(),
		NewVersionCommand(),
	)

	return rootCmd
}
