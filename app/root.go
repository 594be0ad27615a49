// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "collaborativefolders",
	Short: "collaborativefolders serves the collaborative-folder activity pages",
	Long: `collaborativefolders serves the collaborative-folder activity of a learning
platform. It provisions a shared remote folder per activity instance and
issues each authorized user a personal access link to it.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
