package cmd

import (
	"github.com/spf13/cobra"
)

const appName = "rastercli"

// Execute runs the rastercli root command.
func Execute() error {
	rootCmd := &cobra.Command{
		Use:   appName,
		Short: appName + " - convert PDFs to PWG-Raster or Apple URF print streams",
	}

	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newServeCommand())

	return rootCmd.Execute()
}
