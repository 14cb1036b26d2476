package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "landersim",
	Short: "Powered-descent landing simulator",
	Long: "landersim simulates powered vertical descents under gravity, wind, and sensor " +
		"noise, estimates safe-landing probability over Monte Carlo batches, and recommends " +
		"configuration changes that improve it.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(replayCmd)
}
