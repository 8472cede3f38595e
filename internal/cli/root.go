// Package cli implements the credify command-line interface using
// Cobra. Each subcommand maps to an engine operation (log, profile,
// streak, challenges, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "credify",
	Short: "credify — Level up your life",
	Long: `credify is a local-first life tracker with a gamification engine.
Log expenses, workouts, water, meditation and journaling; earn XP,
keep streaks alive, unlock achievements and complete daily challenges.

All data stays on your machine.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
