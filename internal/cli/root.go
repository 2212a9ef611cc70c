// Package cli implements the questforge command-line interface using
// Cobra. Each subcommand maps to an engine capability (status, chest,
// store, tasks, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "questforge",
	Short: "questforge — gamified daily progression engine",
	Long: `questforge turns daily routine into a progression grind.
Tasks, habits, food, water, and workouts earn XP; ranks, streaks,
loot chests, and a coin store keep the loop going.`,
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
