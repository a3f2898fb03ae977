package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"lurnix/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lurnix",
	Short: "Terminal client for the Lurnix adaptive learning platform",
	Long: "Lurnix is a terminal client for the adaptive learning platform: " +
		"personalized lessons, module quizzes, and audio-only mock interviews.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// .env is a developer convenience; absence is not an error.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LURNIX_DB env var)")

	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then LURNIX_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
