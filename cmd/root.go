package cmd

import (
	"github.com/abhisek/liftlog/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "liftlog",
	Short:        "Offline-first workout tracker",
	Long:         "liftlog records workout sessions locally, derives stats and progression, and syncs with a remote store when logged in.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, showStatus)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LIFTLOG_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides LIFTLOG_CONFIG env var)")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(prevCmd)
	rootCmd.AddCommand(finishCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(exercisesCmd)
	rootCmd.AddCommand(bodyweightCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(levelCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(challengeCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file / LIFTLOG_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
