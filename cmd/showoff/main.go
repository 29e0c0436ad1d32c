package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/showoff/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "showoff",
	Short:   "Read-only photo album viewer",
	Long: `showoff serves photo albums stored on disk as HTML pages.

Album metadata lives in SQLite or PostgreSQL; image files live under the
storage path. Albums may require a username and password.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		files, _ := cmd.Flags().GetStringSlice("config")

		cfg, err := config.Load(files, cmd.Flags())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		setupLogging(cfg.Env, cfg.Log.Level)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSlice("config", nil, "config file path, repeat to merge (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("db-type", "", "database type: sqlite, postgres (default: sqlite, env: SHOWOFF_DATABASE_TYPE)")
	rootCmd.PersistentFlags().String("db-dsn", "", "database connection string (default: showoff.db, env: SHOWOFF_DATABASE_DSN)")
	rootCmd.PersistentFlags().String("storage-path", "", "album directory (default: ./albums, env: SHOWOFF_STORAGE_PATH)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (env: SHOWOFF_LOG_LEVEL)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
