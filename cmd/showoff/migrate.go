package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sagarc03/showoff/config"
	"github.com/sagarc03/showoff/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the album tables",
	Long: `Create the album, settings and image tables if they do not exist
and validate their schema. serve does the same on startup.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		db, err := database.Open(cmd.Context(), cfg.Database.Connection())
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer func() { _ = db.Close() }()

		slog.Info("database ready",
			"type", cfg.Database.Type,
			"albums", cfg.Database.Tables.Albums,
			"settings", cfg.Database.Tables.Settings,
			"images", cfg.Database.Tables.Images,
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
