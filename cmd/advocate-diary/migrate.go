package main

import (
	"github.com/spf13/cobra"

	"github.com/lawdesk/advocate-diary/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Initialize(cfg.DatabasePath)
		if err != nil {
			return err
		}

		if err := database.Migrate(db); err != nil {
			return err
		}

		log.Info("Database migrations completed successfully")
		return nil
	},
}
