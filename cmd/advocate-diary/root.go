package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lawdesk/advocate-diary/internal/config"
	"github.com/lawdesk/advocate-diary/pkg/logger"
)

// Loaded by PersistentPreRunE so every subcommand can use them.
var (
	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "advocate-diary",
	Short: "Advocate Diary is a legal case tracking service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		log, err = logger.NewLogger(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(createUserCmd)
}
