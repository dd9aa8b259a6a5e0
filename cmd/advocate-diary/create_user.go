package main

import (
	"github.com/spf13/cobra"

	"github.com/lawdesk/advocate-diary/internal/database"
	"github.com/lawdesk/advocate-diary/internal/repository"
)

var (
	flagEmail    string
	flagPassword string
)

// create-user bootstraps the first login; the API register endpoint
// covers the rest.
var createUserCmd = &cobra.Command{
	Use:   "create-user <username>",
	Short: "Register a diary login",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Initialize(cfg.DatabasePath)
		if err != nil {
			return err
		}

		users := repository.NewUserRepository(db, log)
		if err := users.Register(args[0], flagEmail, flagPassword); err != nil {
			return err
		}

		log.Info("user created", "username", args[0])
		return nil
	},
}

func init() {
	createUserCmd.Flags().StringVar(&flagEmail, "email", "", "email address")
	createUserCmd.Flags().StringVar(&flagPassword, "password", "", "password (required)")
	_ = createUserCmd.MarkFlagRequired("password")
}
