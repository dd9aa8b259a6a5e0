package main

import (
	"github.com/spf13/cobra"

	"github.com/lawdesk/advocate-diary/internal/cache"
	"github.com/lawdesk/advocate-diary/internal/config"
	"github.com/lawdesk/advocate-diary/internal/database"
	"github.com/lawdesk/advocate-diary/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the diary HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Initialize(cfg.DatabasePath)
		if err != nil {
			return err
		}

		catalog, err := config.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			return err
		}

		cacheService := cache.NewCache(cfg.CacheSize, cfg.CacheTTL)

		srv := server.New(cfg, db, cacheService, catalog, log)

		log.Info("Starting Advocate Diary",
			"host", cfg.Host,
			"port", cfg.Port,
			"database", cfg.DatabasePath,
		)

		return srv.Run()
	},
}
