package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vedran77/chirp/internal/config"
	"github.com/vedran77/chirp/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.Store != config.StorePostgres {
			return fmt.Errorf("migrate needs the postgres store, got %q", cfg.Store)
		}

		pool, err := database.Connect(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := database.Migrate(cmd.Context(), pool); err != nil {
			return err
		}
		logrus.Info("schema applied")
		return nil
	},
}
