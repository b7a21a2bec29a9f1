package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unada-gw/trustform/internal/app"
	"github.com/unada-gw/trustform/internal/db"
	"github.com/unada-gw/trustform/pkg/logger"
	"github.com/unada-gw/trustform/pkg/pg"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			if cfg.StorageDriver != app.StoragePostgres {
				return fmt.Errorf("%w: migrate needs STORAGE_DRIVER=%s", app.ErrInvalidConfig, app.StoragePostgres)
			}

			pool, err := pg.Connect(cmd.Context(), cfg.PG)
			if err != nil {
				log.Error("connect to postgres", logger.Error(err))
				return err
			}
			defer pool.Close()

			if err := pg.Migrate(cmd.Context(), pool, db.Migrations(), cfg.PG, log); err != nil {
				log.Error("apply migrations", logger.Error(err))
				return err
			}
			log.Info("migrations applied")
			return nil
		},
	}
}
