package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/unada-gw/trustform/internal/app"
	"github.com/unada-gw/trustform/pkg/clientip"
	"github.com/unada-gw/trustform/pkg/config"
	"github.com/unada-gw/trustform/pkg/logger"
	"github.com/unada-gw/trustform/pkg/requestid"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}

			a, err := app.New(cmd.Context(), cfg, nil, log)
			if err != nil {
				log.Error("start application", logger.Error(err))
				return err
			}
			defer a.Close()

			if err := a.Run(cmd.Context()); err != nil {
				log.Error("server stopped", logger.Error(err))
				return err
			}
			return nil
		},
	}
}

// load reads the configuration and installs the process logger.
func load() (app.Config, *slog.Logger, error) {
	cfg, err := config.Load[app.Config]()
	if err != nil {
		slog.Error("load configuration", logger.Error(err))
		return app.Config{}, nil, err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.ServiceName),
		logger.WithAttr(slog.String("version", buildVersion), slog.String("commit", buildCommit)),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	)
	logger.SetAsDefault(log)
	return cfg, log, nil
}
