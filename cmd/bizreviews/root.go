package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deppfellow/bizreviews/internal/config"
	"github.com/deppfellow/bizreviews/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "bizreviews",
	Short: "Businesses and reviews REST API",
	Long: `bizreviews serves a REST API for businesses and the reviews embedded
in them, backed by MongoDB. Configuration is read from BIZREVIEWS_* environment
variables and an optional .env file.`,
	SilenceUsage: true,
}

// bootstrap loads the configuration and builds the application logger.
func bootstrap() (*config.Config, *logger.LoggerService, zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, zerolog.Nop(), err
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, loggerService, log, nil
}
