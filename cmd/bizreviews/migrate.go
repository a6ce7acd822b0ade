package main

import (
	"github.com/spf13/cobra"

	"github.com/deppfellow/bizreviews/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the collection indexes and exit",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, loggerService, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	db, err := database.New(cfg, &log)
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to database")
		return err
	}
	defer func() {
		if err := db.Close(cmd.Context()); err != nil {
			log.Error().Err(err).Msg("failed to close database connection")
		}
	}()

	return database.Migrate(cmd.Context(), &log, db.Businesses())
}
