package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/deppfellow/bizreviews/internal/database"
	"github.com/deppfellow/bizreviews/internal/handler"
	"github.com/deppfellow/bizreviews/internal/repository"
	"github.com/deppfellow/bizreviews/internal/router"
	"github.com/deppfellow/bizreviews/internal/server"
	"github.com/deppfellow/bizreviews/internal/service"
)

const defaultShutdownTimeout = 30 * time.Second

var (
	shutdownTimeout time.Duration
	skipMigrations  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server. Indexes are created on startup unless
--skip-migrations is set. SIGINT and SIGTERM drain in-flight requests before
the store connection is closed.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", defaultShutdownTimeout, "Time allowed for in-flight requests on shutdown")
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "Do not create collection indexes on startup")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, loggerService, log, err := bootstrap()
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		loggerService.Shutdown()
		return err
	}

	if !skipMigrations {
		if err := database.Migrate(cmd.Context(), &log, srv.DB.Businesses()); err != nil {
			log.Error().Err(err).Msg("failed to migrate database")
			_ = srv.Shutdown(context.Background())
			return err
		}
	}

	repos := repository.NewRepositories(srv)
	services := service.NewServices(srv, repos)
	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers)

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			_ = srv.Shutdown(context.Background())
			return err
		}
		return nil
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Warn().Dur("timeout", shutdownTimeout).Msg("shutdown timed out")
		}
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}
