package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/deppfellow/form-builder/internal/database"
	"github.com/deppfellow/form-builder/internal/handler"
	"github.com/deppfellow/form-builder/internal/repository"
	"github.com/deppfellow/form-builder/internal/router"
	"github.com/deppfellow/form-builder/internal/server"
	"github.com/deppfellow/form-builder/internal/service"
)

const defaultShutdownTimeout = 30 * time.Second

var (
	noWorker     bool
	skipMigrate  bool
	shutdownWait time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the background job workers",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&noWorker, "no-worker", false, "do not process background jobs in this process")
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not apply migrations on startup")
	serveCmd.Flags().DurationVar(&shutdownWait, "shutdown-timeout", defaultShutdownTimeout, "how long to wait for in-flight requests on shutdown")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, loggerService, err := bootstrap()
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	// Local environments run `formbuilder migrate` explicitly.
	if cfg.Primary.Env != "local" && !skipMigrate {
		if err := database.Migrate(cmd.Context(), log, cfg); err != nil {
			log.Error().Err(err).Msg("failed to migrate database")
			return err
		}
	}

	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		return err
	}

	services, err := service.NewServices(srv, repository.NewRepositories(srv))
	if err != nil {
		log.Error().Err(err).Msg("could not create services")
		return err
	}

	r := router.NewRouter(srv, handler.NewHandlers(srv, services))
	srv.SetupHTTPServer(r)

	if !noWorker {
		if err := srv.StartJobs(); err != nil {
			log.Error().Err(err).Msg("failed to start background jobs")
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("server stopped")
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWait)
		defer cancel()
		return errors.Join(err, srv.Shutdown(shutdownCtx))
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWait)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}
