package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deppfellow/form-builder/internal/config"
	"github.com/deppfellow/form-builder/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "formbuilder",
	Short: "Form builder API server",
	Long: `formbuilder serves the form builder API: users create forms and
read aggregate visit and submission statistics for the forms they own.

Configuration is read from FORMBUILDER_ prefixed environment variables,
optionally loaded from a .env file in the working directory.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, previewCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads the config and builds the application logger shared by
// every subcommand. The caller must Shutdown the returned LoggerService.
func bootstrap() (*config.Config, *zerolog.Logger, *logger.LoggerService, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, &log, loggerService, nil
}
