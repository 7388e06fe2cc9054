// Package cmd - stockd CLI commands
package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jaksa-v/stock-tracker/internal/pkg/config"
	"github.com/jaksa-v/stock-tracker/internal/pkg/logger"
)

const (
	serviceName    = "stock-tracker"
	serviceVersion = "1.0.0"
)

// cfg is loaded once before any subcommand runs
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "stockd",
	Short: "Stock price tracking service",
	Long: `Stock price tracking service.

Commands:
    serve          start the HTTP API server
    fetch-prices   fetch latest quotes for all stocks and store snapshots
    seed-stocks    seed the stock directory with the default symbols
`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		if err := logger.Init(logger.Config{
			Level:          cfg.Logging.Level,
			Format:         cfg.Logging.Format,
			FileEnabled:    cfg.Logging.FileEnabled,
			FilePath:       cfg.Logging.FilePath,
			RotationSize:   cfg.Logging.RotationSize,
			RetentionDays:  cfg.Logging.RetentionDays,
			ServiceName:    serviceName,
			ServiceVersion: serviceVersion,
		}); err != nil {
			return err
		}

		return nil
	},
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		return err
	}
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(fetchPricesCmd)
	rootCmd.AddCommand(seedStocksCmd)
}
