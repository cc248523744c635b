package cli

import (
	"fmt"
	"os"

	"github.com/Dhoini/olio-backoffice/internal/config"
	"github.com/Dhoini/olio-backoffice/pkg/logger"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "backoffice",
	Short: "Back-office del frantoio: ordini, messaggi e clienti",
	Long: `backoffice serves the REST API used by the public order and contact forms
and by the administrator panel. It also carries maintenance commands for the
database schema and for provisioning the administrator account.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to a .env file loaded outside production")
}

// Execute запускает корневую команду
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap загружает конфигурацию и создает логгер для команды
func bootstrap() (*config.Config, *logger.Logger, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.New(logger.ParseLevel(cfg.Log.Level), cfg.IsProduction())
	return cfg, log, nil
}
