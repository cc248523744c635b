package cli

import (
	"os/signal"
	"syscall"

	"github.com/Dhoini/olio-backoffice/internal/app"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.Auth.JWTSecret == "" {
		log.Errorw("JWT secret is not set, refusing to start")
		return errMissingSecret
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Infow("Back-office starting up", "env", cfg.App.Env, "port", cfg.App.Port)
	application, err := app.NewApp(ctx, cfg, log)
	if err != nil {
		log.Errorw("Failed to initialize application", "error", err)
		return err
	}
	defer application.Close()

	return application.Run(ctx)
}
