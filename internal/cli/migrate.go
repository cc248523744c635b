package cli

import (
	"fmt"

	"github.com/Dhoini/olio-backoffice/internal/app"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long: `Applies the embedded SQL migrations that are not yet recorded in
schema_migrations. The product catalog cache is dropped afterwards because
migrations may change the seeded catalog.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	dbClient, err := app.OpenDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer dbClient.Close()

	applied, err := dbClient.Migrate(ctx)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Database schema is up to date")
		return nil
	}
	for _, version := range applied {
		fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", version)
	}

	cache, err := app.OpenCache(ctx, cfg, log)
	if err != nil {
		log.Warnw("Product cache not invalidated", "error", err)
		return nil
	}
	if cache != nil {
		defer cache.Close()
		if err := cache.Invalidate(ctx); err != nil {
			log.Warnw("Product cache not invalidated", "error", err)
		}
	}
	return nil
}
