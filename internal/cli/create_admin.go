package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/Dhoini/olio-backoffice/internal/app"
	"github.com/Dhoini/olio-backoffice/internal/repository/postgres"
	"github.com/spf13/cobra"
)

var (
	errMissingSecret = errors.New("auth.jwtSecret (AUTH_JWTSECRET) must be set")

	adminEmail    string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Provision the administrator account",
	Long: `Creates the single administrator account. The notification email starts
equal to the login email and can be changed later from the settings page.
The password can be passed with --password or through ADMIN_PASSWORD.`,
	RunE: runCreateAdmin,
}

func init() {
	rootCmd.AddCommand(createAdminCmd)

	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "administrator login email")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "administrator password (default $ADMIN_PASSWORD)")
	_ = createAdminCmd.MarkFlagRequired("email")
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	password := adminPassword
	if password == "" {
		password = os.Getenv("ADMIN_PASSWORD")
	}
	if password == "" {
		return errors.New("password is required: use --password or ADMIN_PASSWORD")
	}

	// токены здесь не выпускаются, но сервис требует секрет
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = "provisioning"
	}

	ctx := cmd.Context()
	dbClient, err := app.OpenDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer dbClient.Close()

	authService, err := app.NewAuthService(cfg, postgres.NewPostgresAdminStore(dbClient.DB(), log), log)
	if err != nil {
		return err
	}

	account, err := authService.CreateAdmin(ctx, adminEmail, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "administrator %s created (id %s)\n", account.Email, account.ID)
	return nil
}
