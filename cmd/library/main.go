// @title                       Library API
// @version                     1.0
// @description                 Authors, books, members and rentals of a library.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	stdLog "log"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/helcv/Valcon-Internship-Library-Project/library/app"
	"github.com/helcv/Valcon-Internship-Library-Project/library/config"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		stdLog.Fatal("load envs from .env ", err)
	}
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() config.Config {
	return config.NewConfig(
		config.WithLogLevel(zapcore.InfoLevel),
		config.WithWriteTimeout(time.Minute),
		config.WithTokenTTL(7*24*time.Hour),
	)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "library",
		Short:        "Library management API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Run(loadConfig())
			return nil
		},
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newAdminCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			app.Run(loadConfig())
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply or inspect database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Migrate(cmd.Context(), loadConfig(), args[0])
		},
	}
}

func newAdminCmd() *cobra.Command {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}

	var email, userName string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account, prompting for its password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd, "Password: ")
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			created, err := app.CreateAdmin(ctx, loadConfig(), email, userName, password)
			if err != nil {
				return err
			}
			if !created {
				return errors.Errorf("email %s is already registered", email)
			}
			cmd.Printf("admin %s created\n", userName)
			return nil
		},
	}
	create.Flags().StringVar(&email, "email", "", "admin email")
	create.Flags().StringVar(&userName, "username", "admin", "admin user name")
	_ = create.MarkFlagRequired("email")

	admin.AddCommand(create)
	return admin
}

func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	cmd.Print(prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	cmd.Println()
	if err != nil {
		return "", errors.Wrap(err, "read password")
	}
	return strings.TrimSpace(string(b)), nil
}
