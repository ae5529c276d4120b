package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/fleet/internal/config"
	"github.com/MrJamesThe3rd/fleet/internal/logging"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "fleet",
	Short:         "Fleet management API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}

		logging.New(cfg.App.Env, os.Stdout)

		return nil
	},
}

func main() {
	rootCmd.AddCommand(serveCmd(), migrateCmd(), createUserCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
