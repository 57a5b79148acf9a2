package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tutorcenter/internal/app"
	"tutorcenter/internal/cli/ui"
	"tutorcenter/internal/infrastructure/storage/postgres"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate <command> [args...]",
		Short: "Run goose migrations (up, down, status, redo, version, up-to <v>)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			pool, err := app.OpenPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := postgres.Migrate(ctx, pool.Pool, args[0], args[1:]...); err != nil {
				return err
			}
			ui.Success(cmd.OutOrStdout(), "migrate %s: done", args[0])
			return nil
		},
	}
}
