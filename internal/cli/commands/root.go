// Package commands implements the admin CLI.
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tutorcenter/internal/app"
	"tutorcenter/internal/cli/ui"
	"tutorcenter/internal/config"
)

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "tutoradmin",
		Short: "Administer the tutoring center database",
		Long: `tutoradmin runs migrations, loads demo data and prints operator reports
against the database configured by TUTOR_DATABASE_URL.`,
		SilenceUsage: true,
	}

	root.AddCommand(newMigrateCommand())
	root.AddCommand(newSeedCommand())
	root.AddCommand(newAlertsCommand())
	root.AddCommand(newInventoryCommand())
	root.AddCommand(newNextCodeCommand())

	return root
}

// Execute runs the root command.
func Execute() error {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		ui.Warning(root.ErrOrStderr(), "%v", err)
		return err
	}
	return nil
}

// loadConfig reads configuration and installs the default logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if _, err := app.NewLogger(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// withContainer opens the database, builds the service graph and runs fn.
func withContainer(cmd *cobra.Command, fn func(ctx context.Context, c *app.Container) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// Schema changes only happen through the migrate command.
	cfg.AutoMigrate = false

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	c, pool, err := app.Open(ctx, cfg, nil)
	if err != nil {
		return fmt.Errorf("open application: %w", err)
	}
	defer pool.Close()

	return fn(ctx, c)
}
