package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"intern-match/internal/app"
	"intern-match/internal/database/seeder"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo students and organizations",
	Long:  "Insert students and organizations from a YAML fixture. Accounts whose email already exists are skipped. Without --file the bundled demo set is used.",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringP("file", "f", "", "YAML fixture to load instead of the bundled demo set")
	seedCmd.Flags().Bool("migrate", false, "apply migrations before seeding")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	file, _ := cmd.Flags().GetString("file")
	migrate, _ := cmd.Flags().GetBool("migrate")

	seeders := seeder.Defaults()
	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read fixture: %w", err)
		}
		if _, err := seeder.ParseFixture(b); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		seeders = []seeder.Seeder{seeder.FixtureSeeder{Label: filepath.Base(file), Data: b}}
	}

	return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
		if migrate {
			if err := c.Migrate(ctx); err != nil {
				return err
			}
		}
		return seeder.Runner{Seeders: seeders, Logger: c.Logger}.Run(ctx, c.DB)
	})
}
