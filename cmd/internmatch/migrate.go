package main

import (
	"context"

	"intern-match/internal/app"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			if err := c.Migrate(ctx); err != nil {
				return err
			}
			c.Logger.Printf("migrate status=ok")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
