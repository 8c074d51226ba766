package main

import (
	"context"
	"log"
	"time"

	"intern-match/internal/app"
	"intern-match/internal/config"

	"github.com/spf13/cobra"
)

const name = "internmatch"

var (
	timeout time.Duration

	rootCmd = &cobra.Command{
		Use:           name,
		Short:         "internmatch manages the internship allocation database",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall deadline for the command")
}

// withContainer loads config from the environment, connects and runs fn
// under the command deadline.
func withContainer(cmd *cobra.Command, fn func(ctx context.Context, c *app.Container) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	c, err := app.NewContainer(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Printf("close error: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()
	return fn(ctx, c)
}
