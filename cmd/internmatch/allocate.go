package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"intern-match/internal/app"
	"intern-match/internal/delivery/http/dto"
	"intern-match/internal/domain/allocation"

	"github.com/spf13/cobra"
)

var allocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Run the allocator and replace the stored assignments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			run, err := c.AllocationUC.Run(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), dto.NewAllocationRunResponse(run))
			}
			return writeRun(cmd.OutOrStdout(), run)
		})
	},
}

func init() {
	rootCmd.AddCommand(allocateCmd)
	allocateCmd.Flags().Bool("json", false, "print the run as JSON")
}

func writeRun(w io.Writer, run allocation.Run) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "run %s: %d of %d students assigned\n", run.ID, len(run.Assignments), run.Students)
	fmt.Fprintln(tw, "STUDENT\tORGANIZATION\tPROJECT\tSCORE")
	for _, a := range run.Assignments {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", a.StudentID, a.OrganizationID, a.Project, a.Score)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
