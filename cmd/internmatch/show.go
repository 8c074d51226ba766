package main

import (
	"context"
	"fmt"
	"io"

	"intern-match/internal/app"
	"intern-match/internal/domain/allocation"
	"intern-match/internal/delivery/http/dto"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <student-id>",
	Short: "Print a student's current assignment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid student id %q: %w", args[0], err)
		}
		asJSON, _ := cmd.Flags().GetBool("json")

		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			a, err := c.AllocationUC.GetStudentAllocation(ctx, id)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), dto.NewStudentAllocationResponse(a))
			}
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s / %s (score %d, run %s)\n",
				a.StudentID, a.OrganizationName, a.Project, a.Score, a.RunID); err != nil {
				return err
			}

			b, ok, err := c.AllocationUC.Explain(ctx, a)
			if err != nil || !ok {
				return err
			}
			return writeBreakdown(cmd.OutOrStdout(), b)
		})
	},
}

func writeBreakdown(w io.Writer, b allocation.Breakdown) error {
	_, err := fmt.Fprintf(w, "  skills %d x2, location %d, internship type %d = %d\n",
		b.SkillMatch, b.LocationMatch, b.InternshipTypeMatch, b.Total)
	return err
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().Bool("json", false, "print the assignment as JSON")
}
