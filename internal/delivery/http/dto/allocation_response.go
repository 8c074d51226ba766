package dto

import (
	"time"

	"intern-match/internal/domain/allocation"

	"github.com/google/uuid"
)

type AssignmentResponse struct {
	StudentID      uuid.UUID `json:"student_id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Project        string    `json:"project"`
	Score          int       `json:"score"`
}

type AllocationRunResponse struct {
	RunID       uuid.UUID            `json:"run_id"`
	AllocatedAt time.Time            `json:"allocated_at"`
	Students    int                  `json:"students"`
	Allocations []AssignmentResponse `json:"allocations"`
}

func NewAllocationRunResponse(run allocation.Run) AllocationRunResponse {
	out := make([]AssignmentResponse, 0, len(run.Assignments))
	for _, a := range run.Assignments {
		out = append(out, AssignmentResponse{
			StudentID:      a.StudentID,
			OrganizationID: a.OrganizationID,
			Project:        a.Project,
			Score:          a.Score,
		})
	}
	return AllocationRunResponse{
		RunID:       run.ID,
		AllocatedAt: run.FinishedAt,
		Students:    run.Students,
		Allocations: out,
	}
}

type StudentAllocationItem struct {
	Organization   string    `json:"organization"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Project        string    `json:"project"`
	Score          int       `json:"score"`
	AllocatedAt    time.Time `json:"allocated_at"`
}

// StudentAllocationResponse wraps the single assignment in a list; a
// student has at most one.
type StudentAllocationResponse struct {
	Allocations []StudentAllocationItem `json:"allocations"`
}

func NewStudentAllocationResponse(a allocation.StudentAllocation) StudentAllocationResponse {
	return StudentAllocationResponse{Allocations: []StudentAllocationItem{{
		Organization:   a.OrganizationName,
		OrganizationID: a.OrganizationID,
		Project:        a.Project,
		Score:          a.Score,
		AllocatedAt:    a.AllocatedAt,
	}}}
}
