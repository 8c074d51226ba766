package allocation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("allocation not found")

type StudentAllocation struct {
	StudentID        uuid.UUID
	OrganizationID   uuid.UUID
	OrganizationName string
	Project          string
	Score            int
	RunID            uuid.UUID
	AllocatedAt      time.Time
}

type Run struct {
	ID          uuid.UUID
	StartedAt   time.Time
	FinishedAt  time.Time
	Students    int
	Assignments []Assignment
}

// Repository persists the result of a run. ReplaceAll must swap the whole
// assignment set atomically: on error the previous set stays in place.
type Repository interface {
	ReplaceAll(ctx context.Context, runID uuid.UUID, allocatedAt time.Time, items []Assignment) error
	FindByStudentID(ctx context.Context, studentID uuid.UUID) (StudentAllocation, error)
}
