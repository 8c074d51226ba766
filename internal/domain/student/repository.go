package student

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("student not found")
	ErrDuplicateEmail = errors.New("student email already registered")
)

type Repository interface {
	CreateStudent(ctx context.Context, s Student) error
	GetStudentByID(ctx context.Context, id uuid.UUID) (Student, error)
	GetStudentByEmail(ctx context.Context, email string) (Student, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// ListStudents returns every student in registration order.
	ListStudents(ctx context.Context) ([]Student, error)
	ListSummaries(ctx context.Context) ([]Summary, error)
}
