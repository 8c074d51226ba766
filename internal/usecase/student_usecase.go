package usecase

import (
	"context"
	"errors"
	"fmt"

	"intern-match/internal/domain/student"
	ucauth "intern-match/internal/usecase/auth"

	"github.com/google/uuid"
)

type StudentUsecase interface {
	GetStudent(ctx context.Context, id uuid.UUID) (student.Student, error)
}

type Student struct {
	students student.Repository
}

func NewStudentUsecase(students student.Repository) *Student {
	return &Student{students: students}
}

func (u *Student) GetStudent(ctx context.Context, id uuid.UUID) (student.Student, error) {
	if id == uuid.Nil {
		return student.Student{}, ErrStudentNotFound
	}
	st, err := u.students.GetStudentByID(ctx, id)
	if err != nil {
		if errors.Is(err, student.ErrNotFound) {
			return student.Student{}, ErrStudentNotFound
		}
		return student.Student{}, fmt.Errorf("%w: get student: %v", ErrInternal, err)
	}
	return ucauth.SanitizeStudent(st), nil
}
