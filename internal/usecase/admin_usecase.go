package usecase

import (
	"context"
	"fmt"

	"intern-match/internal/domain/organization"
	"intern-match/internal/domain/student"
)

type AdminData struct {
	Students      []student.Summary
	Organizations []organization.Summary
}

type AdminUsecase interface {
	ListData(ctx context.Context) (AdminData, error)
}

type Admin struct {
	students student.Repository
	orgs     organization.Repository
}

func NewAdminUsecase(students student.Repository, orgs organization.Repository) *Admin {
	return &Admin{students: students, orgs: orgs}
}

func (u *Admin) ListData(ctx context.Context) (AdminData, error) {
	ss, err := u.students.ListSummaries(ctx)
	if err != nil {
		return AdminData{}, fmt.Errorf("%w: list students: %v", ErrInternal, err)
	}
	orgs, err := u.orgs.ListSummaries(ctx)
	if err != nil {
		return AdminData{}, fmt.Errorf("%w: list organizations: %v", ErrInternal, err)
	}
	return AdminData{Students: ss, Organizations: orgs}, nil
}
