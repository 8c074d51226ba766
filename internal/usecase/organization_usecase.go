package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"intern-match/internal/domain/organization"
	"intern-match/internal/pkg/jwt"
	ucauth "intern-match/internal/usecase/auth"

	"github.com/google/uuid"
)

// Principal is the authenticated caller of an operation.
type Principal struct {
	ID   uuid.UUID
	Role string
}

type UpdateProjectsInput struct {
	Projects     []organization.ProjectSpec
	Requirements [][]string
}

type OrganizationUsecase interface {
	GetOrganization(ctx context.Context, id uuid.UUID) (organization.Organization, error)
	UpdateProjects(ctx context.Context, actor Principal, orgID uuid.UUID, in UpdateProjectsInput) (organization.Organization, error)
}

type Organization struct {
	orgs organization.Repository
}

func NewOrganizationUsecase(orgs organization.Repository) *Organization {
	return &Organization{orgs: orgs}
}

func (u *Organization) GetOrganization(ctx context.Context, id uuid.UUID) (organization.Organization, error) {
	if id == uuid.Nil {
		return organization.Organization{}, ErrOrganizationNotFound
	}
	o, err := u.orgs.GetOrganizationByID(ctx, id)
	if err != nil {
		if errors.Is(err, organization.ErrNotFound) {
			return organization.Organization{}, ErrOrganizationNotFound
		}
		return organization.Organization{}, fmt.Errorf("%w: get organization: %v", ErrInternal, err)
	}
	return ucauth.SanitizeOrganization(o), nil
}

// UpdateProjects replaces the organization's project list wholesale. Only
// the organization itself may do so.
func (u *Organization) UpdateProjects(ctx context.Context, actor Principal, orgID uuid.UUID, in UpdateProjectsInput) (organization.Organization, error) {
	if actor.ID == uuid.Nil {
		return organization.Organization{}, ErrUnauthorized
	}
	if actor.Role != jwt.RoleOrganization || actor.ID != orgID {
		return organization.Organization{}, ErrForbidden
	}

	for i := range in.Projects {
		in.Projects[i].Title = strings.TrimSpace(in.Projects[i].Title)
		in.Projects[i].Location = strings.TrimSpace(in.Projects[i].Location)
		in.Projects[i].InternshipType = strings.TrimSpace(in.Projects[i].InternshipType)
		if in.Projects[i].Title == "" {
			return organization.Organization{}, ErrInvalidInput
		}
	}

	projects := organization.ZipProjects(in.Projects, in.Requirements)
	if err := u.orgs.ReplaceProjects(ctx, orgID, projects); err != nil {
		if errors.Is(err, organization.ErrNotFound) {
			return organization.Organization{}, ErrOrganizationNotFound
		}
		return organization.Organization{}, fmt.Errorf("%w: replace projects: %v", ErrInternal, err)
	}

	return u.GetOrganization(ctx, orgID)
}
