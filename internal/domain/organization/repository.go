package organization

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("organization not found")
	ErrDuplicateEmail = errors.New("organization email already registered")
)

type Repository interface {
	CreateOrganization(ctx context.Context, o Organization) error
	GetOrganizationByID(ctx context.Context, id uuid.UUID) (Organization, error)
	GetOrganizationByEmail(ctx context.Context, email string) (Organization, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// ListOrganizations returns every organization in registration order
	// with projects ordered by position.
	ListOrganizations(ctx context.Context) ([]Organization, error)
	ListSummaries(ctx context.Context) ([]Summary, error)
	ReplaceProjects(ctx context.Context, orgID uuid.UUID, projects []Project) error
}
