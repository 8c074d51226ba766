package usecase

import (
	"context"
	"testing"

	"intern-match/internal/domain/organization"
	"intern-match/internal/domain/student"
	"intern-match/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrganization_UpdateProjects(t *testing.T) {
	id := uuid.New()
	repo := &fakeOrgRepo{items: []organization.Organization{{ID: id, Name: "Acme", PasswordHash: "hash"}}}
	uc := NewOrganizationUsecase(repo)

	o, err := uc.UpdateProjects(context.Background(), Principal{ID: id, Role: jwt.RoleOrganization}, id, UpdateProjectsInput{
		Projects: []organization.ProjectSpec{
			{Title: " ML Intern ", Location: "Bangalore", RequiredSkills: []string{"python"}},
			{Title: "Ops Intern", Location: "Remote", InternshipType: "unpaid"},
		},
		Requirements: [][]string{{"python", "pytorch"}},
	})
	require.NoError(t, err)
	assert.Empty(t, o.PasswordHash)
	require.Len(t, o.Projects, 2)
	assert.Equal(t, "ML Intern", o.Projects[0].Title)
	assert.Equal(t, []string{"python", "pytorch"}, o.Projects[0].RequiredSkills)
	assert.Equal(t, 1, o.Projects[1].Position)
	assert.Equal(t, [][]string{{"python", "pytorch"}, {}}, o.Requirements())
}

func TestOrganization_UpdateProjectsAccessControl(t *testing.T) {
	id := uuid.New()
	repo := &fakeOrgRepo{items: []organization.Organization{{ID: id}}}
	uc := NewOrganizationUsecase(repo)
	in := UpdateProjectsInput{Projects: []organization.ProjectSpec{{Title: "X"}}}

	_, err := uc.UpdateProjects(context.Background(), Principal{}, id, in)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = uc.UpdateProjects(context.Background(), Principal{ID: id, Role: jwt.RoleStudent}, id, in)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = uc.UpdateProjects(context.Background(), Principal{ID: uuid.New(), Role: jwt.RoleOrganization}, id, in)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = uc.UpdateProjects(context.Background(), Principal{ID: id, Role: jwt.RoleOrganization}, id,
		UpdateProjectsInput{Projects: []organization.ProjectSpec{{Title: "  "}}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Empty(t, repo.items[0].Projects)
}

func TestOrganization_GetNotFound(t *testing.T) {
	uc := NewOrganizationUsecase(&fakeOrgRepo{})

	_, err := uc.GetOrganization(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrOrganizationNotFound)
}

func TestStudent_GetStripsPassword(t *testing.T) {
	id := uuid.New()
	uc := NewStudentUsecase(&fakeStudentRepo{items: []student.Student{{ID: id, Name: "Ana", PasswordHash: "hash"}}})

	st, err := uc.GetStudent(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Ana", st.Name)
	assert.Empty(t, st.PasswordHash)

	_, err = uc.GetStudent(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestAdmin_ListData(t *testing.T) {
	students := &fakeStudentRepo{items: []student.Student{{ID: uuid.New(), Name: "Ana", Email: "ana@x.io"}}}
	orgs := &fakeOrgRepo{items: []organization.Organization{{ID: uuid.New(), Name: "Acme"}}}

	data, err := NewAdminUsecase(students, orgs).ListData(context.Background())
	require.NoError(t, err)
	require.Len(t, data.Students, 1)
	assert.Equal(t, "ana@x.io", data.Students[0].Email)
	require.Len(t, data.Organizations, 1)
	assert.Equal(t, "Acme", data.Organizations[0].Name)
}
