package usecase

import (
	"context"
	"testing"
	"time"

	"intern-match/internal/domain/organization"
	"intern-match/internal/pkg/jwt"
	ucauth "intern-match/internal/usecase/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (*Auth, *fakeStudentRepo, *fakeOrgRepo, *jwt.HMACService) {
	students := &fakeStudentRepo{}
	orgs := &fakeOrgRepo{}
	svc := jwt.NewHMACService("access", "refresh", time.Minute, time.Hour)
	return NewAuthUsecase(students, orgs, svc), students, orgs, svc
}

func TestAuth_RegisterAndLoginStudent(t *testing.T) {
	uc, students, _, svc := newAuthFixture()
	ctx := context.Background()

	st, tok, err := uc.RegisterStudent(ctx, ucauth.RegisterStudentInput{
		Name:               "Ana",
		Email:              " Ana@Example.com ",
		Password:           "supersecret",
		Skills:             []string{"python", " ", "sql "},
		LocationPreference: "Delhi",
		InternshipType:     "paid",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", st.Email)
	assert.Equal(t, []string{"python", "sql"}, st.Skills)
	assert.Empty(t, st.PasswordHash)
	require.Len(t, students.items, 1)
	assert.NotEmpty(t, students.items[0].PasswordHash)

	claims, err := svc.ValidateToken(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, st.ID, claims.SubjectID)
	assert.Equal(t, jwt.RoleStudent, claims.Role)

	_, _, err = uc.RegisterStudent(ctx, ucauth.RegisterStudentInput{Email: "ana@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ucauth.ErrEmailAlreadyRegistered)

	logged, _, err := uc.LoginStudent(ctx, ucauth.LoginInput{Email: "ANA@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, st.ID, logged.ID)

	_, _, err = uc.LoginStudent(ctx, ucauth.LoginInput{Email: "ana@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ucauth.ErrInvalidCredentials)

	_, _, err = uc.LoginStudent(ctx, ucauth.LoginInput{Email: "nobody@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ucauth.ErrInvalidCredentials)
}

func TestAuth_RegisterRejectsShortPassword(t *testing.T) {
	uc, _, _, _ := newAuthFixture()

	_, _, err := uc.RegisterStudent(context.Background(), ucauth.RegisterStudentInput{Email: "a@b.c", Password: "short"})
	assert.ErrorIs(t, err, ucauth.ErrInvalidInput)

	_, _, err = uc.RegisterOrganization(context.Background(), ucauth.RegisterOrganizationInput{Email: "", Password: "longenough"})
	assert.ErrorIs(t, err, ucauth.ErrInvalidInput)
}

func TestAuth_RegisterOrganizationZipsRequirements(t *testing.T) {
	uc, _, _, _ := newAuthFixture()

	o, _, err := uc.RegisterOrganization(context.Background(), ucauth.RegisterOrganizationInput{
		Name:     "Acme",
		Email:    "hr@acme.io",
		Password: "supersecret",
		Projects: []organization.ProjectSpec{
			{Title: "Data Intern", Location: "Delhi"},
			{Title: "Backend Intern", Location: "Pune", InternshipType: "unpaid"},
		},
		Requirements: [][]string{{"python", "sql"}},
	})
	require.NoError(t, err)
	require.Len(t, o.Projects, 2)
	assert.Equal(t, []string{"python", "sql"}, o.Projects[0].RequiredSkills)
	assert.Equal(t, "paid", o.Projects[0].InternshipType)
	assert.Empty(t, o.Projects[1].RequiredSkills)
	assert.Equal(t, "unpaid", o.Projects[1].InternshipType)
}

func TestAuth_Refresh(t *testing.T) {
	uc, _, orgs, svc := newAuthFixture()
	ctx := context.Background()

	o, tok, err := uc.RegisterOrganization(ctx, ucauth.RegisterOrganizationInput{
		Name: "Acme", Email: "hr@acme.io", Password: "supersecret",
	})
	require.NoError(t, err)

	next, err := uc.Refresh(ctx, tok.RefreshToken)
	require.NoError(t, err)
	claims, err := svc.ValidateToken(next.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, o.ID, claims.SubjectID)
	assert.Equal(t, "hr@acme.io", claims.Email)
	assert.Equal(t, jwt.RoleOrganization, claims.Role)

	_, err = uc.Refresh(ctx, tok.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, err = uc.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, err = uc.Refresh(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	orgs.items = nil
	_, err = uc.Refresh(ctx, tok.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestAuth_RefreshUnknownStudent(t *testing.T) {
	uc, _, _, svc := newAuthFixture()

	tok, err := svc.GenerateRefreshToken(uuid.New(), jwt.RoleStudent)
	require.NoError(t, err)

	_, err = uc.Refresh(context.Background(), tok)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}
