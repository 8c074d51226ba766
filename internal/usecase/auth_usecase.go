package usecase

import (
	"context"
	"errors"

	"intern-match/internal/domain/organization"
	"intern-match/internal/domain/student"
	"intern-match/internal/pkg/jwt"
	ucauth "intern-match/internal/usecase/auth"

	"github.com/google/uuid"
)

type Tokens struct {
	AccessToken  string
	RefreshToken string
}

type AuthUsecase interface {
	RegisterStudent(ctx context.Context, in ucauth.RegisterStudentInput) (student.Student, Tokens, error)
	RegisterOrganization(ctx context.Context, in ucauth.RegisterOrganizationInput) (organization.Organization, Tokens, error)
	LoginStudent(ctx context.Context, in ucauth.LoginInput) (student.Student, Tokens, error)
	LoginOrganization(ctx context.Context, in ucauth.LoginInput) (organization.Organization, Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (Tokens, error)
}

type Auth struct {
	authSvc  *ucauth.Service
	students student.Repository
	orgs     organization.Repository
	jwt      jwt.Service
}

func NewAuthUsecase(students student.Repository, orgs organization.Repository, jwtSvc jwt.Service) *Auth {
	return &Auth{
		authSvc:  ucauth.NewService(students, orgs),
		students: students,
		orgs:     orgs,
		jwt:      jwtSvc,
	}
}

func (u *Auth) RegisterStudent(ctx context.Context, in ucauth.RegisterStudentInput) (student.Student, Tokens, error) {
	st, err := u.authSvc.RegisterStudent(ctx, in)
	if err != nil {
		return student.Student{}, Tokens{}, err
	}
	tok, err := u.issue(st.ID, st.Email, jwt.RoleStudent)
	if err != nil {
		return student.Student{}, Tokens{}, err
	}
	return st, tok, nil
}

func (u *Auth) RegisterOrganization(ctx context.Context, in ucauth.RegisterOrganizationInput) (organization.Organization, Tokens, error) {
	o, err := u.authSvc.RegisterOrganization(ctx, in)
	if err != nil {
		return organization.Organization{}, Tokens{}, err
	}
	tok, err := u.issue(o.ID, o.Email, jwt.RoleOrganization)
	if err != nil {
		return organization.Organization{}, Tokens{}, err
	}
	return o, tok, nil
}

func (u *Auth) LoginStudent(ctx context.Context, in ucauth.LoginInput) (student.Student, Tokens, error) {
	st, err := u.authSvc.LoginStudent(ctx, in)
	if err != nil {
		return student.Student{}, Tokens{}, err
	}
	tok, err := u.issue(st.ID, st.Email, jwt.RoleStudent)
	if err != nil {
		return student.Student{}, Tokens{}, err
	}
	return st, tok, nil
}

func (u *Auth) LoginOrganization(ctx context.Context, in ucauth.LoginInput) (organization.Organization, Tokens, error) {
	o, err := u.authSvc.LoginOrganization(ctx, in)
	if err != nil {
		return organization.Organization{}, Tokens{}, err
	}
	tok, err := u.issue(o.ID, o.Email, jwt.RoleOrganization)
	if err != nil {
		return organization.Organization{}, Tokens{}, err
	}
	return o, tok, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	if refreshToken == "" {
		return Tokens{}, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Tokens{}, ErrRefreshTokenExpired
		}
		return Tokens{}, ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) {
		return Tokens{}, ErrInvalidRefreshToken
	}

	var email string
	switch claims.Role {
	case jwt.RoleStudent:
		st, err := u.students.GetStudentByID(ctx, claims.SubjectID)
		if err != nil {
			if errors.Is(err, student.ErrNotFound) {
				return Tokens{}, ErrInvalidRefreshToken
			}
			return Tokens{}, ErrInternal
		}
		email = st.Email
	case jwt.RoleOrganization:
		o, err := u.orgs.GetOrganizationByID(ctx, claims.SubjectID)
		if err != nil {
			if errors.Is(err, organization.ErrNotFound) {
				return Tokens{}, ErrInvalidRefreshToken
			}
			return Tokens{}, ErrInternal
		}
		email = o.Email
	default:
		return Tokens{}, ErrInvalidRefreshToken
	}

	return u.issue(claims.SubjectID, email, claims.Role)
}

func (u *Auth) issue(id uuid.UUID, email, role string) (Tokens, error) {
	access, err := u.jwt.GenerateAccessToken(id, email, role)
	if err != nil {
		return Tokens{}, ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(id, role)
	if err != nil {
		return Tokens{}, ErrInternal
	}
	return Tokens{AccessToken: access, RefreshToken: refresh}, nil
}
