package auth

import (
	"context"
	"errors"
	"strings"

	"intern-match/internal/domain/organization"
	"intern-match/internal/domain/student"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

type RegisterStudentInput struct {
	Name               string
	Email              string
	Password           string
	Skills             []string
	Interests          []string
	LocationPreference string
	InternshipType     string
}

type RegisterOrganizationInput struct {
	Name         string
	Email        string
	Password     string
	Projects     []organization.ProjectSpec
	Requirements [][]string
}

type LoginInput struct {
	Email    string
	Password string
}

type Service struct {
	students student.Repository
	orgs     organization.Repository
	cost     int
}

func NewService(students student.Repository, orgs organization.Repository) *Service {
	return &Service{students: students, orgs: orgs, cost: bcrypt.DefaultCost}
}

func (s *Service) RegisterStudent(ctx context.Context, in RegisterStudentInput) (student.Student, error) {
	email := normalizeEmail(in.Email)
	if email == "" || !isValidPassword(in.Password) {
		return student.Student{}, ErrInvalidInput
	}

	exists, err := s.students.ExistsByEmail(ctx, email)
	if err != nil {
		return student.Student{}, ErrInternal
	}
	if exists {
		return student.Student{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return student.Student{}, ErrInternal
	}

	st := student.Student{
		ID:                 uuid.New(),
		Name:               strings.TrimSpace(in.Name),
		Email:              email,
		PasswordHash:       string(hash),
		Skills:             cleanList(in.Skills),
		Interests:          cleanList(in.Interests),
		LocationPreference: strings.TrimSpace(in.LocationPreference),
		InternshipType:     strings.TrimSpace(in.InternshipType),
	}

	if err := s.students.CreateStudent(ctx, st); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, student.ErrDuplicateEmail) {
			return student.Student{}, ErrEmailAlreadyRegistered
		}
		return student.Student{}, ErrInternal
	}

	created, err := s.students.GetStudentByID(ctx, st.ID)
	if err != nil {
		return student.Student{}, ErrInternal
	}
	return SanitizeStudent(created), nil
}

func (s *Service) RegisterOrganization(ctx context.Context, in RegisterOrganizationInput) (organization.Organization, error) {
	email := normalizeEmail(in.Email)
	if email == "" || !isValidPassword(in.Password) {
		return organization.Organization{}, ErrInvalidInput
	}

	exists, err := s.orgs.ExistsByEmail(ctx, email)
	if err != nil {
		return organization.Organization{}, ErrInternal
	}
	if exists {
		return organization.Organization{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return organization.Organization{}, ErrInternal
	}

	o := organization.Organization{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Projects:     organization.ZipProjects(in.Projects, in.Requirements),
	}

	if err := s.orgs.CreateOrganization(ctx, o); err != nil {
		if errors.Is(err, organization.ErrDuplicateEmail) {
			return organization.Organization{}, ErrEmailAlreadyRegistered
		}
		return organization.Organization{}, ErrInternal
	}

	created, err := s.orgs.GetOrganizationByID(ctx, o.ID)
	if err != nil {
		return organization.Organization{}, ErrInternal
	}
	return SanitizeOrganization(created), nil
}

func (s *Service) LoginStudent(ctx context.Context, in LoginInput) (student.Student, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return student.Student{}, ErrInvalidCredentials
	}

	st, err := s.students.GetStudentByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, student.ErrNotFound) {
			return student.Student{}, ErrInvalidCredentials
		}
		return student.Student{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(st.PasswordHash), []byte(in.Password)); err != nil {
		return student.Student{}, ErrInvalidCredentials
	}
	return SanitizeStudent(st), nil
}

func (s *Service) LoginOrganization(ctx context.Context, in LoginInput) (organization.Organization, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return organization.Organization{}, ErrInvalidCredentials
	}

	o, err := s.orgs.GetOrganizationByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, organization.ErrNotFound) {
			return organization.Organization{}, ErrInvalidCredentials
		}
		return organization.Organization{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(o.PasswordHash), []byte(in.Password)); err != nil {
		return organization.Organization{}, ErrInvalidCredentials
	}
	return SanitizeOrganization(o), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}

// cleanList trims entries and drops empty ones, keeping order.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

func SanitizeStudent(s student.Student) student.Student {
	s.PasswordHash = ""
	return s
}

func SanitizeOrganization(o organization.Organization) organization.Organization {
	o.PasswordHash = ""
	return o
}
