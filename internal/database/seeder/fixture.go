package seeder

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"intern-match/internal/database"
	"intern-match/internal/domain/organization"
	"intern-match/internal/domain/student"
	"intern-match/internal/pkg/workerpool"
	"intern-match/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures/demo.yaml
var demoFixture []byte

type Fixture struct {
	Students      []StudentFixture      `yaml:"students"`
	Organizations []OrganizationFixture `yaml:"organizations"`
}

type StudentFixture struct {
	Name               string   `yaml:"name"`
	Email              string   `yaml:"email"`
	Password           string   `yaml:"password"`
	Skills             []string `yaml:"skills"`
	Interests          []string `yaml:"interests"`
	LocationPreference string   `yaml:"location_preference"`
	InternshipType     string   `yaml:"internship_type"`
}

type ProjectFixture struct {
	Title          string   `yaml:"title"`
	Location       string   `yaml:"location"`
	InternshipType string   `yaml:"internship_type"`
	RequiredSkills []string `yaml:"required_skills"`
}

type OrganizationFixture struct {
	Name         string           `yaml:"name"`
	Email        string           `yaml:"email"`
	Password     string           `yaml:"password"`
	Projects     []ProjectFixture `yaml:"projects"`
	Requirements [][]string       `yaml:"requirements"`
}

var errInvalidFixture = errors.New("invalid fixture")

func ParseFixture(b []byte) (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(b, &f); err != nil {
		return Fixture{}, fmt.Errorf("%w: %v", errInvalidFixture, err)
	}
	for i, s := range f.Students {
		if strings.TrimSpace(s.Email) == "" || s.Password == "" {
			return Fixture{}, fmt.Errorf("%w: student %d needs email and password", errInvalidFixture, i)
		}
	}
	for i, o := range f.Organizations {
		if strings.TrimSpace(o.Email) == "" || o.Password == "" {
			return Fixture{}, fmt.Errorf("%w: organization %d needs email and password", errInvalidFixture, i)
		}
	}
	return f, nil
}

// FixtureSeeder inserts the accounts in Data, skipping any whose email is
// already registered. Records are stamped in file order so allocation
// processes them in that order.
type FixtureSeeder struct {
	Label string
	Data  []byte
	Cost  int
}

func (s FixtureSeeder) Name() string {
	if s.Label == "" {
		return "fixture"
	}
	return "fixture:" + s.Label
}

func (s FixtureSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "students", "id", "email", "skills", "location_preference", "internship_type"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "projects", "organization_id", "position", "required_skills"); err != nil {
		return err
	}

	_, err := s.Seed(ctx, repository.NewPostgresStudentRepository(db), repository.NewPostgresOrganizationRepository(db))
	return err
}

type Result struct {
	Students      int
	Organizations int
	Skipped       int
}

func (s FixtureSeeder) Seed(ctx context.Context, students student.Repository, orgs organization.Repository) (Result, error) {
	f, err := ParseFixture(s.Data)
	if err != nil {
		return Result{}, err
	}

	var res Result
	var newStudents []StudentFixture
	for _, sf := range f.Students {
		sf.Email = strings.ToLower(strings.TrimSpace(sf.Email))
		exists, err := students.ExistsByEmail(ctx, sf.Email)
		if err != nil {
			return res, err
		}
		if exists {
			res.Skipped++
			continue
		}
		newStudents = append(newStudents, sf)
	}

	var newOrgs []OrganizationFixture
	for _, of := range f.Organizations {
		of.Email = strings.ToLower(strings.TrimSpace(of.Email))
		exists, err := orgs.ExistsByEmail(ctx, of.Email)
		if err != nil {
			return res, err
		}
		if exists {
			res.Skipped++
			continue
		}
		newOrgs = append(newOrgs, of)
	}

	passwords := make([]string, 0, len(newStudents)+len(newOrgs))
	for _, sf := range newStudents {
		passwords = append(passwords, sf.Password)
	}
	for _, of := range newOrgs {
		passwords = append(passwords, of.Password)
	}
	hashes, err := s.hashAll(ctx, passwords)
	if err != nil {
		return res, err
	}

	base := time.Now().UTC()
	seq := 0
	stamp := func() time.Time {
		seq++
		return base.Add(time.Duration(seq) * time.Millisecond)
	}

	for i, sf := range newStudents {
		if err := students.CreateStudent(ctx, student.Student{
			ID:                 uuid.New(),
			Name:               sf.Name,
			Email:              sf.Email,
			PasswordHash:       hashes[i],
			Skills:             sf.Skills,
			Interests:          sf.Interests,
			LocationPreference: sf.LocationPreference,
			InternshipType:     strings.TrimSpace(sf.InternshipType),
			CreatedAt:          stamp(),
		}); err != nil {
			return res, fmt.Errorf("student %s: %w", sf.Email, err)
		}
		res.Students++
	}

	for i, of := range newOrgs {
		specs := make([]organization.ProjectSpec, 0, len(of.Projects))
		for _, p := range of.Projects {
			specs = append(specs, organization.ProjectSpec(p))
		}
		if err := orgs.CreateOrganization(ctx, organization.Organization{
			ID:           uuid.New(),
			Name:         of.Name,
			Email:        of.Email,
			PasswordHash: hashes[len(newStudents)+i],
			Projects:     organization.ZipProjects(specs, of.Requirements),
			CreatedAt:    stamp(),
		}); err != nil {
			return res, fmt.Errorf("organization %s: %w", of.Email, err)
		}
		res.Organizations++
	}

	return res, nil
}

func (s FixtureSeeder) hashAll(ctx context.Context, passwords []string) ([]string, error) {
	cost := s.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hashes := make([]string, len(passwords))
	err := workerpool.Each(ctx, runtime.NumCPU(), len(passwords), func(_ context.Context, i int) error {
		h, err := bcrypt.GenerateFromPassword([]byte(passwords[i]), cost)
		if err != nil {
			return err
		}
		hashes[i] = string(h)
		return nil
	})
	return hashes, err
}
