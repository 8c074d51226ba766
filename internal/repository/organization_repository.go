package repository

import (
	"cmp"
	"context"
	"slices"
	"time"

	"intern-match/internal/database"
	"intern-match/internal/domain/organization"

	"github.com/google/uuid"
)

const organizationColumns = `id, name, email, password_hash, created_at, updated_at`

type PostgresOrganizationRepository struct {
	db database.DB
}

func NewPostgresOrganizationRepository(db database.DB) *PostgresOrganizationRepository {
	return &PostgresOrganizationRepository{db: db}
}

func (r *PostgresOrganizationRepository) CreateOrganization(ctx context.Context, o organization.Organization) error {
	now := time.Now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}

	return database.InTx(ctx, r.db, func(tx database.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO organizations (`+organizationColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
			o.ID, o.Name, o.Email, o.PasswordHash, o.CreatedAt, now,
		)
		if IsUniqueViolation(err) {
			return organization.ErrDuplicateEmail
		}
		if err != nil {
			return err
		}
		return insertProjects(ctx, tx, o.ID, o.Projects)
	})
}

func (r *PostgresOrganizationRepository) GetOrganizationByID(ctx context.Context, id uuid.UUID) (organization.Organization, error) {
	row := r.db.QueryRow(ctx, `SELECT `+organizationColumns+` FROM organizations WHERE id = $1`, id)
	o, err := scanOrganization(row)
	if err != nil {
		return organization.Organization{}, err
	}
	return r.withProjects(ctx, o)
}

func (r *PostgresOrganizationRepository) GetOrganizationByEmail(ctx context.Context, email string) (organization.Organization, error) {
	row := r.db.QueryRow(ctx, `SELECT `+organizationColumns+` FROM organizations WHERE email = $1`, email)
	o, err := scanOrganization(row)
	if err != nil {
		return organization.Organization{}, err
	}
	return r.withProjects(ctx, o)
}

func (r *PostgresOrganizationRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM organizations WHERE email = $1)`, email)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresOrganizationRepository) ListOrganizations(ctx context.Context) ([]organization.Organization, error) {
	rows, err := r.db.Query(ctx, `SELECT `+organizationColumns+` FROM organizations ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}

	out := make([]organization.Organization, 0)
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		index[o.ID] = len(out)
		out = append(out, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	prow, err := r.db.Query(ctx,
		`SELECT id, organization_id, position, title, location, internship_type, required_skills
		 FROM projects
		 ORDER BY organization_id, position ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer prow.Close()

	for prow.Next() {
		var orgID uuid.UUID
		p, err := scanProject(prow, &orgID)
		if err != nil {
			return nil, err
		}
		i, ok := index[orgID]
		if !ok {
			continue
		}
		out[i].Projects = append(out[i].Projects, p)
	}
	if err := prow.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		slices.SortStableFunc(out[i].Projects, func(a, b organization.Project) int {
			return cmp.Compare(a.Position, b.Position)
		})
	}
	return out, nil
}

func (r *PostgresOrganizationRepository) ListSummaries(ctx context.Context) ([]organization.Summary, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, email FROM organizations ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]organization.Summary, 0)
	for rows.Next() {
		var s organization.Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.Email); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ReplaceProjects swaps the whole project list of an organization in one
// transaction.
func (r *PostgresOrganizationRepository) ReplaceProjects(ctx context.Context, orgID uuid.UUID, projects []organization.Project) error {
	return database.InTx(ctx, r.db, func(tx database.Tx) error {
		affected, err := tx.Exec(ctx, `UPDATE organizations SET updated_at = $1 WHERE id = $2`, time.Now().UTC(), orgID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return organization.ErrNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM projects WHERE organization_id = $1`, orgID); err != nil {
			return err
		}
		return insertProjects(ctx, tx, orgID, projects)
	})
}

func (r *PostgresOrganizationRepository) withProjects(ctx context.Context, o organization.Organization) (organization.Organization, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, organization_id, position, title, location, internship_type, required_skills
		 FROM projects
		 WHERE organization_id = $1
		 ORDER BY position ASC`,
		o.ID,
	)
	if err != nil {
		return organization.Organization{}, err
	}
	defer rows.Close()

	o.Projects = make([]organization.Project, 0)
	for rows.Next() {
		var orgID uuid.UUID
		p, err := scanProject(rows, &orgID)
		if err != nil {
			return organization.Organization{}, err
		}
		o.Projects = append(o.Projects, p)
	}
	if err := rows.Err(); err != nil {
		return organization.Organization{}, err
	}
	return o, nil
}

func insertProjects(ctx context.Context, tx database.Tx, orgID uuid.UUID, projects []organization.Project) error {
	for i, p := range projects {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		typ := p.InternshipType
		if typ == "" {
			typ = organization.DefaultInternshipType
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO projects (id, organization_id, position, title, location, internship_type, required_skills)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			p.ID, orgID, i, p.Title, p.Location, typ, nonNil(p.RequiredSkills),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func scanOrganization(row database.Row) (organization.Organization, error) {
	var o organization.Organization
	if err := row.Scan(&o.ID, &o.Name, &o.Email, &o.PasswordHash, &o.CreatedAt, &o.UpdatedAt); err != nil {
		if isNoRows(err) {
			return organization.Organization{}, organization.ErrNotFound
		}
		return organization.Organization{}, err
	}
	return o, nil
}

func scanProject(row database.Row, orgID *uuid.UUID) (organization.Project, error) {
	var p organization.Project
	if err := row.Scan(&p.ID, orgID, &p.Position, &p.Title, &p.Location, &p.InternshipType, &p.RequiredSkills); err != nil {
		return organization.Project{}, err
	}
	return p, nil
}
