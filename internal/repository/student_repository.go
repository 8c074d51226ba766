package repository

import (
	"context"
	"time"

	"intern-match/internal/database"
	"intern-match/internal/domain/student"

	"github.com/google/uuid"
)

const studentColumns = `id, name, email, password_hash, skills, interests, location_preference, internship_type, created_at, updated_at`

type PostgresStudentRepository struct {
	db database.DB
}

func NewPostgresStudentRepository(db database.DB) *PostgresStudentRepository {
	return &PostgresStudentRepository{db: db}
}

func (r *PostgresStudentRepository) CreateStudent(ctx context.Context, s student.Student) error {
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO students (`+studentColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID,
		s.Name,
		s.Email,
		s.PasswordHash,
		nonNil(s.Skills),
		nonNil(s.Interests),
		s.LocationPreference,
		s.InternshipType,
		s.CreatedAt,
		now,
	)
	if IsUniqueViolation(err) {
		return student.ErrDuplicateEmail
	}
	return err
}

func (r *PostgresStudentRepository) GetStudentByID(ctx context.Context, id uuid.UUID) (student.Student, error) {
	row := r.db.QueryRow(ctx, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id)
	return scanStudent(row)
}

func (r *PostgresStudentRepository) GetStudentByEmail(ctx context.Context, email string) (student.Student, error) {
	row := r.db.QueryRow(ctx, `SELECT `+studentColumns+` FROM students WHERE email = $1`, email)
	return scanStudent(row)
}

func (r *PostgresStudentRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM students WHERE email = $1)`, email)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresStudentRepository) ListStudents(ctx context.Context) ([]student.Student, error) {
	rows, err := r.db.Query(ctx, `SELECT `+studentColumns+` FROM students ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]student.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresStudentRepository) ListSummaries(ctx context.Context) ([]student.Summary, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, email FROM students ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]student.Summary, 0)
	for rows.Next() {
		var s student.Summary
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

func scanStudent(row database.Row) (student.Student, error) {
	var s student.Student
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Email,
		&s.PasswordHash,
		&s.Skills,
		&s.Interests,
		&s.LocationPreference,
		&s.InternshipType,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, err
	}
	return s, nil
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
