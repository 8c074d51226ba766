package repository

import (
	"context"
	"time"

	"intern-match/internal/database"
	"intern-match/internal/domain/allocation"

	"github.com/google/uuid"
)

type PostgresAllocationRepository struct {
	db database.DB
}

func NewPostgresAllocationRepository(db database.DB) *PostgresAllocationRepository {
	return &PostgresAllocationRepository{db: db}
}

// ReplaceAll deletes every stored assignment and inserts items in a single
// transaction, so readers see either the previous run or this one.
func (r *PostgresAllocationRepository) ReplaceAll(ctx context.Context, runID uuid.UUID, allocatedAt time.Time, items []allocation.Assignment) error {
	if allocatedAt.IsZero() {
		allocatedAt = time.Now().UTC()
	}

	return database.InTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM allocations`); err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}

		ids := make([]string, 0, len(items))
		students := make([]string, 0, len(items))
		orgs := make([]string, 0, len(items))
		projects := make([]string, 0, len(items))
		scores := make([]int32, 0, len(items))
		for _, it := range items {
			ids = append(ids, uuid.NewString())
			students = append(students, it.StudentID.String())
			orgs = append(orgs, it.OrganizationID.String())
			projects = append(projects, it.Project)
			scores = append(scores, int32(it.Score))
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO allocations (id, run_id, student_id, organization_id, project, score, allocated_at)
			 SELECT u.id, $1, u.student_id, u.organization_id, u.project, u.score, $2
			 FROM unnest($3::uuid[], $4::uuid[], $5::uuid[], $6::text[], $7::int[])
			   AS u(id, student_id, organization_id, project, score)`,
			runID, allocatedAt, ids, students, orgs, projects, scores,
		)
		return err
	})
}

func (r *PostgresAllocationRepository) FindByStudentID(ctx context.Context, studentID uuid.UUID) (allocation.StudentAllocation, error) {
	row := r.db.QueryRow(ctx,
		`SELECT a.student_id, a.organization_id, o.name, a.project, a.score, a.run_id, a.allocated_at
		 FROM allocations a
		 JOIN organizations o ON o.id = a.organization_id
		 WHERE a.student_id = $1`,
		studentID,
	)

	var out allocation.StudentAllocation
	if err := row.Scan(&out.StudentID, &out.OrganizationID, &out.OrganizationName, &out.Project, &out.Score, &out.RunID, &out.AllocatedAt); err != nil {
		if isNoRows(err) {
			return allocation.StudentAllocation{}, allocation.ErrNotFound
		}
		return allocation.StudentAllocation{}, err
	}
	return out, nil
}
