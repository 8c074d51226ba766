package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"intern-match/internal/domain/allocation"
	"intern-match/internal/domain/organization"
	"intern-match/internal/domain/student"

	"github.com/google/uuid"
)

type AllocationCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string, value string) error
}

type AllocationNotifier interface {
	NotifyAllocationsUpdated(runID uuid.UUID, assignments int, at time.Time)
}

type AllocationUsecase interface {
	Run(ctx context.Context) (allocation.Run, error)
	GetStudentAllocation(ctx context.Context, studentID uuid.UUID) (allocation.StudentAllocation, error)
}

type AllocationOptions struct {
	Cache    AllocationCache
	Notifier AllocationNotifier
	LockTTL  time.Duration
	Logger   *log.Logger
}

// Allocation recomputes the full assignment set on every Run. Runs are
// serialized in-process and, when a cache is configured, across processes
// through a short-lived lock key.
type Allocation struct {
	students    student.Repository
	orgs        organization.Repository
	allocations allocation.Repository

	cache    AllocationCache
	notifier AllocationNotifier
	lockTTL  time.Duration
	log      *log.Logger
	now      func() time.Time

	mu sync.Mutex
}

func NewAllocationUsecase(students student.Repository, orgs organization.Repository, allocations allocation.Repository, opts AllocationOptions) *Allocation {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	ttl := opts.LockTTL
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &Allocation{
		students:    students,
		orgs:        orgs,
		allocations: allocations,
		cache:       opts.Cache,
		notifier:    opts.Notifier,
		lockTTL:     ttl,
		log:         logger,
		now:         time.Now,
	}
}

func (u *Allocation) Run(ctx context.Context) (allocation.Run, error) {
	if !u.mu.TryLock() {
		return allocation.Run{}, ErrAllocationInProgress
	}
	defer u.mu.Unlock()

	run := allocation.Run{ID: uuid.New(), StartedAt: u.now().UTC()}

	release, err := u.acquireLock(ctx, run.ID)
	if err != nil {
		return allocation.Run{}, err
	}
	defer release()

	students, err := u.students.ListStudents(ctx)
	if err != nil {
		return allocation.Run{}, fmt.Errorf("%w: load students: %v", ErrInternal, err)
	}
	orgs, err := u.orgs.ListOrganizations(ctx)
	if err != nil {
		return allocation.Run{}, fmt.Errorf("%w: load organizations: %v", ErrInternal, err)
	}

	assignments := allocation.Allocate(toAllocationStudents(students), toAllocationOrganizations(orgs))

	run.FinishedAt = u.now().UTC()
	run.Students = len(students)
	run.Assignments = assignments

	if err := u.allocations.ReplaceAll(ctx, run.ID, run.FinishedAt, assignments); err != nil {
		u.log.Printf("allocation run_id=%s status=error step=persist err=%v", run.ID, err)
		return allocation.Run{}, fmt.Errorf("%w: persist allocations: %v", ErrInternal, err)
	}

	if u.cache != nil {
		u.publishRun(ctx, run.ID)
	}
	if u.notifier != nil {
		u.notifier.NotifyAllocationsUpdated(run.ID, len(assignments), run.FinishedAt)
	}

	u.log.Printf(
		"allocation run_id=%s status=ok students=%d organizations=%d assignments=%d duration=%s",
		run.ID, len(students), len(orgs), len(assignments), run.FinishedAt.Sub(run.StartedAt),
	)
	return run, nil
}

func (u *Allocation) acquireLock(ctx context.Context, runID uuid.UUID) (func(), error) {
	noop := func() {}
	if u.cache == nil {
		return noop, nil
	}

	token := runID.String()
	ok, err := u.cache.SetIfNotExists(ctx, allocationLockKey, token, u.lockTTL)
	if err != nil {
		// degrade to the process mutex
		u.log.Printf("allocation run_id=%s step=lock status=degraded err=%v", runID, err)
		return noop, nil
	}
	if !ok {
		return nil, ErrAllocationInProgress
	}

	return func() {
		if err := u.cache.ReleaseLock(context.Background(), allocationLockKey, token); err != nil {
			u.log.Printf("allocation run_id=%s step=unlock status=error err=%v", runID, err)
		}
	}, nil
}

// publishRun points readers at the new run before dropping the entries of
// older runs.
func (u *Allocation) publishRun(ctx context.Context, runID uuid.UUID) {
	if err := u.cache.SetJSON(ctx, allocationCurrentRunKey, runID, -1); err != nil {
		u.log.Printf("allocation run_id=%s step=cache_publish status=error err=%v", runID, err)
		if err := u.cache.Delete(ctx, allocationCurrentRunKey); err != nil {
			u.log.Printf("allocation run_id=%s step=cache_unpublish status=error err=%v", runID, err)
		}
	}
	if err := u.cache.DeleteByPattern(ctx, AllocationStudentCachePattern()); err != nil {
		u.log.Printf("allocation run_id=%s step=cache_invalidate status=error err=%v", runID, err)
	}
}

func (u *Allocation) currentRun(ctx context.Context) uuid.UUID {
	var id uuid.UUID
	found, err := u.cache.GetJSON(ctx, allocationCurrentRunKey, &id)
	if err != nil || !found {
		return uuid.Nil
	}
	return id
}

type cachedStudentAllocation struct {
	StudentID        uuid.UUID `json:"student_id"`
	OrganizationID   uuid.UUID `json:"organization_id"`
	OrganizationName string    `json:"organization_name"`
	Project          string    `json:"project"`
	Score            int       `json:"score"`
	RunID            uuid.UUID `json:"run_id"`
	AllocatedAt      time.Time `json:"allocated_at"`
}

func (u *Allocation) GetStudentAllocation(ctx context.Context, studentID uuid.UUID) (allocation.StudentAllocation, error) {
	if studentID == uuid.Nil {
		return allocation.StudentAllocation{}, ErrAllocationNotFound
	}

	// without a published run there is nothing safe to cache against
	current := uuid.Nil
	if u.cache != nil {
		current = u.currentRun(ctx)
	}
	key := AllocationStudentCacheKey(current, studentID)
	if current != uuid.Nil {
		var c cachedStudentAllocation
		found, err := u.cache.GetJSON(ctx, key, &c)
		if err == nil && found {
			return allocation.StudentAllocation(c), nil
		}
	}

	res, err := u.allocations.FindByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, allocation.ErrNotFound) {
			return allocation.StudentAllocation{}, ErrAllocationNotFound
		}
		return allocation.StudentAllocation{}, fmt.Errorf("%w: find allocation: %v", ErrInternal, err)
	}

	// a row from another run means a run finished while we were reading
	if current != uuid.Nil && res.RunID == current {
		if err := u.cache.SetJSON(ctx, key, cachedStudentAllocation(res), 0); err != nil {
			u.log.Printf("allocation step=cache_set key=%s status=error err=%v", key, err)
		}
	}
	return res, nil
}

// Explain breaks a student's assignment down against the current state of
// the assigned project. ok is false when that project no longer exists.
func (u *Allocation) Explain(ctx context.Context, a allocation.StudentAllocation) (b allocation.Breakdown, ok bool, err error) {
	st, err := u.students.GetStudentByID(ctx, a.StudentID)
	if err != nil {
		if errors.Is(err, student.ErrNotFound) {
			return allocation.Breakdown{}, false, ErrStudentNotFound
		}
		return allocation.Breakdown{}, false, fmt.Errorf("%w: load student: %v", ErrInternal, err)
	}
	o, err := u.orgs.GetOrganizationByID(ctx, a.OrganizationID)
	if err != nil {
		if errors.Is(err, organization.ErrNotFound) {
			return allocation.Breakdown{}, false, nil
		}
		return allocation.Breakdown{}, false, fmt.Errorf("%w: load organization: %v", ErrInternal, err)
	}

	s := toAllocationStudents([]student.Student{st})[0]
	for _, p := range toAllocationOrganizations([]organization.Organization{o})[0].Projects {
		if p.Title != a.Project {
			continue
		}
		got := allocation.Explain(s, p)
		// titles may repeat; prefer the project that produced the stored score
		if got.Total == a.Score {
			return got, true, nil
		}
		if !ok {
			b, ok = got, true
		}
	}
	return b, ok, nil
}

func toAllocationStudents(in []student.Student) []allocation.Student {
	out := make([]allocation.Student, 0, len(in))
	for _, s := range in {
		out = append(out, allocation.Student{
			ID:             s.ID,
			Skills:         s.Skills,
			Location:       s.LocationPreference,
			InternshipType: s.InternshipType,
		})
	}
	return out
}

func toAllocationOrganizations(in []organization.Organization) []allocation.Organization {
	out := make([]allocation.Organization, 0, len(in))
	for _, o := range in {
		projects := make([]allocation.Project, 0, len(o.Projects))
		for _, p := range o.Projects {
			projects = append(projects, allocation.Project{
				Title:          p.Title,
				Location:       p.Location,
				InternshipType: p.InternshipType,
				Requirements:   p.RequiredSkills,
			})
		}
		out = append(out, allocation.Organization{ID: o.ID, Projects: projects})
	}
	return out
}
