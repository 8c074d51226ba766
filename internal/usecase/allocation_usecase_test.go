package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"intern-match/internal/domain/allocation"
	"intern-match/internal/domain/organization"
	"intern-match/internal/domain/student"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type allocationFixture struct {
	students *fakeStudentRepo
	orgs     *fakeOrgRepo
	allocs   *fakeAllocationRepo
	cache    *fakeCache
	notifier *fakeNotifier
	uc       *Allocation

	ana, ben uuid.UUID
	acme     uuid.UUID
}

func newAllocationFixture(t *testing.T) *allocationFixture {
	t.Helper()

	f := &allocationFixture{
		students: &fakeStudentRepo{},
		orgs:     &fakeOrgRepo{},
		cache:    newFakeCache(),
		notifier: &fakeNotifier{},
		ana:      uuid.New(),
		ben:      uuid.New(),
		acme:     uuid.New(),
	}
	f.allocs = newFakeAllocationRepo(f.orgs)

	f.students.items = []student.Student{
		{ID: f.ana, Name: "Ana", Skills: []string{"python", "sql"}, LocationPreference: "Delhi", InternshipType: "paid"},
		{ID: f.ben, Name: "Ben", Skills: []string{"go"}, LocationPreference: "Pune", InternshipType: "unpaid"},
	}
	f.orgs.items = []organization.Organization{
		{
			ID:   f.acme,
			Name: "Acme",
			Projects: []organization.Project{
				{Title: "Data Intern", Location: "New Delhi", InternshipType: "paid", RequiredSkills: []string{"python", "sql"}},
				{Title: "Backend Intern", Location: "Pune", InternshipType: "unpaid", RequiredSkills: []string{"go"}},
			},
		},
	}

	f.uc = NewAllocationUsecase(f.students, f.orgs, f.allocs, AllocationOptions{
		Cache:    f.cache,
		Notifier: f.notifier,
		Logger:   log.New(io.Discard, "", 0),
	})
	return f
}

func TestAllocation_RunPersistsAndNotifies(t *testing.T) {
	f := newAllocationFixture(t)

	run, err := f.uc.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, run.Assignments, 2)
	assert.Equal(t, 2, run.Students)
	assert.Equal(t, f.ana, run.Assignments[0].StudentID)
	assert.Equal(t, "Data Intern", run.Assignments[0].Project)
	assert.Equal(t, 6, run.Assignments[0].Score)
	assert.Equal(t, f.ben, run.Assignments[1].StudentID)
	assert.Equal(t, "Backend Intern", run.Assignments[1].Project)
	assert.Equal(t, 4, run.Assignments[1].Score)

	assert.Equal(t, 1, f.allocs.replaces)
	assert.Equal(t, []string{AllocationStudentCachePattern()}, f.cache.deleted)
	assert.Equal(t, []int{2}, f.notifier.calls)
	assert.Equal(t, 1, f.cache.released)
	assert.Empty(t, f.cache.locks)
}

func TestAllocation_RunThenGetStudentAllocation(t *testing.T) {
	f := newAllocationFixture(t)
	ctx := context.Background()

	run, err := f.uc.Run(ctx)
	require.NoError(t, err)

	got, err := f.uc.GetStudentAllocation(ctx, f.ana)
	require.NoError(t, err)
	assert.Equal(t, f.acme, got.OrganizationID)
	assert.Equal(t, "Acme", got.OrganizationName)
	assert.Equal(t, "Data Intern", got.Project)
	assert.Equal(t, 6, got.Score)
	assert.Equal(t, run.ID, got.RunID)

	assert.True(t, f.cache.has(AllocationStudentCacheKey(run.ID, f.ana)))
}

func TestAllocation_GetStudentAllocationServesCache(t *testing.T) {
	f := newAllocationFixture(t)
	id, runID := uuid.New(), uuid.New()
	f.cache.put(t, allocationCurrentRunKey, runID)
	f.cache.put(t, AllocationStudentCacheKey(runID, id), cachedStudentAllocation{
		StudentID:        id,
		OrganizationName: "Cached Org",
		Project:          "Cached Project",
		Score:            3,
		RunID:            runID,
	})

	got, err := f.uc.GetStudentAllocation(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Cached Org", got.OrganizationName)
	assert.Equal(t, 3, got.Score)
}

func TestAllocation_GetStudentAllocationNotFound(t *testing.T) {
	f := newAllocationFixture(t)

	_, err := f.uc.GetStudentAllocation(context.Background(), f.ana)
	assert.ErrorIs(t, err, ErrAllocationNotFound)

	_, err = f.uc.GetStudentAllocation(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, ErrAllocationNotFound)
}

func TestAllocation_RunInvalidatesStaleCache(t *testing.T) {
	f := newAllocationFixture(t)
	ctx := context.Background()

	_, err := f.uc.Run(ctx)
	require.NoError(t, err)
	_, err = f.uc.GetStudentAllocation(ctx, f.ana)
	require.NoError(t, err)

	// Ana now only knows go and prefers Pune, so she moves to the backend project.
	f.students.items[0].Skills = []string{"go"}
	f.students.items[0].LocationPreference = "Pune"
	f.students.items[0].InternshipType = "unpaid"

	_, err = f.uc.Run(ctx)
	require.NoError(t, err)

	got, err := f.uc.GetStudentAllocation(ctx, f.ana)
	require.NoError(t, err)
	assert.Equal(t, "Backend Intern", got.Project)
}

func TestAllocation_ReadOverlappingRunDoesNotPinOldAssignment(t *testing.T) {
	f := newAllocationFixture(t)
	ctx := context.Background()

	_, err := f.uc.Run(ctx)
	require.NoError(t, err)

	paused := make(chan struct{})
	resume := make(chan struct{})
	f.allocs.afterFind = func() {
		close(paused)
		<-resume
	}

	var wg sync.WaitGroup
	var inFlight allocation.StudentAllocation
	var readErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		inFlight, readErr = f.uc.GetStudentAllocation(ctx, f.ana)
	}()
	<-paused

	f.students.items[0].Skills = []string{"go"}
	f.students.items[0].LocationPreference = "Pune"
	f.students.items[0].InternshipType = "unpaid"
	latest, err := f.uc.Run(ctx)
	require.NoError(t, err)

	close(resume)
	wg.Wait()
	require.NoError(t, readErr)
	assert.Equal(t, "Data Intern", inFlight.Project)

	f.allocs.afterFind = nil
	got, err := f.uc.GetStudentAllocation(ctx, f.ana)
	require.NoError(t, err)
	assert.Equal(t, "Backend Intern", got.Project)
	assert.Equal(t, latest.ID, got.RunID)

	// served from cache on the second read
	got, err = f.uc.GetStudentAllocation(ctx, f.ana)
	require.NoError(t, err)
	assert.Equal(t, "Backend Intern", got.Project)
	assert.True(t, f.cache.has(AllocationStudentCacheKey(latest.ID, f.ana)))
}

func TestAllocation_UnpublishedRunIsNotCached(t *testing.T) {
	f := newAllocationFixture(t)
	ctx := context.Background()
	f.cache.setErr = errors.New("redis write failed")

	run, err := f.uc.Run(ctx)
	require.NoError(t, err)

	got, err := f.uc.GetStudentAllocation(ctx, f.ana)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.RunID)
	assert.False(t, f.cache.has(allocationCurrentRunKey))
	assert.False(t, f.cache.has(AllocationStudentCacheKey(run.ID, f.ana)))
}

func TestAllocation_Explain(t *testing.T) {
	f := newAllocationFixture(t)
	ctx := context.Background()

	_, err := f.uc.Run(ctx)
	require.NoError(t, err)
	a, err := f.uc.GetStudentAllocation(ctx, f.ana)
	require.NoError(t, err)

	b, ok, err := f.uc.Explain(ctx, a)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, allocation.Breakdown{SkillMatch: 2, LocationMatch: 1, InternshipTypeMatch: 1, Total: 6}, b)

	f.orgs.items[0].Projects = nil
	_, ok, err = f.uc.Explain(ctx, a)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = f.uc.Explain(ctx, allocation.StudentAllocation{StudentID: uuid.New()})
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestAllocation_RunPersistFailureKeepsPreviousSet(t *testing.T) {
	f := newAllocationFixture(t)
	ctx := context.Background()

	first, err := f.uc.Run(ctx)
	require.NoError(t, err)

	f.allocs.replaceErr = errors.New("connection reset")
	_, err = f.uc.Run(ctx)
	require.ErrorIs(t, err, ErrInternal)

	got, err := f.allocs.FindByStudentID(ctx, f.ana)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.RunID)

	assert.Equal(t, []int{2}, f.notifier.calls)
	assert.Len(t, f.cache.deleted, 1)
	assert.Empty(t, f.cache.locks)
}

func TestAllocation_RunLoadFailure(t *testing.T) {
	f := newAllocationFixture(t)
	f.students.err = errors.New("boom")

	_, err := f.uc.Run(context.Background())
	require.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 0, f.allocs.replaces)
	assert.Empty(t, f.notifier.calls)
}

func TestAllocation_RunRejectedWhileLockHeld(t *testing.T) {
	f := newAllocationFixture(t)
	f.cache.locks[allocationLockKey] = "someone-else"

	_, err := f.uc.Run(context.Background())
	assert.ErrorIs(t, err, ErrAllocationInProgress)
	assert.Equal(t, 0, f.allocs.replaces)
	assert.Equal(t, "someone-else", f.cache.locks[allocationLockKey])
}

func TestAllocation_RunDegradesWhenLockBackendFails(t *testing.T) {
	f := newAllocationFixture(t)
	f.cache.lockErr = errors.New("redis down")

	_, err := f.uc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, f.allocs.replaces)
}

func TestAllocation_ConcurrentRunsSerialized(t *testing.T) {
	f := newAllocationFixture(t)
	f.allocs.block = make(chan struct{})

	var wg sync.WaitGroup
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = f.uc.Run(context.Background())
	}()

	require.Eventually(t, func() bool {
		f.cache.mu.Lock()
		defer f.cache.mu.Unlock()
		return len(f.cache.locks) == 1
	}, time.Second, 5*time.Millisecond)

	_, err := f.uc.Run(context.Background())
	assert.ErrorIs(t, err, ErrAllocationInProgress)

	close(f.allocs.block)
	wg.Wait()
	require.NoError(t, firstErr)
	assert.Equal(t, 1, f.allocs.replaces)
}

func TestAllocation_RunWithoutCacheOrNotifier(t *testing.T) {
	f := newAllocationFixture(t)
	uc := NewAllocationUsecase(f.students, f.orgs, f.allocs, AllocationOptions{Logger: log.New(io.Discard, "", 0)})

	run, err := uc.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, run.Assignments, 2)

	got, err := uc.GetStudentAllocation(context.Background(), f.ben)
	require.NoError(t, err)
	assert.Equal(t, "Backend Intern", got.Project)
}
