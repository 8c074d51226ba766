package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"intern-match/internal/domain/allocation"
	"intern-match/internal/domain/organization"
	"intern-match/internal/domain/student"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeStudentRepo struct {
	mu    sync.Mutex
	items []student.Student
	err   error
}

func (r *fakeStudentRepo) CreateStudent(_ context.Context, s student.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, s)
	return nil
}

func (r *fakeStudentRepo) GetStudentByID(_ context.Context, id uuid.UUID) (student.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.items {
		if s.ID == id {
			return s, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (r *fakeStudentRepo) GetStudentByEmail(_ context.Context, email string) (student.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.items {
		if s.Email == email {
			return s, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (r *fakeStudentRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetStudentByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeStudentRepo) ListStudents(context.Context) ([]student.Student, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]student.Student(nil), r.items...), nil
}

func (r *fakeStudentRepo) ListSummaries(context.Context) ([]student.Summary, error) {
	out := make([]student.Summary, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, student.Summary{ID: s.ID, Name: s.Name, Email: s.Email})
	}
	return out, nil
}

type fakeOrgRepo struct {
	mu    sync.Mutex
	items []organization.Organization
}

func (r *fakeOrgRepo) CreateOrganization(_ context.Context, o organization.Organization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, o)
	return nil
}

func (r *fakeOrgRepo) GetOrganizationByID(_ context.Context, id uuid.UUID) (organization.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.items {
		if o.ID == id {
			return o, nil
		}
	}
	return organization.Organization{}, organization.ErrNotFound
}

func (r *fakeOrgRepo) GetOrganizationByEmail(_ context.Context, email string) (organization.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.items {
		if o.Email == email {
			return o, nil
		}
	}
	return organization.Organization{}, organization.ErrNotFound
}

func (r *fakeOrgRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetOrganizationByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeOrgRepo) ListOrganizations(context.Context) ([]organization.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]organization.Organization(nil), r.items...), nil
}

func (r *fakeOrgRepo) ListSummaries(context.Context) ([]organization.Summary, error) {
	out := make([]organization.Summary, 0, len(r.items))
	for _, o := range r.items {
		out = append(out, organization.Summary{ID: o.ID, Name: o.Name, Email: o.Email})
	}
	return out, nil
}

func (r *fakeOrgRepo) ReplaceProjects(_ context.Context, orgID uuid.UUID, projects []organization.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == orgID {
			r.items[i].Projects = projects
			return nil
		}
	}
	return organization.ErrNotFound
}

// fakeAllocationRepo joins organization names on read like the Postgres
// repository does.
type fakeAllocationRepo struct {
	orgs *fakeOrgRepo

	mu         sync.Mutex
	items      map[uuid.UUID]allocation.StudentAllocation
	replaceErr error
	replaces   int
	block      chan struct{}
	afterFind  func()
}

func newFakeAllocationRepo(orgs *fakeOrgRepo) *fakeAllocationRepo {
	return &fakeAllocationRepo{orgs: orgs, items: map[uuid.UUID]allocation.StudentAllocation{}}
}

func (r *fakeAllocationRepo) ReplaceAll(ctx context.Context, runID uuid.UUID, at time.Time, items []allocation.Assignment) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replaces++
	if r.replaceErr != nil {
		return r.replaceErr
	}

	next := make(map[uuid.UUID]allocation.StudentAllocation, len(items))
	for _, it := range items {
		o, err := r.orgs.GetOrganizationByID(ctx, it.OrganizationID)
		if err != nil {
			return err
		}
		next[it.StudentID] = allocation.StudentAllocation{
			StudentID:        it.StudentID,
			OrganizationID:   it.OrganizationID,
			OrganizationName: o.Name,
			Project:          it.Project,
			Score:            it.Score,
			RunID:            runID,
			AllocatedAt:      at,
		}
	}
	r.items = next
	return nil
}

func (r *fakeAllocationRepo) FindByStudentID(_ context.Context, id uuid.UUID) (allocation.StudentAllocation, error) {
	r.mu.Lock()
	a, ok := r.items[id]
	r.mu.Unlock()
	if r.afterFind != nil {
		r.afterFind()
	}
	if !ok {
		return allocation.StudentAllocation{}, allocation.ErrNotFound
	}
	return a, nil
}

type fakeCache struct {
	mu       sync.Mutex
	values   map[string][]byte
	locks    map[string]string
	lockErr  error
	setErr   error
	deleted  []string
	released int
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string][]byte{}, locks: map[string]string{}}
}

func (c *fakeCache) put(t *testing.T, key string, v any) {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = b
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.values[key]
	return ok
}

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = b
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}

func (c *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.values {
		if strings.HasPrefix(k, prefix) {
			delete(c.values, k)
		}
	}
	return nil
}

func (c *fakeCache) SetIfNotExists(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lockErr != nil {
		return false, c.lockErr
	}
	if _, held := c.locks[key]; held {
		return false, nil
	}
	c.locks[key] = value
	return true, nil
}

func (c *fakeCache) ReleaseLock(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locks[key] == value {
		delete(c.locks, key)
		c.released++
	}
	return nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []int
}

func (n *fakeNotifier) NotifyAllocationsUpdated(_ uuid.UUID, assignments int, _ time.Time) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, assignments)
}
