package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow-api/internal/core/analytics"
	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

var (
	discardLogger = zerolog.Nop()
	fixedNow      = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	fixedClock    = Clock(func() time.Time { return fixedNow })
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu      sync.Mutex
	users   map[string]*domain.User
	listErr error
}

func newStubUserRepo(users ...domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for i := range users {
		u := users[i]
		r.users[u.ID] = &u
	}
	return r
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrUserExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Search mirrors the Mongo regex query: case-insensitive match on name or
// email, ordered by name.
func (r *stubUserRepo) Search(ctx context.Context, search string) ([]domain.User, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.User
	for _, u := range all {
		if analytics.MatchesSearch(u, search) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubProjectRepo struct {
	mu       sync.Mutex
	projects map[string]*domain.Project
}

func newStubProjectRepo(projects ...domain.Project) *stubProjectRepo {
	r := &stubProjectRepo{projects: make(map[string]*domain.Project)}
	for i := range projects {
		p := cloneProject(&projects[i])
		r.projects[p.ID] = p
	}
	return r
}

func cloneProject(p *domain.Project) *domain.Project {
	clone := *p
	clone.MemberIDs = append([]string(nil), p.MemberIDs...)
	return &clone
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[p.ID] = cloneProject(p)
	return nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return cloneProject(p), nil
}

func (r *stubProjectRepo) List(_ context.Context) ([]domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, *cloneProject(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubProjectRepo) ListByMember(ctx context.Context, userID string) ([]domain.Project, error) {
	all, _ := r.List(ctx)
	var out []domain.Project
	for _, p := range all {
		if p.HasMember(userID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProjectRepo) Update(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[p.ID]; !ok {
		return domain.ErrProjectNotFound
	}
	r.projects[p.ID] = cloneProject(p)
	return nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

// AddMember behaves like $addToSet.
func (r *stubProjectRepo) AddMember(_ context.Context, projectID, userID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[projectID]
	if !ok {
		return domain.ErrProjectNotFound
	}
	if !p.HasMember(userID) {
		p.MemberIDs = append(p.MemberIDs, userID)
	}
	p.UpdatedAt = at
	return nil
}

func (r *stubProjectRepo) RemoveMember(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.projects {
		kept := p.MemberIDs[:0]
		for _, id := range p.MemberIDs {
			if id != userID {
				kept = append(kept, id)
			}
		}
		p.MemberIDs = kept
	}
	return nil
}

type stubTaskRepo struct {
	mu    sync.Mutex
	tasks map[string]*domain.Task
}

func newStubTaskRepo(tasks ...domain.Task) *stubTaskRepo {
	r := &stubTaskRepo{tasks: make(map[string]*domain.Task)}
	for i := range tasks {
		t := tasks[i]
		r.tasks[t.ID] = &t
	}
	return r
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *t
	r.tasks[t.ID] = &clone
	return nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

// List applies the filter and the due-date ordering of the real repository.
func (r *stubTaskRepo) List(_ context.Context, f ports.TaskFilter) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if f.ProjectID != "" && t.ProjectID != f.ProjectID {
			continue
		}
		if f.CreatedByID != "" && t.CreatedByID != f.CreatedByID {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].DueDate, out[j].DueDate
		switch {
		case a == nil && b == nil:
			return out[i].ID < out[j].ID
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(*b):
			return a.Before(*b)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *stubTaskRepo) Update(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[t.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	clone := *t
	r.tasks[t.ID] = &clone
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *stubTaskRepo) DeleteByProject(_ context.Context, projectID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, t := range r.tasks {
		if t.ProjectID == projectID {
			delete(r.tasks, id)
			n++
		}
	}
	return n, nil
}

type stubBlocklist struct {
	revoked map[string]time.Duration
	err     error
}

func newStubBlocklist() *stubBlocklist {
	return &stubBlocklist{revoked: make(map[string]time.Duration)}
}

func (b *stubBlocklist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if b.err != nil {
		return b.err
	}
	b.revoked[tokenID] = ttl
	return nil
}

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

func due(d time.Duration) *time.Time {
	t := fixedNow.Add(d)
	return &t
}

func fixtureUsers() []domain.User {
	return []domain.User{
		{ID: "admin-1", Name: "Ada Admin", Email: "ada@example.com", Role: domain.RoleAdmin, Status: domain.UserActive, CreatedAt: fixedNow.AddDate(0, -2, 0)},
		{ID: "user-a", Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser, Status: domain.UserActive, CreatedAt: fixedNow.AddDate(0, 0, -3)},
		{ID: "user-b", Name: "Bob", Email: "bob@example.com", Role: domain.RoleUser, Status: domain.UserActive, CreatedAt: fixedNow.AddDate(0, 0, -1)},
	}
}

func fixtureProjects() []domain.Project {
	return []domain.Project{
		{ID: "proj-1", Name: "Website", Description: "Public site", OwnerID: "admin-1", MemberIDs: []string{"user-a", "user-b"}},
		{ID: "proj-2", Name: "Mobile", OwnerID: "admin-1", MemberIDs: []string{"user-b"}},
	}
}

func fixtureTasks() []domain.Task {
	return []domain.Task{
		{ID: "task-1", Title: "Design", Status: domain.TaskCompleted, Priority: domain.PriorityHigh, ProjectID: "proj-1", CreatedByID: "user-a", DueDate: due(-48 * time.Hour), UpdatedAt: fixedNow.Add(-time.Hour)},
		{ID: "task-2", Title: "Build", Status: domain.TaskInProgress, Priority: domain.PriorityMedium, ProjectID: "proj-1", CreatedByID: "user-a", DueDate: due(-24 * time.Hour)},
		{ID: "task-3", Title: "Test", Status: domain.TaskPending, Priority: domain.PriorityLow, ProjectID: "proj-1", CreatedByID: "user-b"},
		{ID: "task-4", Title: "Ship", Status: domain.TaskPending, Priority: domain.PriorityHigh, ProjectID: "proj-2", CreatedByID: "user-b", DueDate: due(72 * time.Hour)},
	}
}

type fixture struct {
	users    *stubUserRepo
	projects *stubProjectRepo
	tasks    *stubTaskRepo
}

func newFixture() fixture {
	return fixture{
		users:    newStubUserRepo(fixtureUsers()...),
		projects: newStubProjectRepo(fixtureProjects()...),
		tasks:    newStubTaskRepo(fixtureTasks()...),
	}
}
