package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/taskflow-api/internal/core/domain"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

// fixture builds a small system:
//
//	p1 members u2,u3: t1 completed/past, t2 completed/future, t3 pending/past, t4 in_progress/future
//	p2 members u2:    no tasks
//	p3 members u1,u1: t5 pending without due date
func fixture() Dataset {
	return Dataset{
		Users: []domain.User{
			{ID: "u1", Name: "Ada Admin", Email: "ada@example.com", Role: domain.RoleAdmin, Status: domain.UserActive, CreatedAt: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)},
			{ID: "u2", Name: "Bea User", Email: "bea@example.com", Role: domain.RoleUser, Status: domain.UserActive, CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "u3", Name: "Cy User", Email: "cy@example.com", Role: domain.RoleUser, Status: domain.UserInactive, CreatedAt: time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)},
		},
		Projects: []domain.Project{
			{ID: "p1", Name: "Website", Description: "redesign", MemberIDs: []string{"u2", "u3"}, CreatedAt: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
			{ID: "p2", Name: "Mobile", MemberIDs: []string{"u2"}},
			{ID: "p3", Name: "Infra", MemberIDs: []string{"u1", "u1"}},
		},
		Tasks: []domain.Task{
			{ID: "t1", Title: "design", ProjectID: "p1", CreatedByID: "u2", Status: domain.TaskCompleted, DueDate: at(-48 * time.Hour), UpdatedAt: now.Add(-72 * time.Hour)},
			{ID: "t2", Title: "build", ProjectID: "p1", CreatedByID: "u2", Status: domain.TaskCompleted, DueDate: at(48 * time.Hour), UpdatedAt: now.Add(-time.Hour)},
			{ID: "t3", Title: "review", ProjectID: "p1", CreatedByID: "u2", Status: domain.TaskPending, DueDate: at(-time.Hour)},
			{ID: "t4", Title: "ship", ProjectID: "p1", CreatedByID: "u3", Status: domain.TaskInProgress, DueDate: at(time.Hour)},
			{ID: "t5", Title: "backup", ProjectID: "p3", CreatedByID: "u1", Status: domain.TaskPending},
		},
	}
}

func TestCompletionRate(t *testing.T) {
	cases := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{3, 0, 0},
		{0, 5, 0},
		{1, 2, 50},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{3, 8, 38},
		{5, 5, 100},
	}
	for _, tc := range cases {
		got := CompletionRate(tc.completed, tc.total)
		assert.Equal(t, tc.want, got, "CompletionRate(%d, %d)", tc.completed, tc.total)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 100)
	}
}

func TestCountTasks_OverduePredicate(t *testing.T) {
	tasks := []domain.Task{
		{ID: "a", Status: domain.TaskCompleted, DueDate: at(-24 * time.Hour)},
		{ID: "b", Status: domain.TaskPending, DueDate: at(-time.Minute)},
		{ID: "c", Status: domain.TaskInProgress, DueDate: at(-time.Minute)},
		{ID: "d", Status: domain.TaskPending},
		{ID: "e", Status: domain.TaskPending, DueDate: at(0)},
	}

	c := CountTasks(tasks, now)
	assert.Equal(t, TaskCounts{Total: 5, Completed: 1, Pending: 3, InProgress: 1, Overdue: 2}, c)
}

func TestSystemAnalytics(t *testing.T) {
	s := SystemAnalytics(fixture(), now)

	assert.Equal(t, 3, s.TotalUsers)
	assert.Equal(t, 3, s.TotalProjects)
	assert.Equal(t, 5, s.TotalTasks)
	assert.Equal(t, 2, s.CompletedTasks)
	assert.Equal(t, 1, s.OverdueTasks)

	want := []ProjectRollup{
		{ID: "p1", Name: "Website", AssignedUsers: 2, TotalTasks: 4, CompletedTasks: 2, CompletionRate: 50},
		{ID: "p2", Name: "Mobile", AssignedUsers: 1},
		{ID: "p3", Name: "Infra", AssignedUsers: 1, TotalTasks: 1},
	}
	if diff := cmp.Diff(want, s.ProjectStats); diff != "" {
		t.Fatalf("project stats mismatch (-want +got):\n%s", diff)
	}

	wantUsers := []UserProductivity{
		{ID: "u1", Name: "Ada Admin", AssignedTasks: 1},
		{ID: "u2", Name: "Bea User", AssignedTasks: 3, CompletedTasks: 2, CompletionRate: 67},
		{ID: "u3", Name: "Cy User", AssignedTasks: 1},
	}
	if diff := cmp.Diff(wantUsers, s.UserProductivity); diff != "" {
		t.Fatalf("user productivity mismatch (-want +got):\n%s", diff)
	}
}

func TestSystemAnalytics_TotalsMatchProjectSums(t *testing.T) {
	s := SystemAnalytics(fixture(), now)

	sum := 0
	for _, p := range s.ProjectStats {
		sum += p.TotalTasks
	}
	assert.Equal(t, s.TotalTasks, sum)
}

func TestSystemAnalytics_Empty(t *testing.T) {
	s := SystemAnalytics(Dataset{}, now)

	assert.Zero(t, s.TotalTasks)
	assert.NotNil(t, s.ProjectStats)
	assert.NotNil(t, s.UserProductivity)
}

func TestProjectStats(t *testing.T) {
	stats := ProjectStats(fixture(), now)
	require.Len(t, stats, 3)

	p1 := stats[0]
	assert.Equal(t, "p1", p1.ID)
	assert.Equal(t, "redesign", p1.Description)
	assert.Equal(t, 4, p1.TotalTasks)
	assert.Equal(t, 2, p1.CompletedTasks)
	assert.Equal(t, 1, p1.PendingTasks)
	assert.Equal(t, 1, p1.OverdueTasks)
	assert.Equal(t, []domain.UserRef{
		{ID: "u2", Name: "Bea User", Email: "bea@example.com"},
		{ID: "u3", Name: "Cy User", Email: "cy@example.com"},
	}, p1.AssignedUsers)

	p3 := stats[2]
	assert.Len(t, p3.AssignedUsers, 1, "duplicate member ids collapse to one")
	assert.Equal(t, 0, p3.OverdueTasks, "tasks without due date are never overdue")
}

func TestProjectStats_Idempotent(t *testing.T) {
	ds := fixture()
	before := fixture()

	first := ProjectStats(ds, now)
	second := ProjectStats(ds, now)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("second call differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(before, ds); diff != "" {
		t.Fatalf("input was mutated (-before +after):\n%s", diff)
	}
}

func TestProjectStats_SkipsUnknownMembers(t *testing.T) {
	ds := Dataset{
		Projects: []domain.Project{{ID: "p", MemberIDs: []string{"ghost"}}},
	}
	stats := ProjectStats(ds, now)
	require.Len(t, stats, 1)
	assert.Empty(t, stats[0].AssignedUsers)
}

func TestDetailedProjectView(t *testing.T) {
	ds := fixture()
	ds.Tasks = append(ds.Tasks, domain.Task{ID: "t6", ProjectID: "p1", CreatedByID: "deleted-user", Status: domain.TaskPending})

	view, err := DetailedProjectView(ds, "p1")
	require.NoError(t, err)

	assert.Equal(t, "Website", view.Name)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), view.CreatedAt)
	assert.Len(t, view.AssignedUsers, 2)
	require.Len(t, view.Tasks, 5)

	byID := make(map[string]DetailedTask, len(view.Tasks))
	for _, task := range view.Tasks {
		byID[task.ID] = task
	}

	require.NotNil(t, byID["t1"].CompletedAt)
	assert.Equal(t, now.Add(-72*time.Hour), *byID["t1"].CompletedAt)
	assert.Nil(t, byID["t3"].CompletedAt, "completedAt is absent for open tasks")
	assert.Nil(t, byID["t4"].CompletedAt)

	assert.Equal(t, domain.UserRef{ID: "u2", Name: "Bea User", Email: "bea@example.com"}, byID["t1"].CreatedBy)
	assert.Equal(t, domain.UserRef{ID: "deleted-user"}, byID["t6"].CreatedBy)
}

func TestDetailedProjectView_NotFound(t *testing.T) {
	_, err := DetailedProjectView(fixture(), "missing")
	require.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestUserDashboard(t *testing.T) {
	ds := fixture()
	// A task by u2 in a project u2 is not a member of must be ignored.
	ds.Tasks = append(ds.Tasks, domain.Task{ID: "t7", ProjectID: "p3", CreatedByID: "u2", Status: domain.TaskCompleted})

	d, err := UserDashboard(ds, "u2", now)
	require.NoError(t, err)

	assert.Equal(t, 2, d.TotalProjects)
	assert.Equal(t, 3, d.TotalTasks)
	assert.Equal(t, 2, d.CompletedTasks)
	assert.Equal(t, 1, d.PendingTasks)
	assert.Equal(t, 0, d.InProgressTasks)
	assert.Equal(t, 1, d.OverdueTasks)
	assert.Equal(t, 67, d.CompletionRate)

	want := []DashboardProject{
		{ID: "p1", Name: "Website", Description: "redesign", TotalTasks: 3, CompletedTasks: 2, PendingTasks: 1, OverdueTasks: 1},
		{ID: "p2", Name: "Mobile"},
	}
	if diff := cmp.Diff(want, d.Projects); diff != "" {
		t.Fatalf("dashboard projects mismatch (-want +got):\n%s", diff)
	}
}

func TestUserDashboard_OnlyOwnTasks(t *testing.T) {
	d, err := UserDashboard(fixture(), "u3", now)
	require.NoError(t, err)

	assert.Equal(t, 1, d.TotalProjects)
	assert.Equal(t, 1, d.TotalTasks)
	assert.Equal(t, 1, d.InProgressTasks)
	assert.Equal(t, 0, d.CompletionRate)
}

func TestUserDashboard_NoProjects(t *testing.T) {
	ds := fixture()
	ds.Users = append(ds.Users, domain.User{ID: "u4", Name: "Lonely"})

	d, err := UserDashboard(ds, "u4", now)
	require.NoError(t, err)
	assert.Zero(t, d.TotalProjects)
	assert.Zero(t, d.CompletionRate)
	assert.NotNil(t, d.Projects)
}

func TestUserDashboard_UnknownUser(t *testing.T) {
	_, err := UserDashboard(fixture(), "nobody", now)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestListUsers_SummaryAndCounts(t *testing.T) {
	page, err := ListUsers(fixture(), UserQuery{Page: 1, Limit: 10}, now)
	require.NoError(t, err)

	assert.Equal(t, UserSummary{
		TotalUsers:        3,
		NewUsersThisMonth: 2,
		ActiveUsers:       2,
		InactiveUsers:     1,
		ActiveRate:        67,
		AdminUsers:        1,
	}, page.Summary)

	require.Len(t, page.Data, 3)
	// newest first
	assert.Equal(t, []string{"u1", "u3", "u2"}, []string{page.Data[0].ID, page.Data[1].ID, page.Data[2].ID})

	counts := map[string][2]int{}
	for _, row := range page.Data {
		counts[row.ID] = [2]int{row.ProjectsCount, row.TasksCount}
	}
	assert.Equal(t, [2]int{1, 1}, counts["u1"], "duplicate membership counted once")
	assert.Equal(t, [2]int{2, 3}, counts["u2"])
	assert.Equal(t, [2]int{1, 1}, counts["u3"])

	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 1, page.TotalPages)
}

func manyUsers(n int) []domain.User {
	users := make([]domain.User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, domain.User{
			ID:        fmt.Sprintf("user-%02d", i),
			Name:      fmt.Sprintf("Person %02d", i),
			Email:     fmt.Sprintf("person%02d@example.com", i),
			Role:      domain.RoleUser,
			Status:    domain.UserActive,
			CreatedAt: now.AddDate(0, 0, -i*3),
		})
	}
	return users
}

func TestListUsers_SearchScenario(t *testing.T) {
	users := manyUsers(25)
	users[3].Name = "John Smith"
	users[11].Name = "Bob JOHNSON"
	users[20].Email = "ajohn@corp.example.com"

	page, err := ListUsers(Dataset{Users: users}, UserQuery{Page: 1, Limit: 10, Search: "john"}, now)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(page.Data), 10)
	require.Len(t, page.Data, 3)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 25, page.Summary.TotalUsers, "summary ignores the search filter")

	ids := []string{page.Data[0].ID, page.Data[1].ID, page.Data[2].ID}
	assert.ElementsMatch(t, []string{"user-03", "user-11", "user-20"}, ids)
}

func TestListUsers_Pagination(t *testing.T) {
	ds := Dataset{Users: manyUsers(25)}

	second, err := ListUsers(ds, UserQuery{Page: 2, Limit: 10}, now)
	require.NoError(t, err)
	assert.Equal(t, 3, second.TotalPages)
	require.Len(t, second.Data, 10)
	assert.Equal(t, "user-10", second.Data[0].ID)

	last, err := ListUsers(ds, UserQuery{Page: 3, Limit: 10}, now)
	require.NoError(t, err)
	assert.Len(t, last.Data, 5)

	beyond, err := ListUsers(ds, UserQuery{Page: 9, Limit: 10}, now)
	require.NoError(t, err)
	assert.NotNil(t, beyond.Data)
	assert.Empty(t, beyond.Data)
	assert.Equal(t, second.Summary, beyond.Summary)
	assert.Equal(t, 25, beyond.Total)
}

func TestListUsers_InvalidPaging(t *testing.T) {
	cases := []UserQuery{
		{Page: 0, Limit: 10},
		{Page: -1, Limit: 10},
		{Page: 1, Limit: 0},
		{Page: 1, Limit: -5},
	}
	for _, q := range cases {
		_, err := ListUsers(fixture(), q, now)
		require.ErrorIs(t, err, domain.ErrInvalidInput, "query %+v", q)
	}
}

func TestMatchesSearch(t *testing.T) {
	u := domain.User{Name: "Mandeep Singh", Email: "MS@Example.com"}

	assert.True(t, MatchesSearch(u, ""))
	assert.True(t, MatchesSearch(u, "  "))
	assert.True(t, MatchesSearch(u, "mandeep"))
	assert.True(t, MatchesSearch(u, "example.COM"))
	assert.False(t, MatchesSearch(u, "john"))
}
