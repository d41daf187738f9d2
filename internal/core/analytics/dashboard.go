package analytics

import (
	"time"

	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// Dashboard summarises, for one user, the tasks they created across the
// projects they are a member of.
type Dashboard struct {
	TotalProjects   int                `json:"totalProjects"`
	TotalTasks      int                `json:"totalTasks"`
	CompletedTasks  int                `json:"completedTasks"`
	PendingTasks    int                `json:"pendingTasks"`
	InProgressTasks int                `json:"inProgressTasks"`
	OverdueTasks    int                `json:"overdueTasks"`
	CompletionRate  int                `json:"completionRate"`
	Projects        []DashboardProject `json:"projects"`
}

// DashboardProject is the per-project block of a Dashboard.
type DashboardProject struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	TotalTasks      int    `json:"totalTasks"`
	CompletedTasks  int    `json:"completedTasks"`
	PendingTasks    int    `json:"pendingTasks"`
	InProgressTasks int    `json:"inProgressTasks"`
	OverdueTasks    int    `json:"overdueTasks"`
}

// UserDashboard computes the dashboard of userID. Projects the user is not a
// member of, and tasks created by someone else, are ignored even if present
// in the dataset. It returns domain.ErrUserNotFound when the user is missing.
func UserDashboard(ds Dataset, userID string, now time.Time) (Dashboard, error) {
	found := false
	for _, u := range ds.Users {
		if u.ID == userID {
			found = true
			break
		}
	}
	if !found {
		return Dashboard{}, domain.ErrUserNotFound
	}

	idx := newIndex(ds)
	d := Dashboard{Projects: make([]DashboardProject, 0)}
	var sum TaskCounts

	for _, p := range ds.Projects {
		if !p.HasMember(userID) {
			continue
		}
		var own []domain.Task
		for _, t := range idx.tasksByProject[p.ID] {
			if t.CreatedByID == userID {
				own = append(own, t)
			}
		}
		c := CountTasks(own, now)
		sum.merge(c)

		d.Projects = append(d.Projects, DashboardProject{
			ID:              p.ID,
			Name:            p.Name,
			Description:     p.Description,
			TotalTasks:      c.Total,
			CompletedTasks:  c.Completed,
			PendingTasks:    c.Pending,
			InProgressTasks: c.InProgress,
			OverdueTasks:    c.Overdue,
		})
	}

	d.TotalProjects = len(d.Projects)
	d.TotalTasks = sum.Total
	d.CompletedTasks = sum.Completed
	d.PendingTasks = sum.Pending
	d.InProgressTasks = sum.InProgress
	d.OverdueTasks = sum.Overdue
	d.CompletionRate = sum.CompletionRate()
	return d, nil
}
