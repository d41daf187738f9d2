package analytics

import (
	"time"
)

// Summary is the system-wide analytics overview.
type Summary struct {
	TotalUsers       int                `json:"totalUsers"`
	TotalProjects    int                `json:"totalProjects"`
	TotalTasks       int                `json:"totalTasks"`
	CompletedTasks   int                `json:"completedTasks"`
	OverdueTasks     int                `json:"overdueTasks"`
	ProjectStats     []ProjectRollup    `json:"projectStats"`
	UserProductivity []UserProductivity `json:"userProductivity"`
}

// ProjectRollup is the per-project line of the analytics overview.
type ProjectRollup struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	AssignedUsers  int    `json:"assignedUsers"`
	TotalTasks     int    `json:"totalTasks"`
	CompletedTasks int    `json:"completedTasks"`
	CompletionRate int    `json:"completionRate"`
}

// UserProductivity counts the tasks a user created and how many are done.
type UserProductivity struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	AssignedTasks  int    `json:"assignedTasks"`
	CompletedTasks int    `json:"completedTasks"`
	CompletionRate int    `json:"completionRate"`
}

// SystemAnalytics computes the admin overview. All overdue checks use the
// same now so the totals agree with each other.
func SystemAnalytics(ds Dataset, now time.Time) Summary {
	idx := newIndex(ds)
	all := CountTasks(ds.Tasks, now)

	s := Summary{
		TotalUsers:       len(ds.Users),
		TotalProjects:    len(ds.Projects),
		TotalTasks:       all.Total,
		CompletedTasks:   all.Completed,
		OverdueTasks:     all.Overdue,
		ProjectStats:     make([]ProjectRollup, 0, len(ds.Projects)),
		UserProductivity: make([]UserProductivity, 0, len(ds.Users)),
	}

	for _, p := range ds.Projects {
		c := CountTasks(idx.tasksByProject[p.ID], now)
		s.ProjectStats = append(s.ProjectStats, ProjectRollup{
			ID:             p.ID,
			Name:           p.Name,
			AssignedUsers:  len(p.Members()),
			TotalTasks:     c.Total,
			CompletedTasks: c.Completed,
			CompletionRate: c.CompletionRate(),
		})
	}

	for _, u := range ds.Users {
		c := CountTasks(idx.tasksByCreator[u.ID], now)
		s.UserProductivity = append(s.UserProductivity, UserProductivity{
			ID:             u.ID,
			Name:           u.Name,
			AssignedTasks:  c.Total,
			CompletedTasks: c.Completed,
			CompletionRate: c.CompletionRate(),
		})
	}

	return s
}
