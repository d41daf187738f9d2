// Package analytics computes dashboard and reporting figures from already
// loaded users, projects and tasks.
//
// Every function is a pure computation over the Dataset it is handed and the
// reference time "now". Nothing here talks to storage or mutates its input,
// so the same dataset can be reported on concurrently.
package analytics

import (
	"time"

	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// Dataset is the in-memory snapshot a report is computed from.
type Dataset struct {
	Users    []domain.User
	Projects []domain.Project
	Tasks    []domain.Task
}

// CompletionRate returns round(completed/total*100), rounding halves up.
// A zero total yields 0.
func CompletionRate(completed, total int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed > total {
		completed = total
	}
	return (completed*200 + total) / (2 * total)
}

// TaskCounts tallies a task collection by status at a reference time.
type TaskCounts struct {
	Total      int
	Completed  int
	Pending    int
	InProgress int
	Overdue    int
}

// CountTasks tallies tasks; overdue is evaluated against now.
func CountTasks(tasks []domain.Task, now time.Time) TaskCounts {
	var c TaskCounts
	for _, t := range tasks {
		c.add(t, now)
	}
	return c
}

func (c *TaskCounts) add(t domain.Task, now time.Time) {
	c.Total++
	switch t.Status {
	case domain.TaskCompleted:
		c.Completed++
	case domain.TaskPending:
		c.Pending++
	case domain.TaskInProgress:
		c.InProgress++
	}
	if t.IsOverdue(now) {
		c.Overdue++
	}
}

func (c *TaskCounts) merge(o TaskCounts) {
	c.Total += o.Total
	c.Completed += o.Completed
	c.Pending += o.Pending
	c.InProgress += o.InProgress
	c.Overdue += o.Overdue
}

// CompletionRate is the completion rate of the tallied tasks.
func (c TaskCounts) CompletionRate() int {
	return CompletionRate(c.Completed, c.Total)
}

// index holds lookups shared by the reports.
type index struct {
	users          map[string]domain.User
	tasksByProject map[string][]domain.Task
	tasksByCreator map[string][]domain.Task
}

func newIndex(ds Dataset) index {
	idx := index{
		users:          make(map[string]domain.User, len(ds.Users)),
		tasksByProject: make(map[string][]domain.Task),
		tasksByCreator: make(map[string][]domain.Task),
	}
	for _, u := range ds.Users {
		idx.users[u.ID] = u
	}
	for _, t := range ds.Tasks {
		idx.tasksByProject[t.ProjectID] = append(idx.tasksByProject[t.ProjectID], t)
		idx.tasksByCreator[t.CreatedByID] = append(idx.tasksByCreator[t.CreatedByID], t)
	}
	return idx
}

// memberRefs resolves member ids to public identities. Ids with no matching
// user in the dataset are skipped.
func (idx index) memberRefs(p domain.Project) []domain.UserRef {
	members := p.Members()
	out := make([]domain.UserRef, 0, len(members))
	for _, id := range members {
		if u, ok := idx.users[id]; ok {
			out = append(out, u.Public())
		}
	}
	return out
}

// creatorRef falls back to a bare id when the creator is not in the dataset.
func (idx index) creatorRef(id string) domain.UserRef {
	if u, ok := idx.users[id]; ok {
		return u.Public()
	}
	return domain.UserRef{ID: id}
}
