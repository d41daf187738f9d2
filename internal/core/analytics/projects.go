package analytics

import (
	"time"

	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// ProjectStat is one entry of the project stats listing.
type ProjectStat struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	AssignedUsers  []domain.UserRef `json:"assignedUsers"`
	TotalTasks     int              `json:"totalTasks"`
	CompletedTasks int              `json:"completedTasks"`
	PendingTasks   int              `json:"pendingTasks"`
	OverdueTasks   int              `json:"overdueTasks"`
}

// ProjectStats lists every project with its members and task tallies.
func ProjectStats(ds Dataset, now time.Time) []ProjectStat {
	idx := newIndex(ds)
	out := make([]ProjectStat, 0, len(ds.Projects))
	for _, p := range ds.Projects {
		c := CountTasks(idx.tasksByProject[p.ID], now)
		out = append(out, ProjectStat{
			ID:             p.ID,
			Name:           p.Name,
			Description:    p.Description,
			AssignedUsers:  idx.memberRefs(p),
			TotalTasks:     c.Total,
			CompletedTasks: c.Completed,
			PendingTasks:   c.Pending,
			OverdueTasks:   c.Overdue,
		})
	}
	return out
}

// DetailedProject is a project with its members and fully described tasks.
type DetailedProject struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	CreatedAt     time.Time        `json:"createdAt"`
	AssignedUsers []domain.UserRef `json:"assignedUsers"`
	Tasks         []DetailedTask   `json:"tasks"`
}

// DetailedTask carries the creator identity and, for completed tasks, the
// time the task was last updated as its completion time.
type DetailedTask struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      domain.TaskStatus   `json:"status"`
	Priority    domain.TaskPriority `json:"priority"`
	DueDate     *time.Time          `json:"dueDate,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	CompletedAt *time.Time          `json:"completedAt,omitempty"`
	CreatedBy   domain.UserRef      `json:"createdBy"`
}

// DetailedProjectView builds the detail view of projectID. It returns
// domain.ErrProjectNotFound when the project is not in the dataset.
func DetailedProjectView(ds Dataset, projectID string) (*DetailedProject, error) {
	var project *domain.Project
	for i := range ds.Projects {
		if ds.Projects[i].ID == projectID {
			project = &ds.Projects[i]
			break
		}
	}
	if project == nil {
		return nil, domain.ErrProjectNotFound
	}

	idx := newIndex(ds)
	tasks := idx.tasksByProject[project.ID]

	out := &DetailedProject{
		ID:            project.ID,
		Name:          project.Name,
		Description:   project.Description,
		CreatedAt:     project.CreatedAt,
		AssignedUsers: idx.memberRefs(*project),
		Tasks:         make([]DetailedTask, 0, len(tasks)),
	}
	for _, t := range tasks {
		dt := DetailedTask{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Status:      t.Status,
			Priority:    t.Priority,
			DueDate:     t.DueDate,
			CreatedAt:   t.CreatedAt,
			CreatedBy:   idx.creatorRef(t.CreatedByID),
		}
		if t.IsCompleted() {
			completedAt := t.UpdatedAt
			dt.CompletedAt = &completedAt
		}
		out.Tasks = append(out.Tasks, dt)
	}
	return out, nil
}
