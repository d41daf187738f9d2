package domain

import "time"

// TaskStatus is the persisted lifecycle state of a task. Overdue is never
// stored; it is derived from the due date, see Task.IsOverdue.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

// Valid reports whether s is one of the persisted statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

// TaskPriority orders tasks by urgency.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Valid reports whether p is a known priority.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a unit of work inside a project, owned by the user who created it.
type Task struct {
	ID          string       `json:"id" bson:"_id"`
	Title       string       `json:"title" bson:"title"`
	Description string       `json:"description" bson:"description"`
	Status      TaskStatus   `json:"status" bson:"status"`
	Priority    TaskPriority `json:"priority" bson:"priority"`
	DueDate     *time.Time   `json:"dueDate,omitempty" bson:"due_date,omitempty"`
	ProjectID   string       `json:"projectId" bson:"project_id"`
	CreatedByID string       `json:"createdById" bson:"created_by_id"`
	CreatedAt   time.Time    `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time    `json:"updatedAt" bson:"updated_at"`
}

// IsCompleted reports whether the task is in the completed state.
func (t Task) IsCompleted() bool {
	return t.Status == TaskCompleted
}

// IsOverdue reports whether the task is past its due date and not completed.
// Tasks without a due date are never overdue.
func (t Task) IsOverdue(now time.Time) bool {
	if t.IsCompleted() || t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(now)
}
