package ports

import (
	"context"
	"time"

	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/policy"
)

// CreateTaskInput carries the data needed to create a task. Zero status and
// priority fall back to pending and medium.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	DueDate     *time.Time
	ProjectID   string
}

// UpdateTaskInput is a partial update; nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	DueDate     *time.Time
}

// TaskSummary is a task joined with the name of its project.
type TaskSummary struct {
	ID          string
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	DueDate     *time.Time
	ProjectID   string
	ProjectName string
}

// TaskService defines use-case operations for tasks.
type TaskService interface {
	Create(ctx context.Context, actor policy.Actor, input CreateTaskInput) (*domain.Task, error)
	Update(ctx context.Context, actor policy.Actor, id string, input UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, actor policy.Actor, id string) error
	MyTasks(ctx context.Context, userID string) ([]TaskSummary, error)
}
