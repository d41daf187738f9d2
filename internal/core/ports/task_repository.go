package ports

import (
	"context"

	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// TaskFilter narrows a task listing. Empty fields are not applied.
type TaskFilter struct {
	ProjectID   string
	CreatedByID string
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// List returns matching tasks ordered by due date, undated tasks last.
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
	DeleteByProject(ctx context.Context, projectID string) (int64, error)
}
