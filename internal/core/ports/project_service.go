package ports

import (
	"context"

	"github.com/taskflow/taskflow-api/internal/core/analytics"
	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// CreateProjectInput carries the data needed to create a project.
type CreateProjectInput struct {
	Name        string
	Description string
	OwnerID     string
}

// UpdateProjectInput is a partial update; nil fields are left untouched.
type UpdateProjectInput struct {
	Name        *string
	Description *string
}

// ProjectService defines use-case operations for projects.
type ProjectService interface {
	Create(ctx context.Context, input CreateProjectInput) (*domain.Project, error)
	Update(ctx context.Context, id string, input UpdateProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
	AssignUser(ctx context.Context, projectID, userID string) (*domain.Project, error)
	Stats(ctx context.Context) ([]analytics.ProjectStat, error)
	Detailed(ctx context.Context, id string) (*analytics.DetailedProject, error)
	// TasksForUser lists the tasks userID created in the project.
	TasksForUser(ctx context.Context, projectID, userID string) ([]domain.Task, error)
}
