package ports

import (
	"context"
	"time"

	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// ProjectRepository defines persistence operations for projects and their
// member sets.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	ListByMember(ctx context.Context, userID string) ([]domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
	// AddMember adds userID to the member set and stamps updatedAt with at;
	// adding an existing member leaves the set unchanged.
	AddMember(ctx context.Context, projectID, userID string, at time.Time) error
	// RemoveMember drops userID from every project it belongs to.
	RemoveMember(ctx context.Context, userID string) error
}
