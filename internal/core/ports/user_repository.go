package ports

import (
	"context"

	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	AuthRepository
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	// Search returns users whose name or email contains search
	// (case-insensitive), ordered by name. An empty search returns everyone.
	Search(ctx context.Context, search string) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}
